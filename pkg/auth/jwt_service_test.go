package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/adityarizkyr/reviora/config"
	"github.com/adityarizkyr/reviora/internal/domain"
)

func testService(ttl time.Duration) *JWTAuthService {
	return NewJWTAuthService(config.AuthConfig{
		AccessSecret:   "test-secret",
		AccessTokenTTL: ttl,
		Issuer:         "reviora-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testService(time.Hour)
	user := &domain.User{ID: "u1", Role: domain.RoleAdmin}

	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", claims.UserID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("Role = %q, want %q", claims.Role, domain.RoleAdmin)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Errorf("ExpiresAt %v not after IssuedAt %v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestGenerateAccessTokenRejectsBadPayload(t *testing.T) {
	svc := testService(time.Hour)

	if _, err := svc.GenerateAccessToken(nil); err == nil {
		t.Error("nil user accepted")
	}
	if _, err := svc.GenerateAccessToken(&domain.User{}); err == nil {
		t.Error("user without ID accepted")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := testService(-time.Minute)

	token, err := svc.GenerateAccessToken(&domain.User{ID: "u1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("err = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := testService(time.Hour).GenerateAccessToken(&domain.User{ID: "u1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := NewJWTAuthService(config.AuthConfig{
		AccessSecret:   "different-secret",
		AccessTokenTTL: time.Hour,
		Issuer:         "reviora-test",
	})
	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := testService(time.Hour)

	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := svc.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token %q: err = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestValidateTokenDefaultsRole(t *testing.T) {
	svc := testService(time.Hour)

	token, err := svc.GenerateAccessToken(&domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Role != domain.RoleUser {
		t.Errorf("Role = %q, want default %q", claims.Role, domain.RoleUser)
	}
}
