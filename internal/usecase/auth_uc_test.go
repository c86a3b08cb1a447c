package usecase

import (
	"errors"
	"testing"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/utils"
)

func newAuthFixture(users ...*domain.User) (domain.AuthUsecase, *fakeUserRepo) {
	repo := newFakeUserRepo(users...)
	return NewAuthUsecase(repo, &fakeAuthService{}, 40), repo
}

func TestRegister(t *testing.T) {
	uc, repo := newAuthFixture()

	user, token, err := uc.Register("  Alice@Example.COM ", "alice", "Str0ngPass")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased/trimmed", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("role = %q, want %q", user.Role, domain.RoleUser)
	}
	if user.NextTaskNumber != 1 || !user.CanReceiveTasks {
		t.Errorf("new user defaults = %+v", user)
	}
	if token == "" {
		t.Error("empty token")
	}
	if user.PasswordHash == "Str0ngPass" {
		t.Error("password stored in plaintext")
	}
	if !utils.VerifyPassword("Str0ngPass", user.PasswordHash) {
		t.Error("stored hash does not verify the password")
	}
	if _, ok := repo.users[user.ID]; !ok {
		t.Error("user not persisted")
	}
}

func TestRegisterValidation(t *testing.T) {
	uc, _ := newAuthFixture()

	cases := []struct {
		name     string
		email    string
		username string
		password string
	}{
		{"bad email", "not-an-email", "alice", "Str0ngPass"},
		{"short username", "alice@example.com", "al", "Str0ngPass"},
		{"short password", "alice@example.com", "alice", "Ab1"},
		{"no digit", "alice@example.com", "alice", "NoDigitsHere"},
		{"no upper", "alice@example.com", "alice", "nodigits123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := uc.Register(tc.email, tc.username, tc.password)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegisterRejectsTakenIdentifiers(t *testing.T) {
	hash, _ := utils.HashPassword("Str0ngPass")
	uc, _ := newAuthFixture(&domain.User{
		ID: "u1", Email: "alice@example.com", Username: "alice", PasswordHash: hash,
	})

	if _, _, err := uc.Register("alice@example.com", "other", "Str0ngPass"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("taken email: err = %v, want ErrEmailTaken", err)
	}
	if _, _, err := uc.Register("fresh@example.com", "alice", "Str0ngPass"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Errorf("taken username: err = %v, want ErrUsernameTaken", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := utils.HashPassword("Str0ngPass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	uc, repo := newAuthFixture(&domain.User{
		ID: "u1", Email: "alice@example.com", Username: "alice", PasswordHash: hash,
	})

	// By email
	user, token, err := uc.Login("alice@example.com", "Str0ngPass")
	if err != nil {
		t.Fatalf("Login by email: %v", err)
	}
	if user.ID != "u1" || token == "" {
		t.Errorf("user = %+v, token = %q", user, token)
	}

	// By username
	if _, _, err := uc.Login("alice", "Str0ngPass"); err != nil {
		t.Fatalf("Login by username: %v", err)
	}

	if repo.users["u1"].LastLoginAt == nil {
		t.Error("last login not recorded")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	hash, _ := utils.HashPassword("Str0ngPass")
	uc, _ := newAuthFixture(&domain.User{
		ID: "u1", Email: "alice@example.com", Username: "alice", PasswordHash: hash,
	})

	// Unknown identifier and wrong password collapse into the same error.
	if _, _, err := uc.Login("ghost@example.com", "Str0ngPass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := uc.Login("alice", "WrongPass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginBlockedUser(t *testing.T) {
	hash, _ := utils.HashPassword("Str0ngPass")
	uc, _ := newAuthFixture(&domain.User{
		ID: "u1", Email: "alice@example.com", Username: "alice",
		PasswordHash: hash, IsBlocked: true,
	})

	if _, _, err := uc.Login("alice", "Str0ngPass"); !errors.Is(err, domain.ErrUserBlocked) {
		t.Fatalf("err = %v, want ErrUserBlocked", err)
	}
}
