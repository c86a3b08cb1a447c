package usecase

import (
	"errors"
	"testing"

	"github.com/adityarizkyr/reviora/internal/domain"
)

func newUserFixture(users []*domain.User, profiles []*domain.Profile) domain.UserUsecase {
	return NewUserUsecase(
		newFakeUserRepo(users...),
		newFakeProfileRepo(profiles...),
		&fakeVipRepo{levels: ladderFixture()},
	)
}

func TestGetMe(t *testing.T) {
	uc := newUserFixture(
		[]*domain.User{{ID: "u1", Username: "alice"}},
		[]*domain.Profile{{UserID: "u1", VipLevel: 2}},
	)

	user, profile, err := uc.GetMe("u1")
	if err != nil {
		t.Fatalf("GetMe: %v", err)
	}
	if user.Username != "alice" || profile.VipLevel != 2 {
		t.Errorf("user = %+v, profile = %+v", user, profile)
	}

	if _, _, err := uc.GetMe("ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestAdminUpdateUser(t *testing.T) {
	uc := newUserFixture(
		[]*domain.User{{ID: "u1", CanReceiveTasks: true}},
		[]*domain.Profile{{UserID: "u1", VipLevel: 0, DailyTasksLimit: 40}},
	)

	updated, err := uc.AdminUpdateUser("u1", domain.AdminUserUpdate{
		IsBlocked:         ptrBool(true),
		WithdrawalAddress: ptrString("TAddr123"),
		VipLevel:          ptrInt(2),
		DailyTasksLimit:   ptrInt(10),
	})
	if err != nil {
		t.Fatalf("AdminUpdateUser: %v", err)
	}
	if !updated.IsBlocked {
		t.Error("IsBlocked not applied")
	}
	if updated.WithdrawalAddress == nil || *updated.WithdrawalAddress != "TAddr123" {
		t.Errorf("WithdrawalAddress = %v", updated.WithdrawalAddress)
	}

	// Untouched fields keep their values on a partial update.
	partial, err := uc.AdminUpdateUser("u1", domain.AdminUserUpdate{IsBlocked: ptrBool(false)})
	if err != nil {
		t.Fatalf("AdminUpdateUser: %v", err)
	}
	if partial.WithdrawalAddress == nil || *partial.WithdrawalAddress != "TAddr123" {
		t.Error("partial update clobbered withdrawal address")
	}
}

func TestAdminUpdateUserValidation(t *testing.T) {
	uc := newUserFixture(
		[]*domain.User{{ID: "u1"}},
		[]*domain.Profile{{UserID: "u1", DailyTasksLimit: 40}},
	)

	if _, err := uc.AdminUpdateUser("ghost", domain.AdminUserUpdate{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("unknown user: err = %v, want ErrUserNotFound", err)
	}
	if _, err := uc.AdminUpdateUser("u1", domain.AdminUserUpdate{VipLevel: ptrInt(99)}); !errors.Is(err, domain.ErrVipLevelNotFound) {
		t.Errorf("unknown vip level: err = %v, want ErrVipLevelNotFound", err)
	}
	if _, err := uc.AdminUpdateUser("u1", domain.AdminUserUpdate{DailyTasksLimit: ptrInt(0)}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("zero daily limit: err = %v, want ErrValidation", err)
	}

	// Level 0 resets the tier without a ladder lookup.
	if _, err := uc.AdminUpdateUser("u1", domain.AdminUserUpdate{VipLevel: ptrInt(0)}); err != nil {
		t.Errorf("reset to level 0: %v", err)
	}
}
