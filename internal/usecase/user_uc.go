package usecase

import (
	"fmt"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/utils"
)

type userUsecase struct {
	userRepo    domain.UserRepository
	profileRepo domain.ProfileRepository
	vipRepo     domain.VipLevelRepository
}

// NewUserUsecase creates the account and admin user-management usecase.
func NewUserUsecase(
	userRepo domain.UserRepository,
	profileRepo domain.ProfileRepository,
	vipRepo domain.VipLevelRepository,
) domain.UserUsecase {
	return &userUsecase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		vipRepo:     vipRepo,
	}
}

func (uc *userUsecase) GetMe(userID string) (*domain.User, *domain.Profile, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := uc.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

func (uc *userUsecase) ListUsers(page, limit int) ([]*domain.User, int, error) {
	_, limit, offset := utils.NormalizePagination(page, limit)
	return uc.userRepo.List(limit, offset)
}

// AdminUpdateUser applies the nil-skipping admin update across the user row
// and its profile. A VIP level change is validated against the ladder first.
func (uc *userUsecase) AdminUpdateUser(id string, update domain.AdminUserUpdate) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.IsBlocked != nil {
		user.IsBlocked = *update.IsBlocked
	}
	if update.CanReceiveTasks != nil {
		user.CanReceiveTasks = *update.CanReceiveTasks
	}
	if update.WithdrawalAddress != nil {
		user.WithdrawalAddress = update.WithdrawalAddress
	}

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	if update.VipLevel != nil || update.DailyTasksLimit != nil {
		profile, err := uc.profileRepo.GetByUserID(id)
		if err != nil {
			return nil, err
		}

		if update.VipLevel != nil {
			if *update.VipLevel != 0 {
				if _, err := uc.vipRepo.GetByLevel(*update.VipLevel); err != nil {
					return nil, err
				}
			}
			profile.VipLevel = *update.VipLevel
		}
		if update.DailyTasksLimit != nil {
			if *update.DailyTasksLimit < 1 {
				return nil, fmt.Errorf("%w: daily task limit must be at least 1", domain.ErrValidation)
			}
			profile.DailyTasksLimit = *update.DailyTasksLimit
		}

		if err := uc.profileRepo.Update(profile); err != nil {
			return nil, err
		}
	}

	logger.Info("User updated by admin", logger.String("user_id", id))
	return user, nil
}
