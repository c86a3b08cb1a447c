package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/utils"
)

type vipUsecase struct {
	vipRepo          domain.VipLevelRepository
	userRepo         domain.UserRepository
	profileRepo      domain.ProfileRepository
	notificationRepo domain.NotificationRepository
	cacheRepo        domain.CacheRepository
}

// NewVipUsecase creates the VIP eligibility and ladder management usecase.
func NewVipUsecase(
	vipRepo domain.VipLevelRepository,
	userRepo domain.UserRepository,
	profileRepo domain.ProfileRepository,
	notificationRepo domain.NotificationRepository,
	cacheRepo domain.CacheRepository,
) domain.VipUsecase {
	return &vipUsecase{
		vipRepo:          vipRepo,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		cacheRepo:        cacheRepo,
	}
}

// ladder reads the VIP levels through the cache, falling back to the
// database on a miss.
func (uc *vipUsecase) ladder() ([]*domain.VipLevel, error) {
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetVipLevels()
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	levels, err := uc.vipRepo.List()
	if err != nil {
		return nil, err
	}

	if uc.cacheRepo != nil && len(levels) > 0 {
		if err := uc.cacheRepo.CacheVipLevels(levels); err != nil {
			logger.Warn("Failed to cache VIP levels", logger.ErrorField(err))
		}
	}
	return levels, nil
}

func (uc *vipUsecase) invalidateLadder() {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.InvalidateVipLevels(); err != nil {
		logger.Warn("Failed to invalidate VIP level cache", logger.ErrorField(err))
	}
}

// EligibleLevel returns the highest active tier whose minimum balance the
// given balance covers, defaulting to 0 when none qualifies.
func (uc *vipUsecase) EligibleLevel(balance float64) (int, error) {
	levels, err := uc.ladder()
	if err != nil {
		return 0, err
	}

	eligible := 0
	for _, level := range levels {
		if level.IsActive && level.MinBalance <= balance && level.Level > eligible {
			eligible = level.Level
		}
	}
	return eligible, nil
}

// CheckUpgrade compares the user's stored tier with the tier their balance
// qualifies for. When a higher tier is available it persists a notification;
// the upgrade itself stays an explicit admin action.
func (uc *vipUsecase) CheckUpgrade(userID string) (*domain.VipUpgradeCheck, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	eligible, err := uc.EligibleLevel(user.Balance)
	if err != nil {
		return nil, err
	}

	check := &domain.VipUpgradeCheck{
		Available:     eligible > profile.VipLevel,
		CurrentLevel:  profile.VipLevel,
		EligibleLevel: eligible,
	}

	if check.Available {
		notification := &domain.Notification{
			ID:        utils.GenerateUUID(),
			Title:     "VIP upgrade available",
			Message:   fmt.Sprintf("%s qualifies for VIP level %d", user.Username, eligible),
			Type:      domain.NotificationTypeVipUpgrade,
			CreatedAt: time.Now(),
		}
		if err := uc.notificationRepo.Create(notification); err != nil {
			return nil, err
		}
		logger.Info("VIP upgrade available",
			logger.String("user_id", userID),
			logger.Int("current_level", profile.VipLevel),
			logger.Int("eligible_level", eligible),
		)
	}
	return check, nil
}

func (uc *vipUsecase) ListLevels() ([]*domain.VipLevel, error) {
	return uc.ladder()
}

func (uc *vipUsecase) CreateLevel(level *domain.VipLevel) error {
	if err := validateVipLevel(level); err != nil {
		return err
	}
	if err := uc.vipRepo.Create(level); err != nil {
		return err
	}
	uc.invalidateLadder()
	return nil
}

func (uc *vipUsecase) UpdateLevel(level *domain.VipLevel) error {
	if err := validateVipLevel(level); err != nil {
		return err
	}
	if err := uc.vipRepo.Update(level); err != nil {
		return err
	}
	uc.invalidateLadder()
	return nil
}

func (uc *vipUsecase) DeleteLevel(level int) error {
	if err := uc.vipRepo.Delete(level); err != nil {
		return err
	}
	uc.invalidateLadder()
	return nil
}

func validateVipLevel(level *domain.VipLevel) error {
	if level == nil {
		return fmt.Errorf("%w: vip level payload is required", domain.ErrValidation)
	}
	if level.Level < 1 {
		return fmt.Errorf("%w: vip level must be at least 1", domain.ErrValidation)
	}
	if strings.TrimSpace(level.Name) == "" {
		return fmt.Errorf("%w: vip level name is required", domain.ErrValidation)
	}
	if level.MinBalance < 0 {
		return fmt.Errorf("%w: minimum balance cannot be negative", domain.ErrValidation)
	}
	return nil
}
