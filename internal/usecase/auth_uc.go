package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/metrics"
	"github.com/adityarizkyr/reviora/pkg/utils"
)

type authUsecase struct {
	userRepo    domain.UserRepository
	authService domain.AuthService

	defaultDailyTasks int
}

// NewAuthUsecase creates the registration and login usecase.
func NewAuthUsecase(
	userRepo domain.UserRepository,
	authService domain.AuthService,
	defaultDailyTasks int,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo:          userRepo,
		authService:       authService,
		defaultDailyTasks: defaultDailyTasks,
	}
}

func (uc *authUsecase) Register(email, username, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if !utils.ValidateEmail(email) {
		return nil, "", fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	if len(username) < 3 {
		return nil, "", fmt.Errorf("%w: username must be at least 3 characters", domain.ErrValidation)
	}
	if !utils.ValidatePassword(password) {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters with upper, lower and digit", domain.ErrValidation)
	}

	if _, err := uc.userRepo.GetByEmail(email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}
	if _, err := uc.userRepo.GetByUsername(username); err == nil {
		return nil, "", domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:              utils.GenerateUUID(),
		Email:           email,
		Username:        username,
		PasswordHash:    hash,
		Role:            domain.RoleUser,
		NextTaskNumber:  1,
		CanReceiveTasks: true,
	}
	profile := &domain.Profile{
		UserID:          user.ID,
		VipLevel:        0,
		DailyTasksLimit: uc.defaultDailyTasks,
	}

	if err := uc.userRepo.Create(user, profile); err != nil {
		metrics.RecordAuthAttempt("register", "error")
		return nil, "", err
	}

	token, err := uc.authService.GenerateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	metrics.RecordAuthAttempt("register", "success")
	return user, token, nil
}

// Login accepts an email or a username as identifier. Failed lookups and
// wrong passwords collapse into the same sentinel so the API does not leak
// which part was wrong.
func (uc *authUsecase) Login(identifier, password string) (*domain.User, string, error) {
	identifier = strings.TrimSpace(identifier)

	var (
		user *domain.User
		err  error
	)
	if utils.ValidateEmail(identifier) {
		user, err = uc.userRepo.GetByEmail(strings.ToLower(identifier))
	} else {
		user, err = uc.userRepo.GetByUsername(identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.RecordAuthAttempt("login", "failure")
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !utils.VerifyPassword(password, user.PasswordHash) {
		metrics.RecordAuthAttempt("login", "failure")
		return nil, "", domain.ErrInvalidCredentials
	}

	if user.IsBlocked {
		metrics.RecordAuthAttempt("login", "blocked")
		return nil, "", domain.ErrUserBlocked
	}

	token, err := uc.authService.GenerateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	if err := uc.userRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Warn("Failed to record last login",
			logger.String("user_id", user.ID),
			logger.ErrorField(err),
		)
	}

	metrics.RecordAuthAttempt("login", "success")
	return user, token, nil
}
