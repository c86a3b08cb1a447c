package domain

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrTasksDisabled      = errors.New("user cannot receive tasks")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")

	ErrNoActiveProducts = errors.New("no active products available")
	ErrProductNotFound  = errors.New("product not found")
	ErrProductInUse     = errors.New("product is referenced by tasks")

	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskNotActionable = errors.New("task is not in an actionable state")
	ErrProofRequired     = errors.New("completion proof is required")

	ErrDepositNotFound           = errors.New("deposit not found")
	ErrDepositAlreadyResolved    = errors.New("deposit already resolved")
	ErrWithdrawalNotFound        = errors.New("withdrawal not found")
	ErrWithdrawalAlreadyResolved = errors.New("withdrawal already resolved")

	ErrInsufficientProfitBalance = errors.New("insufficient profit balance")
	ErrNoWithdrawalAddress       = errors.New("withdrawal address not set")
	ErrBelowWithdrawalMinimum    = errors.New("amount below withdrawal minimum")

	ErrVipLevelNotFound     = errors.New("vip level not found")
	ErrNotificationNotFound = errors.New("notification not found")
)
