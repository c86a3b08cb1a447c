package domain

import (
	"time"
)

// User represents a platform account. Balance and ProfitBalance are
// independent pools: Balance holds deposited funds, ProfitBalance holds
// earned profit and is the only withdrawable pool.
type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`

	Balance        float64 `json:"balance" db:"balance"`
	ProfitBalance  float64 `json:"profit_balance" db:"profit_balance"`
	NextTaskNumber int     `json:"next_task_number" db:"next_task_number"`

	IsBlocked         bool    `json:"is_blocked" db:"is_blocked"`
	CanReceiveTasks   bool    `json:"can_receive_tasks" db:"can_receive_tasks"`
	WithdrawalAddress *string `json:"withdrawal_address" db:"withdrawal_address"`

	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at" db:"last_login_at"`
}

// Profile carries the per-user task and VIP state, 1:1 with User.
type Profile struct {
	UserID              string    `json:"user_id" db:"user_id"`
	VipLevel            int       `json:"vip_level" db:"vip_level"`
	TotalInvested       float64   `json:"total_invested" db:"total_invested"`
	DailyTasksLimit     int       `json:"daily_tasks_limit" db:"daily_tasks_limit"`
	DailyTasksCompleted int       `json:"daily_tasks_completed" db:"daily_tasks_completed"`
	LastTaskReset       time.Time `json:"last_task_reset" db:"last_task_reset"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// AdminUserUpdate carries the fields an admin may change on a user. Nil
// pointers leave the current value untouched.
type AdminUserUpdate struct {
	IsBlocked         *bool   `json:"is_blocked"`
	CanReceiveTasks   *bool   `json:"can_receive_tasks"`
	WithdrawalAddress *string `json:"withdrawal_address"`
	VipLevel          *int    `json:"vip_level"`
	DailyTasksLimit   *int    `json:"daily_tasks_limit"`
}

// UserRepository defines operations for user data access
type UserRepository interface {
	Create(user *User, profile *Profile) error
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	GetByUsername(username string) (*User, error)
	Update(user *User) error
	List(limit, offset int) ([]*User, int, error)
	UpdateLastLogin(id string) error
}

// ProfileRepository defines operations for profile data access
type ProfileRepository interface {
	GetByUserID(userID string) (*Profile, error)
	Update(profile *Profile) error
	ResetDailyCounters(before time.Time) (int64, error)
}

// UserUsecase defines business logic for account reads and admin user
// management.
type UserUsecase interface {
	GetMe(userID string) (*User, *Profile, error)
	ListUsers(page, limit int) ([]*User, int, error)
	AdminUpdateUser(id string, update AdminUserUpdate) (*User, error)
}

// CanBeAssignedTasks reports whether the assignment engine may build a
// batch for this user.
func (u *User) CanBeAssignedTasks() bool {
	return !u.IsBlocked && u.CanReceiveTasks
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
