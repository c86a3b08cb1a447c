package domain

import (
	"time"
)

// VipLevel is one tier of the VIP ladder. Eligibility is driven by deposited
// balance against MinBalance.
type VipLevel struct {
	Level          int     `json:"level" db:"level"`
	Name           string  `json:"name" db:"name"`
	MinBalance     float64 `json:"min_balance" db:"min_balance"`
	ProfitPerOrder float64 `json:"profit_per_order" db:"profit_per_order"`
	AppsPerSet     int     `json:"apps_per_set" db:"apps_per_set"`
	IsActive       bool    `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// VipUpgradeCheck reports whether a user qualifies for a higher tier than
// the one currently stored on their profile.
type VipUpgradeCheck struct {
	Available     bool `json:"available"`
	CurrentLevel  int  `json:"current_level"`
	EligibleLevel int  `json:"eligible_level"`
}

// VipLevelRepository defines operations for VIP ladder data access.
type VipLevelRepository interface {
	Create(level *VipLevel) error
	GetByLevel(level int) (*VipLevel, error)
	List() ([]*VipLevel, error)
	Update(level *VipLevel) error
	Delete(level int) error
}

// VipUsecase defines business logic for VIP eligibility. CheckUpgrade only
// persists a notification; the actual upgrade is a separate admin action.
type VipUsecase interface {
	EligibleLevel(balance float64) (int, error)
	CheckUpgrade(userID string) (*VipUpgradeCheck, error)
	ListLevels() ([]*VipLevel, error)
	CreateLevel(level *VipLevel) error
	UpdateLevel(level *VipLevel) error
	DeleteLevel(level int) error
}
