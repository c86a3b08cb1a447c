package domain

import (
	"time"
)

const (
	DepositStatusPending  = "pending"
	DepositStatusVerified = "verified"
	DepositStatusRejected = "rejected"

	WithdrawalStatusPending   = "pending"
	WithdrawalStatusCompleted = "completed"
	WithdrawalStatusRejected  = "rejected"
)

// Deposit is a user's crypto deposit claim, resolved by an admin. Verifying
// credits Balance and Profile.TotalInvested exactly once.
type Deposit struct {
	ID        string  `json:"id" db:"id"`
	UserID    string  `json:"user_id" db:"user_id"`
	Amount    float64 `json:"amount" db:"amount"`
	TxHash    string  `json:"tx_hash" db:"tx_hash"`
	Status    string  `json:"status" db:"status"`
	AdminNote *string `json:"admin_note" db:"admin_note"`

	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	ResolvedAt *time.Time `json:"resolved_at" db:"resolved_at"`
}

// Withdrawal is a payout request. Funds are debited from ProfitBalance at
// request time; rejection credits them back.
type Withdrawal struct {
	ID        string  `json:"id" db:"id"`
	UserID    string  `json:"user_id" db:"user_id"`
	Amount    float64 `json:"amount" db:"amount"`
	Address   string  `json:"address" db:"address"`
	Status    string  `json:"status" db:"status"`
	AdminNote *string `json:"admin_note" db:"admin_note"`

	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	ResolvedAt *time.Time `json:"resolved_at" db:"resolved_at"`
}

// DepositRepository defines operations for deposit data access. Verify owns
// the settlement transaction: the guarded status transition and the balance
// credit commit together or not at all.
type DepositRepository interface {
	Create(deposit *Deposit) error
	GetByID(id string) (*Deposit, error)
	ListByUser(userID string, limit, offset int) ([]*Deposit, int, error)
	List(status string, limit, offset int) ([]*Deposit, int, error)
	Verify(id, status string, adminNote *string) (*Deposit, error)
}

// WithdrawalRepository defines operations for withdrawal data access.
// CreateWithDebit and Process own their settlement transactions.
type WithdrawalRepository interface {
	CreateWithDebit(withdrawal *Withdrawal) error
	GetByID(id string) (*Withdrawal, error)
	ListByUser(userID string, limit, offset int) ([]*Withdrawal, int, error)
	List(status string, limit, offset int) ([]*Withdrawal, int, error)
	Process(id, status string, adminNote *string) (*Withdrawal, error)
}

// SettlementUsecase defines business logic for deposits and withdrawals.
type SettlementUsecase interface {
	CreateDeposit(userID string, amount float64, txHash string) (*Deposit, error)
	VerifyDeposit(depositID, status string, adminNote *string) (*Deposit, error)
	ListUserDeposits(userID string, page, limit int) ([]*Deposit, int, error)
	RequestWithdrawal(userID string, amount float64) (*Withdrawal, error)
	ProcessWithdrawal(withdrawalID, status string, adminNote *string) (*Withdrawal, error)
	ListUserWithdrawals(userID string, page, limit int) ([]*Withdrawal, int, error)
}
