package domain

import (
	"time"
)

// LedgerPool identifies which balance pool an entry touched.
type LedgerPool string

const (
	LedgerPoolBalance LedgerPool = "balance"
	LedgerPoolProfit  LedgerPool = "profit"
)

// Ledger reason codes. Every settlement path appends one entry per pool it
// mutates, inside the same transaction as the mutation.
const (
	LedgerReasonTaskProfit       = "task_profit"
	LedgerReasonTaskPenalty      = "task_penalty"
	LedgerReasonDeposit          = "deposit"
	LedgerReasonWithdrawalHold   = "withdrawal_hold"
	LedgerReasonWithdrawalRefund = "withdrawal_refund"
)

// LedgerEntry is one append-only record of a balance mutation. BalanceAfter
// is the pool's value after applying Delta, making the ledger an auditable
// projection of the cached balance columns.
type LedgerEntry struct {
	ID           string     `json:"id" db:"id"`
	UserID       string     `json:"user_id" db:"user_id"`
	Pool         LedgerPool `json:"pool" db:"pool"`
	Reason       string     `json:"reason" db:"reason"`
	Delta        float64    `json:"delta" db:"delta"`
	BalanceAfter float64    `json:"balance_after" db:"balance_after"`

	ReferenceType *string `json:"reference_type" db:"reference_type"`
	ReferenceID   *string `json:"reference_id" db:"reference_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Ledger reference types.
const (
	LedgerRefTask       = "task"
	LedgerRefDeposit    = "deposit"
	LedgerRefWithdrawal = "withdrawal"
)

// LedgerRepository defines read access to the ledger. Entries are written
// only by the settlement transactions in the postgres repositories.
type LedgerRepository interface {
	ListByUser(userID string, limit, offset int) ([]*LedgerEntry, int, error)
	ListByReference(referenceType, referenceID string) ([]*LedgerEntry, error)
}

// LedgerUsecase exposes the ledger to the API.
type LedgerUsecase interface {
	ListUserEntries(userID string, page, limit int) ([]*LedgerEntry, int, error)
}
