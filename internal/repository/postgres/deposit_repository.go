package postgres

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
)

const depositColumns = `
	id, user_id, amount, tx_hash, status, admin_note,
	created_at, updated_at, resolved_at`

type depositRepository struct {
	db *sqlx.DB
}

// NewDepositRepository creates a new deposit repository
func NewDepositRepository(db *sqlx.DB) domain.DepositRepository {
	return &depositRepository{db: db}
}

func (r *depositRepository) Create(deposit *domain.Deposit) error {
	query := `
		INSERT INTO deposits (id, user_id, amount, tx_hash, status)
		VALUES (:id, :user_id, :amount, :tx_hash, :status)`

	if _, err := r.db.NamedExec(query, deposit); err != nil {
		logger.Error("Failed to create deposit",
			logger.String("user_id", deposit.UserID),
			logger.ErrorField(err),
		)
		return fmt.Errorf("failed to create deposit: %w", err)
	}
	return nil
}

func (r *depositRepository) GetByID(id string) (*domain.Deposit, error) {
	var deposit domain.Deposit
	if err := r.db.Get(&deposit, `SELECT `+depositColumns+` FROM deposits WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrDepositNotFound
		}
		return nil, fmt.Errorf("failed to get deposit: %w", err)
	}
	return &deposit, nil
}

func (r *depositRepository) ListByUser(userID string, limit, offset int) ([]*domain.Deposit, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM deposits WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count deposits: %w", err)
	}

	query := `
		SELECT ` + depositColumns + `
		FROM deposits
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var deposits []*domain.Deposit
	if err := r.db.Select(&deposits, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list deposits: %w", err)
	}
	return deposits, total, nil
}

func (r *depositRepository) List(status string, limit, offset int) ([]*domain.Deposit, int, error) {
	countQuery := `SELECT COUNT(*) FROM deposits`
	listQuery := `SELECT ` + depositColumns + ` FROM deposits`

	countArgs := []interface{}{}
	listArgs := []interface{}{}
	if status != "" {
		countQuery += ` WHERE status = $1`
		listQuery += ` WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		countArgs = append(countArgs, status)
		listArgs = append(listArgs, status, limit, offset)
	} else {
		listQuery += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		listArgs = append(listArgs, limit, offset)
	}

	var total int
	if err := r.db.Get(&total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count deposits: %w", err)
	}

	var deposits []*domain.Deposit
	if err := r.db.Select(&deposits, listQuery, listArgs...); err != nil {
		logger.Error("Failed to list deposits", logger.ErrorField(err))
		return nil, 0, fmt.Errorf("failed to list deposits: %w", err)
	}
	return deposits, total, nil
}

// Verify resolves a pending deposit to verified or rejected. The status
// transition is guarded so two concurrent admin calls cannot both credit
// the user. A verified deposit credits the main balance, bumps
// total_invested and writes one ledger entry in the same transaction.
func (r *depositRepository) Verify(id, status string, adminNote *string) (*domain.Deposit, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin deposit verification: %w", err)
	}
	defer tx.Rollback()

	var deposit domain.Deposit
	if err := tx.Get(&deposit, `SELECT `+depositColumns+` FROM deposits WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrDepositNotFound
		}
		return nil, fmt.Errorf("failed to get deposit: %w", err)
	}

	res, err := tx.Exec(`
		UPDATE deposits
		SET status = $1, admin_note = $2, resolved_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status = $4`,
		status, adminNote, id, domain.DepositStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update deposit status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrDepositAlreadyResolved
	}

	if status == domain.DepositStatusVerified {
		var balanceAfter float64
		err := tx.Get(&balanceAfter, `
			UPDATE users SET balance = balance + $1, updated_at = NOW()
			WHERE id = $2
			RETURNING balance`,
			deposit.Amount, deposit.UserID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to credit balance: %w", err)
		}

		if _, err := tx.Exec(`
			UPDATE profiles SET total_invested = total_invested + $1, updated_at = NOW()
			WHERE user_id = $2`,
			deposit.Amount, deposit.UserID,
		); err != nil {
			return nil, fmt.Errorf("failed to update total invested: %w", err)
		}

		refType := domain.LedgerRefDeposit
		refID := deposit.ID
		if err := appendLedgerEntry(tx, &domain.LedgerEntry{
			UserID:        deposit.UserID,
			Pool:          domain.LedgerPoolBalance,
			Reason:        domain.LedgerReasonDeposit,
			Delta:         deposit.Amount,
			BalanceAfter:  balanceAfter,
			ReferenceType: &refType,
			ReferenceID:   &refID,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit deposit verification: %w", err)
	}

	logger.Info("Deposit resolved",
		logger.String("deposit_id", id),
		logger.String("status", status),
		logger.Float64("amount", deposit.Amount),
	)

	return r.GetByID(id)
}
