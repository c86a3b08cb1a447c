package postgres

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
)

const withdrawalColumns = `
	id, user_id, amount, address, status, admin_note,
	created_at, updated_at, resolved_at`

type withdrawalRepository struct {
	db *sqlx.DB
}

// NewWithdrawalRepository creates a new withdrawal repository
func NewWithdrawalRepository(db *sqlx.DB) domain.WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

// CreateWithDebit holds the requested amount out of the profit balance and
// records the withdrawal in one transaction. The debit is conditional on the
// balance covering the amount, so a concurrent request cannot overdraw.
func (r *withdrawalRepository) CreateWithDebit(withdrawal *domain.Withdrawal) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin withdrawal transaction: %w", err)
	}
	defer tx.Rollback()

	var profitAfter float64
	err = tx.Get(&profitAfter, `
		UPDATE users SET profit_balance = profit_balance - $1, updated_at = NOW()
		WHERE id = $2 AND profit_balance >= $1
		RETURNING profit_balance`,
		withdrawal.Amount, withdrawal.UserID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrInsufficientProfitBalance
		}
		return fmt.Errorf("failed to debit profit balance: %w", err)
	}

	insert := `
		INSERT INTO withdrawals (id, user_id, amount, address, status)
		VALUES (:id, :user_id, :amount, :address, :status)`
	if _, err := tx.NamedExec(insert, withdrawal); err != nil {
		logger.Error("Failed to create withdrawal",
			logger.String("user_id", withdrawal.UserID),
			logger.ErrorField(err),
		)
		return fmt.Errorf("failed to create withdrawal: %w", err)
	}

	refType := domain.LedgerRefWithdrawal
	refID := withdrawal.ID
	if err := appendLedgerEntry(tx, &domain.LedgerEntry{
		UserID:        withdrawal.UserID,
		Pool:          domain.LedgerPoolProfit,
		Reason:        domain.LedgerReasonWithdrawalHold,
		Delta:         -withdrawal.Amount,
		BalanceAfter:  profitAfter,
		ReferenceType: &refType,
		ReferenceID:   &refID,
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit withdrawal: %w", err)
	}

	logger.Info("Withdrawal requested",
		logger.String("withdrawal_id", withdrawal.ID),
		logger.String("user_id", withdrawal.UserID),
		logger.Float64("amount", withdrawal.Amount),
	)

	return nil
}

func (r *withdrawalRepository) GetByID(id string) (*domain.Withdrawal, error) {
	var withdrawal domain.Withdrawal
	if err := r.db.Get(&withdrawal, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("failed to get withdrawal: %w", err)
	}
	return &withdrawal, nil
}

func (r *withdrawalRepository) ListByUser(userID string, limit, offset int) ([]*domain.Withdrawal, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM withdrawals WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count withdrawals: %w", err)
	}

	query := `
		SELECT ` + withdrawalColumns + `
		FROM withdrawals
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var withdrawals []*domain.Withdrawal
	if err := r.db.Select(&withdrawals, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, total, nil
}

func (r *withdrawalRepository) List(status string, limit, offset int) ([]*domain.Withdrawal, int, error) {
	countQuery := `SELECT COUNT(*) FROM withdrawals`
	listQuery := `SELECT ` + withdrawalColumns + ` FROM withdrawals`

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
		return nil, 0, fmt.Errorf("failed to count withdrawals: %w", err)
	}

	var withdrawals []*domain.Withdrawal
	if err := r.db.Select(&withdrawals, listQuery, listArgs...); err != nil {
		logger.Error("Failed to list withdrawals", logger.ErrorField(err))
		return nil, 0, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, total, nil
}

// Process resolves a pending withdrawal. Completed leaves the held amount
// debited; rejected refunds it to the profit balance with a ledger entry.
func (r *withdrawalRepository) Process(id, status string, adminNote *string) (*domain.Withdrawal, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin withdrawal processing: %w", err)
	}
	defer tx.Rollback()

	var withdrawal domain.Withdrawal
	if err := tx.Get(&withdrawal, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("failed to get withdrawal: %w", err)
	}

	res, err := tx.Exec(`
		UPDATE withdrawals
		SET status = $1, admin_note = $2, resolved_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status = $4`,
		status, adminNote, id, domain.WithdrawalStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update withdrawal status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrWithdrawalAlreadyResolved
	}

	if status == domain.WithdrawalStatusRejected {
		var profitAfter float64
		err := tx.Get(&profitAfter, `
			UPDATE users SET profit_balance = profit_balance + $1, updated_at = NOW()
			WHERE id = $2
			RETURNING profit_balance`,
			withdrawal.Amount, withdrawal.UserID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to refund profit balance: %w", err)
		}

		refType := domain.LedgerRefWithdrawal
		refID := withdrawal.ID
		if err := appendLedgerEntry(tx, &domain.LedgerEntry{
			UserID:        withdrawal.UserID,
			Pool:          domain.LedgerPoolProfit,
			Reason:        domain.LedgerReasonWithdrawalRefund,
			Delta:         withdrawal.Amount,
			BalanceAfter:  profitAfter,
			ReferenceType: &refType,
			ReferenceID:   &refID,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit withdrawal processing: %w", err)
	}

	logger.Info("Withdrawal processed",
		logger.String("withdrawal_id", id),
		logger.String("status", status),
		logger.Float64("amount", withdrawal.Amount),
	)

	return r.GetByID(id)
}
