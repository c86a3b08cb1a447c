package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/utils"
)

type ledgerRepository struct {
	db *sqlx.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *sqlx.DB) domain.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) ListByUser(userID string, limit, offset int) ([]*domain.LedgerEntry, int, error) {
	query := `
		SELECT id, user_id, pool, reason, delta, balance_after,
			reference_type, reference_id, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var entries []*domain.LedgerEntry
	if err := r.db.Select(&entries, query, userID, limit, offset); err != nil {
		logger.Error("Failed to list ledger entries",
			logger.String("user_id", userID),
			logger.ErrorField(err),
		)
		return nil, 0, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM ledger_entries WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	return entries, total, nil
}

func (r *ledgerRepository) ListByReference(referenceType, referenceID string) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT id, user_id, pool, reason, delta, balance_after,
			reference_type, reference_id, created_at
		FROM ledger_entries
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at DESC`

	var entries []*domain.LedgerEntry
	if err := r.db.Select(&entries, query, referenceType, referenceID); err != nil {
		return nil, fmt.Errorf("failed to list ledger entries by reference: %w", err)
	}
	return entries, nil
}

// appendLedgerEntry writes one ledger row on the given executor. Settlement
// transactions call this with their *sqlx.Tx so the entry commits together
// with the balance mutation it records.
func appendLedgerEntry(e sqlx.Ext, entry *domain.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = utils.GenerateUUID()
	}

	query := `
		INSERT INTO ledger_entries (
			id, user_id, pool, reason, delta, balance_after,
			reference_type, reference_id, created_at
		) VALUES (
			:id, :user_id, :pool, :reason, :delta, :balance_after,
			:reference_type, :reference_id, NOW()
		)`

	if _, err := sqlx.NamedExec(e, query, entry); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}
