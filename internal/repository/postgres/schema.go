package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityarizkyr/reviora/pkg/logger"
)

// schemaStatements is the idempotent bootstrap DDL, executed in order at
// startup. users precedes profiles and user_tasks because of the foreign
// keys.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'USER',
		balance NUMERIC(18,2) NOT NULL DEFAULT 0,
		profit_balance NUMERIC(18,2) NOT NULL DEFAULT 0,
		next_task_number INT NOT NULL DEFAULT 1,
		is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
		can_receive_tasks BOOLEAN NOT NULL DEFAULT TRUE,
		withdrawal_address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_login_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		vip_level INT NOT NULL DEFAULT 0,
		total_invested NUMERIC(18,2) NOT NULL DEFAULT 0,
		daily_tasks_limit INT NOT NULL DEFAULT 40,
		daily_tasks_completed INT NOT NULL DEFAULT 0,
		last_task_reset TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		image_url TEXT,
		default_profit NUMERIC(18,2) NOT NULL DEFAULT 0,
		default_deposit NUMERIC(18,2) NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS user_tasks (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(id),
		task_number INT NOT NULL,
		status TEXT NOT NULL DEFAULT 'assigned',
		profit_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
		is_forced BOOLEAN NOT NULL DEFAULT FALSE,
		deposit_amount NUMERIC(18,2),
		deposit_status TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		replaced_by_id UUID,
		proof TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at TIMESTAMPTZ,
		declined_at TIMESTAMPTZ
	)`,

	`CREATE INDEX IF NOT EXISTS idx_user_tasks_active
		ON user_tasks (user_id, task_number) WHERE is_active`,

	`CREATE TABLE IF NOT EXISTS deposits (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		amount NUMERIC(18,2) NOT NULL,
		tx_hash TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		admin_note TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		resolved_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS withdrawals (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		amount NUMERIC(18,2) NOT NULL,
		address TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		admin_note TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		resolved_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS vip_levels (
		level INT PRIMARY KEY,
		name TEXT NOT NULL,
		min_balance NUMERIC(18,2) NOT NULL DEFAULT 0,
		profit_per_order NUMERIC(18,2) NOT NULL DEFAULT 0,
		apps_per_set INT NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'broadcast',
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS ledger_entries (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		pool TEXT NOT NULL,
		reason TEXT NOT NULL,
		delta NUMERIC(18,2) NOT NULL,
		balance_after NUMERIC(18,2) NOT NULL,
		reference_type TEXT,
		reference_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_ledger_entries_user
		ON ledger_entries (user_id, created_at DESC)`,
}

// EnsureSchema applies the bootstrap DDL. Every statement is idempotent, so
// startup on an already-initialized database is a no-op.
func EnsureSchema(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	logger.Info("Database schema verified")
	return nil
}
