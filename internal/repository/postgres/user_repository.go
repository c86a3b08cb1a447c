package postgres

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
)

const userColumns = `
	id, email, username, password_hash, role,
	balance, profit_balance, next_task_number,
	is_blocked, can_receive_tasks, withdrawal_address,
	created_at, updated_at, last_login_at`

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) domain.UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user together with its 1:1 profile in one transaction.
func (r *userRepository) Create(user *domain.User, profile *domain.Profile) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin registration transaction: %w", err)
	}
	defer tx.Rollback()

	userInsert := `
		INSERT INTO users (
			id, email, username, password_hash, role,
			balance, profit_balance, next_task_number,
			is_blocked, can_receive_tasks, withdrawal_address
		) VALUES (
			:id, :email, :username, :password_hash, :role,
			:balance, :profit_balance, :next_task_number,
			:is_blocked, :can_receive_tasks, :withdrawal_address
		)`
	if _, err := tx.NamedExec(userInsert, user); err != nil {
		logger.Error("Failed to create user",
			logger.String("email", user.Email),
			logger.ErrorField(err),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}

	profileInsert := `
		INSERT INTO profiles (
			user_id, vip_level, total_invested,
			daily_tasks_limit, daily_tasks_completed, last_task_reset
		) VALUES (
			:user_id, :vip_level, :total_invested,
			:daily_tasks_limit, :daily_tasks_completed, NOW()
		)`
	if _, err := tx.NamedExec(profileInsert, profile); err != nil {
		logger.Error("Failed to create profile",
			logger.String("user_id", user.ID),
			logger.ErrorField(err),
		)
		return fmt.Errorf("failed to create profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}

	logger.Info("User created",
		logger.String("user_id", user.ID),
		logger.String("username", user.Username),
	)

	return nil
}

func (r *userRepository) GetByID(id string) (*domain.User, error) {
	var user domain.User
	if err := r.db.Get(&user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		logger.Error("Failed to get user by ID",
			logger.String("user_id", id),
			logger.ErrorField(err),
		)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.Get(&user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.Get(&user, `SELECT `+userColumns+` FROM users WHERE username = $1`, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(user *domain.User) error {
	query := `
		UPDATE users SET
			email = :email, username = :username, password_hash = :password_hash,
			role = :role, is_blocked = :is_blocked,
			can_receive_tasks = :can_receive_tasks,
			withdrawal_address = :withdrawal_address,
			updated_at = NOW()
		WHERE id = :id`

	res, err := r.db.NamedExec(query, user)
	if err != nil {
		logger.Error("Failed to update user",
			logger.String("user_id", user.ID),
			logger.ErrorField(err),
		)
		return fmt.Errorf("failed to update user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) List(limit, offset int) ([]*domain.User, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM users WHERE role = $1`, domain.RoleUser); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var users []*domain.User
	if err := r.db.Select(&users, query, domain.RoleUser, limit, offset); err != nil {
		logger.Error("Failed to list users", logger.ErrorField(err))
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (r *userRepository) UpdateLastLogin(id string) error {
	res, err := r.db.Exec(`UPDATE users SET last_login_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
