package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
)

type profileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sqlx.DB) domain.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(userID string) (*domain.Profile, error) {
	query := `
		SELECT user_id, vip_level, total_invested,
			daily_tasks_limit, daily_tasks_completed, last_task_reset,
			created_at, updated_at
		FROM profiles WHERE user_id = $1`

	var profile domain.Profile
	if err := r.db.Get(&profile, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		logger.Error("Failed to get profile",
			logger.String("user_id", userID),
			logger.ErrorField(err),
		)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) Update(profile *domain.Profile) error {
	query := `
		UPDATE profiles SET
			vip_level = :vip_level, total_invested = :total_invested,
			daily_tasks_limit = :daily_tasks_limit,
			daily_tasks_completed = :daily_tasks_completed,
			last_task_reset = :last_task_reset,
			updated_at = NOW()
		WHERE user_id = :user_id`

	res, err := r.db.NamedExec(query, profile)
	if err != nil {
		logger.Error("Failed to update profile",
			logger.String("user_id", profile.UserID),
			logger.ErrorField(err),
		)
		return fmt.Errorf("failed to update profile: %w", err)
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

// ResetDailyCounters zeroes daily_tasks_completed for every profile whose
// last reset predates the cutoff. Called by the scheduled reset job.
func (r *profileRepository) ResetDailyCounters(before time.Time) (int64, error) {
	query := `
		UPDATE profiles
		SET daily_tasks_completed = 0, last_task_reset = NOW(), updated_at = NOW()
		WHERE last_task_reset < $1`

	res, err := r.db.Exec(query, before)
	if err != nil {
		logger.Error("Failed to reset daily counters", logger.ErrorField(err))
		return 0, fmt.Errorf("failed to reset daily counters: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return affected, nil
}
