package postgres

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
)

const vipColumns = `
	level, name, min_balance, profit_per_order, apps_per_set,
	is_active, created_at, updated_at`

type vipLevelRepository struct {
	db *sqlx.DB
}

// NewVipLevelRepository creates a new VIP level repository
func NewVipLevelRepository(db *sqlx.DB) domain.VipLevelRepository {
	return &vipLevelRepository{db: db}
}

func (r *vipLevelRepository) Create(level *domain.VipLevel) error {
	query := `
		INSERT INTO vip_levels (level, name, min_balance, profit_per_order, apps_per_set, is_active)
		VALUES (:level, :name, :min_balance, :profit_per_order, :apps_per_set, :is_active)`

	if _, err := r.db.NamedExec(query, level); err != nil {
		logger.Error("Failed to create VIP level",
			logger.Int("level", level.Level),
			logger.ErrorField(err),
		)
		return fmt.Errorf("failed to create vip level: %w", err)
	}
	return nil
}

func (r *vipLevelRepository) GetByLevel(level int) (*domain.VipLevel, error) {
	var vip domain.VipLevel
	if err := r.db.Get(&vip, `SELECT `+vipColumns+` FROM vip_levels WHERE level = $1`, level); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrVipLevelNotFound
		}
		return nil, fmt.Errorf("failed to get vip level: %w", err)
	}
	return &vip, nil
}

func (r *vipLevelRepository) List() ([]*domain.VipLevel, error) {
	query := `SELECT ` + vipColumns + ` FROM vip_levels ORDER BY level ASC`

	var levels []*domain.VipLevel
	if err := r.db.Select(&levels, query); err != nil {
		logger.Error("Failed to list VIP levels", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to list vip levels: %w", err)
	}
	return levels, nil
}

func (r *vipLevelRepository) Update(level *domain.VipLevel) error {
	query := `
		UPDATE vip_levels SET
			name = :name, min_balance = :min_balance,
			profit_per_order = :profit_per_order, apps_per_set = :apps_per_set,
			is_active = :is_active, updated_at = NOW()
		WHERE level = :level`

	res, err := r.db.NamedExec(query, level)
	if err != nil {
		return fmt.Errorf("failed to update vip level: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrVipLevelNotFound
	}
	return nil
}

func (r *vipLevelRepository) Delete(level int) error {
	res, err := r.db.Exec(`DELETE FROM vip_levels WHERE level = $1`, level)
	if err != nil {
		return fmt.Errorf("failed to delete vip level: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrVipLevelNotFound
	}

	logger.Info("VIP level deleted", logger.Int("level", level))
	return nil
}
