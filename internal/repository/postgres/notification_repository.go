package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
)

type notificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sqlx.DB) domain.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, title, message, type, is_read, created_at)
		VALUES (:id, :title, :message, :type, :is_read, :created_at)`

	if _, err := r.db.NamedExec(query, notification); err != nil {
		logger.Error("Failed to create notification",
			logger.String("type", notification.Type),
			logger.ErrorField(err),
		)
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) List(limit, offset int) ([]*domain.Notification, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM notifications`); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, title, message, type, is_read, created_at
		FROM notifications
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var notifications []*domain.Notification
	if err := r.db.Select(&notifications, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(id string) error {
	res, err := r.db.Exec(`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
