package domain

import (
	"time"
)

const (
	NotificationTypeSystem     = "system"
	NotificationTypeVipUpgrade = "vip_upgrade"
	NotificationTypeBroadcast  = "broadcast"
)

// Notification is a persisted broadcast row. Delivery beyond persistence is
// out of scope.
type Notification struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Type      string    `json:"type" db:"type"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NotificationRepository defines operations for notification data access.
type NotificationRepository interface {
	Create(notification *Notification) error
	List(limit, offset int) ([]*Notification, int, error)
	MarkRead(id string) error
}

// NotificationUsecase defines business logic for broadcasts.
type NotificationUsecase interface {
	Broadcast(title, message, notificationType string) (*Notification, error)
	ListNotifications(page, limit int) ([]*Notification, int, error)
	MarkRead(id string) error
}
