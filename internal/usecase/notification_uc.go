package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/utils"
)

type notificationUsecase struct {
	notificationRepo domain.NotificationRepository
}

// NewNotificationUsecase creates the broadcast usecase.
func NewNotificationUsecase(notificationRepo domain.NotificationRepository) domain.NotificationUsecase {
	return &notificationUsecase{notificationRepo: notificationRepo}
}

func (uc *notificationUsecase) Broadcast(title, message, notificationType string) (*domain.Notification, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: notification title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: notification message is required", domain.ErrValidation)
	}

	if notificationType == "" {
		notificationType = domain.NotificationTypeBroadcast
	}
	switch notificationType {
	case domain.NotificationTypeSystem, domain.NotificationTypeVipUpgrade, domain.NotificationTypeBroadcast:
	default:
		return nil, fmt.Errorf("%w: unknown notification type %q", domain.ErrValidation, notificationType)
	}

	notification := &domain.Notification{
		ID:        utils.GenerateUUID(),
		Title:     title,
		Message:   message,
		Type:      notificationType,
		CreatedAt: time.Now(),
	}
	if err := uc.notificationRepo.Create(notification); err != nil {
		return nil, err
	}

	logger.Info("Notification broadcast",
		logger.String("notification_id", notification.ID),
		logger.String("type", notificationType),
	)
	return notification, nil
}

func (uc *notificationUsecase) ListNotifications(page, limit int) ([]*domain.Notification, int, error) {
	_, limit, offset := utils.NormalizePagination(page, limit)
	return uc.notificationRepo.List(limit, offset)
}

func (uc *notificationUsecase) MarkRead(id string) error {
	return uc.notificationRepo.MarkRead(id)
}
