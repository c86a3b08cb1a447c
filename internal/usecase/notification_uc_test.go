package usecase

import (
	"errors"
	"testing"

	"github.com/adityarizkyr/reviora/internal/domain"
)

func TestBroadcast(t *testing.T) {
	repo := &fakeNotificationRepo{}
	uc := NewNotificationUsecase(repo)

	notification, err := uc.Broadcast("Maintenance", "Down at midnight", "")
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if notification.Type != domain.NotificationTypeBroadcast {
		t.Errorf("type = %q, want default broadcast", notification.Type)
	}
	if notification.ID == "" || notification.CreatedAt.IsZero() {
		t.Errorf("notification = %+v", notification)
	}
	if len(repo.notifications) != 1 {
		t.Errorf("persisted = %d, want 1", len(repo.notifications))
	}

	if _, err := uc.Broadcast("  ", "msg", ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank title: err = %v, want ErrValidation", err)
	}
	if _, err := uc.Broadcast("title", "  ", ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank message: err = %v, want ErrValidation", err)
	}
	if _, err := uc.Broadcast("title", "msg", "carrier-pigeon"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown type: err = %v, want ErrValidation", err)
	}
}

func TestMarkRead(t *testing.T) {
	repo := &fakeNotificationRepo{notifications: []*domain.Notification{{ID: "n1"}}}
	uc := NewNotificationUsecase(repo)

	if err := uc.MarkRead("n1"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !repo.notifications[0].IsRead {
		t.Error("notification not marked read")
	}

	if err := uc.MarkRead("ghost"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Errorf("err = %v, want ErrNotificationNotFound", err)
	}
}
