package service

import (
	"context"
	"sort"

	"github.com/boddenberg/bankup-app-go/internal/domain"
	"github.com/boddenberg/bankup-app-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var notificationTracer = otel.Tracer("service/notifications")

// NotificationService lists the account notifications.
type NotificationService struct {
	api port.NotificationAPI
}

// NewNotificationService creates a new notification service.
func NewNotificationService(api port.NotificationAPI) *NotificationService {
	return &NotificationService{api: api}
}

// List returns notifications, newest first.
func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	ctx, span := notificationTracer.Start(ctx, "NotificationService.List")
	defer span.End()

	items, err := s.api.ListNotifications(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	span.SetAttributes(attribute.Int("notifications.count", len(items)))
	return items, nil
}
