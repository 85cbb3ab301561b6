package repository

import (
	"context"

	"seo-assistant-be/internal/model"

	"github.com/google/uuid"
)

// NotificationRepository covers the notification inbox and the type
// registry. It sits outside the unit of work: notification writes are
// fire-and-forget and never join a business transaction.
type NotificationRepository interface {
	// Inbox operations
	CreateNotification(ctx context.Context, notification *model.Notification) error
	GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, notificationID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error

	// Registry operations
	GetNotificationTypeByCode(ctx context.Context, code string) (*model.NotificationType, error)
	GetUsersByRole(ctx context.Context, role string) ([]model.User, error)
}
