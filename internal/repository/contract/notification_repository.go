package contract

import (
	"context"

	"space-admin-be/internal/model"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	ListByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]model.Notification, int64, error)
	MarkAsRead(ctx context.Context, notificationId uuid.UUID) error
}
