package implementation

import (
	"context"
	"time"

	"space-admin-be/internal/model"
	"space-admin-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) contract.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepositoryImpl) ListByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	var rows []model.Notification
	var total int64

	base := r.db.WithContext(ctx).Model(&model.Notification{}).Where("user_id = ?", userId)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *notificationRepositoryImpl) MarkAsRead(ctx context.Context, notificationId uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", notificationId).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error
}
