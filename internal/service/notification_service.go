package service

import (
	"context"
	"encoding/json"
	"time"

	"space-admin-be/internal/dto"
	"space-admin-be/internal/model"
	"space-admin-be/internal/pkg/logger"
	"space-admin-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationService persists and serves operator notifications.
type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *NotificationService) Create(ctx context.Context, userId uuid.UUID, typeCode, title, message string, metadata map[string]interface{}) error {
	var meta datatypes.JSON
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		meta = datatypes.JSON(raw)
	}

	notification := &model.Notification{
		Id:        uuid.New(),
		UserId:    userId,
		TypeCode:  typeCode,
		Title:     title,
		Message:   message,
		Metadata:  meta,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().Create(ctx, notification)
}

func (s *NotificationService) List(ctx context.Context, userId uuid.UUID, page, limit int) (*dto.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	uow := s.uowFactory.NewUnitOfWork(ctx)
	items, total, err := uow.NotificationRepository().ListByUser(ctx, userId, limit, offset)
	if err != nil {
		return nil, err
	}

	res := &dto.NotificationListResponse{
		Items: make([]dto.NotificationResponse, 0, len(items)),
		Total: total,
	}
	for _, n := range items {
		item := dto.NotificationResponse{
			Id:        n.Id,
			Type:      n.TypeCode,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
		if len(n.Metadata) > 0 {
			var meta map[string]interface{}
			if err := json.Unmarshal(n.Metadata, &meta); err == nil {
				item.Metadata = meta
			}
		}
		res.Items = append(res.Items, item)
	}
	return res, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAsRead(ctx, notificationId)
}
