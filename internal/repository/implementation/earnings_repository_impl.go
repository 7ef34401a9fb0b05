package implementation

import (
	"context"

	"space-admin-be/internal/entity"
	"space-admin-be/internal/model"
	"space-admin-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type earningsRepositoryImpl struct {
	db *gorm.DB
}

func NewEarningsRepository(db *gorm.DB) contract.EarningsRepository {
	return &earningsRepositoryImpl{db: db}
}

func (r *earningsRepositoryImpl) Append(ctx context.Context, entry *entity.EarningsEntry) error {
	row := &model.EarningsEntry{
		Id:          entry.Id,
		BookingId:   entry.BookingId,
		HostId:      entry.HostId,
		Amount:      entry.Amount,
		Kind:        string(entry.Kind),
		Description: entry.Description,
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *earningsRepositoryImpl) ListByBooking(ctx context.Context, bookingId uuid.UUID) ([]*entity.EarningsEntry, error) {
	var rows []*model.EarningsEntry
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingId).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	var entries []*entity.EarningsEntry
	for _, row := range rows {
		entries = append(entries, &entity.EarningsEntry{
			Id:          row.Id,
			BookingId:   row.BookingId,
			HostId:      row.HostId,
			Amount:      row.Amount,
			Kind:        entity.EarningsKind(row.Kind),
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
		})
	}
	return entries, nil
}

func (r *earningsRepositoryImpl) SumByBooking(ctx context.Context, bookingId uuid.UUID) (float64, error) {
	var sum *float64
	err := r.db.WithContext(ctx).Model(&model.EarningsEntry{}).
		Select("SUM(amount)").
		Where("booking_id = ?", bookingId).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
