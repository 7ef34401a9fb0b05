package contract

import (
	"context"

	"space-admin-be/internal/entity"

	"github.com/google/uuid"
)

type EarningsRepository interface {
	Append(ctx context.Context, entry *entity.EarningsEntry) error
	ListByBooking(ctx context.Context, bookingId uuid.UUID) ([]*entity.EarningsEntry, error)
	// SumByBooking returns the net amount currently owed to the host for a
	// booking (positive payouts minus compensating reversals).
	SumByBooking(ctx context.Context, bookingId uuid.UUID) (float64, error)
}
