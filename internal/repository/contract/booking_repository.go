package contract

import (
	"context"

	"space-admin-be/internal/entity"
	"space-admin-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error)
	FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error)
	FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Update persists the mutable financial and status fields of the booking.
	Update(ctx context.Context, booking *entity.Booking) error
	AppendModification(ctx context.Context, mod *entity.BookingModification) error
	ListModifications(ctx context.Context, bookingId uuid.UUID) ([]*entity.BookingModification, error)
}
