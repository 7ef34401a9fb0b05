package unitofwork

import (
	"context"

	"space-admin-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BookingRepository() contract.BookingRepository
	FeeConfigRepository() contract.FeeConfigRepository
	EarningsRepository() contract.EarningsRepository
	UserRepository() contract.UserRepository
	SpaceRepository() contract.SpaceRepository
	NotificationRepository() contract.NotificationRepository
}
