package contract

import (
	"context"

	"space-admin-be/internal/entity"
)

type FeeConfigRepository interface {
	// FindActive returns the single active configuration, or nil when none
	// has been saved yet.
	FindActive(ctx context.Context) (*entity.FeeConfig, error)
	// DeactivateActive flips every active configuration to inactive. Called
	// inside the same transaction as Create so exactly one stays active.
	DeactivateActive(ctx context.Context) error
	Create(ctx context.Context, cfg *entity.FeeConfig) error
	FindAll(ctx context.Context) ([]*entity.FeeConfig, error)
}
