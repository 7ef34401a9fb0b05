package contract

import (
	"context"

	"space-admin-be/internal/entity"
	"space-admin-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

type SpaceRepository interface {
	Create(ctx context.Context, space *entity.Space) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Space, error)
}
