package implementation

import (
	"context"

	"space-admin-be/internal/entity"
	"space-admin-be/internal/model"
	"space-admin-be/internal/repository/contract"
	"space-admin-be/internal/repository/specification"

	"gorm.io/gorm"
)

type userRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	mu := &model.User{
		Id:               user.Id,
		Email:            user.Email,
		FullName:         user.FullName,
		PasswordHash:     user.PasswordHash,
		Role:             string(user.Role),
		Status:           string(user.Status),
		PayoutAccountRef: user.PayoutAccountRef,
	}
	return r.db.WithContext(ctx).Create(mu).Error
}

func (r *userRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var mu model.User
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mu).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapToEntity(&mu), nil
}

func (r *userRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var mus []*model.User
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mus).Error; err != nil {
		return nil, err
	}

	var users []*entity.User
	for _, mu := range mus {
		users = append(users, r.mapToEntity(mu))
	}
	return users, nil
}

func (r *userRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.Id).
		Updates(map[string]interface{}{
			"email":              user.Email,
			"full_name":          user.FullName,
			"role":               string(user.Role),
			"status":             string(user.Status),
			"payout_account_ref": user.PayoutAccountRef,
		}).Error
}

func (r *userRepositoryImpl) mapToEntity(mu *model.User) *entity.User {
	return &entity.User{
		Id:               mu.Id,
		Email:            mu.Email,
		FullName:         mu.FullName,
		PasswordHash:     mu.PasswordHash,
		Role:             entity.UserRole(mu.Role),
		Status:           entity.UserStatus(mu.Status),
		PayoutAccountRef: mu.PayoutAccountRef,
		CreatedAt:        mu.CreatedAt,
		UpdatedAt:        mu.UpdatedAt,
	}
}

type spaceRepositoryImpl struct {
	db *gorm.DB
}

func NewSpaceRepository(db *gorm.DB) contract.SpaceRepository {
	return &spaceRepositoryImpl{db: db}
}

func (r *spaceRepositoryImpl) Create(ctx context.Context, space *entity.Space) error {
	ms := &model.Space{
		Id:     space.Id,
		HostId: space.HostId,
		Name:   space.Name,
		City:   space.City,
	}
	return r.db.WithContext(ctx).Create(ms).Error
}

func (r *spaceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Space, error) {
	var ms model.Space
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&ms).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entity.Space{
		Id:        ms.Id,
		HostId:    ms.HostId,
		Name:      ms.Name,
		City:      ms.City,
		CreatedAt: ms.CreatedAt,
		UpdatedAt: ms.UpdatedAt,
	}, nil
}
