package implementation

import (
	"context"

	"space-admin-be/internal/entity"
	"space-admin-be/internal/model"
	"space-admin-be/internal/repository/contract"

	"gorm.io/gorm"
)

type feeConfigRepositoryImpl struct {
	db *gorm.DB
}

func NewFeeConfigRepository(db *gorm.DB) contract.FeeConfigRepository {
	return &feeConfigRepositoryImpl{db: db}
}

func (r *feeConfigRepositoryImpl) FindActive(ctx context.Context) (*entity.FeeConfig, error) {
	var mc model.FeeConfig
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		First(&mc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapToEntity(&mc), nil
}

func (r *feeConfigRepositoryImpl) DeactivateActive(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&model.FeeConfig{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

func (r *feeConfigRepositoryImpl) Create(ctx context.Context, cfg *entity.FeeConfig) error {
	mc := &model.FeeConfig{
		Id:                    cfg.Id,
		ServiceRate:           cfg.ServiceRate,
		PartnerCommissionRate: cfg.PartnerCommissionRate,
		ProcessingRate:        cfg.ProcessingRate,
		TaxRate:               cfg.TaxRate,
		IsActive:              cfg.IsActive,
		CreatedBy:             cfg.CreatedBy,
	}
	return r.db.WithContext(ctx).Create(mc).Error
}

func (r *feeConfigRepositoryImpl) FindAll(ctx context.Context) ([]*entity.FeeConfig, error) {
	var mcs []*model.FeeConfig
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&mcs).Error; err != nil {
		return nil, err
	}

	var configs []*entity.FeeConfig
	for _, mc := range mcs {
		configs = append(configs, r.mapToEntity(mc))
	}
	return configs, nil
}

func (r *feeConfigRepositoryImpl) mapToEntity(mc *model.FeeConfig) *entity.FeeConfig {
	return &entity.FeeConfig{
		Id:                    mc.Id,
		ServiceRate:           mc.ServiceRate,
		PartnerCommissionRate: mc.PartnerCommissionRate,
		ProcessingRate:        mc.ProcessingRate,
		TaxRate:               mc.TaxRate,
		IsActive:              mc.IsActive,
		CreatedBy:             mc.CreatedBy,
		CreatedAt:             mc.CreatedAt,
		UpdatedAt:             mc.UpdatedAt,
	}
}
