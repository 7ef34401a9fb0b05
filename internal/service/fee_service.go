package service

import (
	"context"

	"space-admin-be/internal/dto"
	"space-admin-be/internal/entity"
	"space-admin-be/internal/pkg/logger"
	adminEvents "space-admin-be/pkg/admin/events"
	"space-admin-be/pkg/admin/fees"

	"github.com/google/uuid"
)

type IFeeService interface {
	GetSettings(ctx context.Context) (*dto.FeeSettingsResponse, error)
	UpdateSettings(ctx context.Context, req *dto.UpdateFeeSettingsRequest, actor string) (*dto.FeeSettingsResponse, error)
	Preview(ctx context.Context, baseAmount float64) (*dto.FeePreviewResponse, error)
}

type feeService struct {
	settings  *fees.SettingsProvider
	publisher adminEvents.Publisher
	logger    logger.ILogger
}

func NewFeeService(settings *fees.SettingsProvider, publisher adminEvents.Publisher, log logger.ILogger) IFeeService {
	return &feeService{
		settings:  settings,
		publisher: publisher,
		logger:    log,
	}
}

func (s *feeService) GetSettings(ctx context.Context) (*dto.FeeSettingsResponse, error) {
	cfg, err := s.settings.ActiveRates(ctx, false)
	if err != nil {
		return nil, err
	}
	return toFeeSettingsResponse(cfg), nil
}

func (s *feeService) UpdateSettings(ctx context.Context, req *dto.UpdateFeeSettingsRequest, actor string) (*dto.FeeSettingsResponse, error) {
	cfg := &entity.FeeConfig{
		ServiceRate:           req.ServiceRate,
		PartnerCommissionRate: req.PartnerCommissionRate,
		ProcessingRate:        req.ProcessingRate,
		TaxRate:               req.TaxRate,
		CreatedBy:             actor,
	}
	if err := s.settings.Save(ctx, cfg); err != nil {
		return nil, err
	}

	s.publisher.PublishFeeConfigUpdated(ctx, cfg.Id, cfg.ServiceRate, cfg.PartnerCommissionRate, cfg.ProcessingRate, actor)
	return toFeeSettingsResponse(cfg), nil
}

func (s *feeService) Preview(ctx context.Context, baseAmount float64) (*dto.FeePreviewResponse, error) {
	rates, err := s.settings.ActiveRates(ctx, false)
	if err != nil {
		return nil, err
	}

	bd := fees.Compute(baseAmount, rates)
	return &dto.FeePreviewResponse{
		BaseAmount:        baseAmount,
		ServiceFee:        bd.ServiceFee,
		ProcessingFee:     bd.ProcessingFee,
		PartnerCommission: bd.PartnerCommission,
		TotalPaid:         bd.TotalPaid,
		PartnerPayout:     bd.PartnerPayout,
	}, nil
}

func toFeeSettingsResponse(cfg *entity.FeeConfig) *dto.FeeSettingsResponse {
	return &dto.FeeSettingsResponse{
		Id:                    cfg.Id,
		ServiceRate:           cfg.ServiceRate,
		PartnerCommissionRate: cfg.PartnerCommissionRate,
		ProcessingRate:        cfg.ProcessingRate,
		TaxRate:               cfg.TaxRate,
		IsDefault:             cfg.Id == uuid.Nil,
		CreatedBy:             cfg.CreatedBy,
		CreatedAt:             cfg.CreatedAt,
	}
}
