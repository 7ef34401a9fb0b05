package fees

import (
	"context"
	"time"

	"space-admin-be/internal/entity"
	"space-admin-be/internal/pkg/logger"
	"space-admin-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const activeRatesKey = "active_fee_config"

// DefaultRates is served when no configuration has ever been saved; fee
// computation must never block on configuration absence.
var DefaultRates = entity.FeeConfig{
	ServiceRate:           0.12,
	PartnerCommissionRate: 0.15,
	ProcessingRate:        0.0175,
	TaxRate:               0,
}

// SettingsProvider serves the active rate configuration from a short-lived
// in-process cache. Saves invalidate synchronously, so a save acknowledgement
// guarantees no consumer sees the superseded rates.
type SettingsProvider struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
	logger     logger.ILogger
}

func NewSettingsProvider(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) *SettingsProvider {
	// 1-minute TTL keeps reads cheap without letting stale rates linger.
	c := cache.New(1*time.Minute, 5*time.Minute)
	return &SettingsProvider{
		uowFactory: uowFactory,
		cache:      c,
		logger:     log,
	}
}

// ActiveRates returns the current rate configuration. forceRefresh bypasses
// the cache. When no active config exists the hard-coded defaults are
// returned rather than an error.
func (p *SettingsProvider) ActiveRates(ctx context.Context, forceRefresh bool) (*entity.FeeConfig, error) {
	if !forceRefresh {
		if x, found := p.cache.Get(activeRatesKey); found {
			return x.(*entity.FeeConfig), nil
		}
	}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	cfg, err := uow.FeeConfigRepository().FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		defaults := DefaultRates
		cfg = &defaults
		p.logger.Warn("FEES", "No active fee config found, serving defaults", nil)
	}

	p.cache.Set(activeRatesKey, cfg, cache.DefaultExpiration)
	return cfg, nil
}

// Save persists a new configuration, deactivating the prior active one in
// the same transaction, then invalidates the cache before returning.
func (p *SettingsProvider) Save(ctx context.Context, cfg *entity.FeeConfig) error {
	if cfg.Id == uuid.Nil {
		cfg.Id = uuid.New()
	}
	cfg.IsActive = true

	uow := p.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.FeeConfigRepository().DeactivateActive(ctx); err != nil {
		return err
	}
	if err := uow.FeeConfigRepository().Create(ctx, cfg); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	// Invalidate after commit, before acknowledging: no stale reads once
	// the save returns.
	p.Invalidate()

	p.logger.Info("FEES", "Fee configuration saved", map[string]interface{}{
		"configId":       cfg.Id.String(),
		"serviceRate":    cfg.ServiceRate,
		"commissionRate": cfg.PartnerCommissionRate,
		"processingRate": cfg.ProcessingRate,
		"actor":          cfg.CreatedBy,
	})
	return nil
}

// Invalidate drops the cached configuration immediately.
func (p *SettingsProvider) Invalidate() {
	p.cache.Delete(activeRatesKey)
}
