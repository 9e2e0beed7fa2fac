package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"frostbar-backend/internal/cache"
	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/repository"
	"frostbar-backend/internal/repository/postgres"
)

var ErrSettingsNotSeeded = errors.New("pricing settings not yet seeded")

type settingsService struct {
	settingsRepo  repository.SettingsRepository
	settingsCache *cache.SettingsCache
}

func NewSettingsService(settingsRepo repository.SettingsRepository, settingsCache *cache.SettingsCache) SettingsService {
	return &settingsService{
		settingsRepo:  settingsRepo,
		settingsCache: settingsCache,
	}
}

func (s *settingsService) Get(ctx context.Context) (*domain.PricingSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, ErrSettingsNotSeeded
		}
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, settings *domain.PricingSettings) error {
	if err := validateSettings(settings); err != nil {
		return err
	}

	settings.UpdatedOn = time.Now()
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return err
	}

	// Stale cached rates would misprice quotes until TTL expiry.
	_ = s.settingsCache.Invalidate(ctx)
	return nil
}

func validateSettings(settings *domain.PricingSettings) error {
	if settings.DeliveryFee < 0 {
		return &ValidationError{Field: "delivery_fee", Message: "must not be negative"}
	}
	if settings.SalesTaxRate < 0 || settings.SalesTaxRate >= 1 {
		return &ValidationError{Field: "sales_tax_rate", Message: "must be in [0, 1)"}
	}
	if settings.ProcessingFeeRate < 0 || settings.ProcessingFeeRate >= 1 {
		return &ValidationError{Field: "processing_fee_rate", Message: "must be in [0, 1)"}
	}
	if settings.ServiceDiscountRate < 0 || settings.ServiceDiscountRate >= 1 {
		return &ValidationError{Field: "service_discount_rate", Message: "must be in [0, 1)"}
	}
	for _, tier := range []domain.MachineTier{domain.MachineTierSingle, domain.MachineTierDouble, domain.MachineTierTriple} {
		price, ok := settings.TierPrices[string(tier)]
		if !ok {
			return &ValidationError{Field: "tier_prices", Message: fmt.Sprintf("missing price for tier %q", tier)}
		}
		if price <= 0 {
			return &ValidationError{Field: "tier_prices", Message: fmt.Sprintf("price for tier %q must be positive", tier)}
		}
	}
	for id, price := range settings.MixerPrices {
		if price < 0 {
			return &ValidationError{Field: "mixer_prices", Message: fmt.Sprintf("mixer %q price must not be negative", id)}
		}
	}
	for id, price := range settings.ExtraPrices {
		if price < 0 {
			return &ValidationError{Field: "extra_prices", Message: fmt.Sprintf("extra %q price must not be negative", id)}
		}
	}
	return nil
}
