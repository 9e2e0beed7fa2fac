package service

import (
	"context"
	"time"

	"frostbar-backend/internal/cache"
	"frostbar-backend/internal/config"
	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/logger"
	"frostbar-backend/internal/pricing"
	"frostbar-backend/internal/repository"
	"frostbar-backend/internal/repository/postgres"
)

type quoteService struct {
	settingsRepo  repository.SettingsRepository
	settingsCache *cache.SettingsCache
	defaults      config.PricingConfig
}

func NewQuoteService(settingsRepo repository.SettingsRepository, settingsCache *cache.SettingsCache, defaults config.PricingConfig) QuoteService {
	return &quoteService{
		settingsRepo:  settingsRepo,
		settingsCache: settingsCache,
		defaults:      defaults,
	}
}

// Quote recomputes the breakdown from scratch against current rates. Nothing
// is cached between calls except the rate table itself.
func (s *quoteService) Quote(ctx context.Context, in pricing.QuoteInput) (pricing.PriceBreakdown, error) {
	return pricing.Calculate(in, s.CurrentRates(ctx))
}

// CurrentRates resolves the rate table: redis cache, then Postgres, then the
// config defaults. An unseeded settings store is seeded from the defaults so
// the admin dashboard always has a row to edit.
func (s *quoteService) CurrentRates(ctx context.Context) pricing.RateTable {
	if cached, _ := s.settingsCache.Get(ctx); cached != nil {
		return pricing.RatesFromSettings(cached)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if postgres.IsNotFound(err) {
			settings = s.settingsFromDefaults()
			if saveErr := s.settingsRepo.Save(ctx, settings); saveErr != nil {
				logger.Warn("Failed to seed pricing settings", "error", saveErr)
			}
		} else {
			// Quoting must not fail because the settings store is down;
			// fall back to the shipped defaults.
			logger.Error("Failed to load pricing settings, using defaults", "error", err)
			settings = s.settingsFromDefaults()
		}
	}

	_ = s.settingsCache.Set(ctx, settings)
	return pricing.RatesFromSettings(settings)
}

func (s *quoteService) settingsFromDefaults() *domain.PricingSettings {
	return &domain.PricingSettings{
		DeliveryFee:         s.defaults.DeliveryFee,
		SalesTaxRate:        s.defaults.SalesTaxRate,
		ProcessingFeeRate:   s.defaults.ProcessingFeeRate,
		ServiceDiscountRate: s.defaults.ServiceDiscountRate,
		TierPrices:          s.defaults.TierPrices,
		MixerPrices:         s.defaults.MixerPrices,
		ExtraPrices:         s.defaults.ExtraPrices,
		UpdatedOn:           time.Now(),
	}
}
