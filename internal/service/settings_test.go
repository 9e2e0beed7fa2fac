package service_test

import (
	"context"
	"database/sql"
	"testing"

	"frostbar-backend/internal/cache"
	"frostbar-backend/internal/config"
	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSettingsService(settingsRepo *MockSettingsRepo) service.SettingsService {
	settingsCache := cache.NewSettingsCache(config.RedisConfig{Addr: "127.0.0.1:1", TTLSeconds: 1})
	return service.NewSettingsService(settingsRepo, settingsCache)
}

func TestSettingsService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Unseeded", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("Get", ctx).Return(nil, sql.ErrNoRows)

		_, err := newSettingsService(settingsRepo).Get(ctx)
		assert.ErrorIs(t, err, service.ErrSettingsNotSeeded)
	})

	t.Run("Found", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("Get", ctx).Return(defaultSettings(), nil)

		settings, err := newSettingsService(settingsRepo).Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 20.00, settings.DeliveryFee)
	})
}

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves Valid Settings", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("Save", ctx, mock.AnythingOfType("*domain.PricingSettings")).Return(nil)

		settings := defaultSettings()
		err := newSettingsService(settingsRepo).Update(ctx, settings)
		require.NoError(t, err)
		assert.False(t, settings.UpdatedOn.IsZero())
	})

	t.Run("Rejects Invalid Settings", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		svc := newSettingsService(settingsRepo)

		cases := []struct {
			name   string
			mutate func(*domain.PricingSettings)
		}{
			{"negative delivery fee", func(s *domain.PricingSettings) { s.DeliveryFee = -1 }},
			{"tax rate out of range", func(s *domain.PricingSettings) { s.SalesTaxRate = 1.5 }},
			{"processing fee out of range", func(s *domain.PricingSettings) { s.ProcessingFeeRate = -0.01 }},
			{"discount out of range", func(s *domain.PricingSettings) { s.ServiceDiscountRate = 1.0 }},
			{"missing tier price", func(s *domain.PricingSettings) {
				s.TierPrices = map[string]float64{"single": 124.95}
			}},
			{"non-positive tier price", func(s *domain.PricingSettings) { s.TierPrices["double"] = 0 }},
			{"negative mixer price", func(s *domain.PricingSettings) { s.MixerPrices["margarita"] = -5 }},
			{"negative extra price", func(s *domain.PricingSettings) { s.ExtraPrices["table"] = -5 }},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				settings := defaultSettings()
				tc.mutate(settings)

				err := svc.Update(ctx, settings)
				var validationErr *service.ValidationError
				assert.ErrorAs(t, err, &validationErr)
			})
		}

		settingsRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
