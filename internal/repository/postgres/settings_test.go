package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewSettingsRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM pricing_settings").
			WillReturnRows(sqlmock.NewRows([]string{
				"delivery_fee", "sales_tax_rate", "processing_fee_rate", "service_discount_rate",
				"tier_prices", "mixer_prices", "extra_prices", "updated_on",
			}).AddRow(
				20.00, 0.0825, 0.03, 0.10,
				[]byte(`{"single":124.95,"double":149.95,"triple":174.95}`),
				[]byte(`{"margarita":19.95}`),
				[]byte(`{"table":14.95}`),
				time.Now(),
			))

		settings, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 20.00, settings.DeliveryFee)
		assert.Equal(t, 124.95, settings.TierPrices["single"])
		assert.Equal(t, 19.95, settings.MixerPrices["margarita"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unseeded", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM pricing_settings").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx)
		assert.True(t, postgres.IsNotFound(err))
	})
}

func TestSettingsRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewSettingsRepository(db)
	ctx := context.Background()

	settings := &domain.PricingSettings{
		DeliveryFee:         25.00,
		SalesTaxRate:        0.0825,
		ProcessingFeeRate:   0.03,
		ServiceDiscountRate: 0.10,
		TierPrices:          map[string]float64{"single": 124.95, "double": 149.95, "triple": 174.95},
		MixerPrices:         map[string]float64{"margarita": 19.95},
		ExtraPrices:         map[string]float64{"table": 14.95},
	}

	mock.ExpectExec("INSERT INTO pricing_settings").
		WithArgs(
			settings.DeliveryFee, settings.SalesTaxRate, settings.ProcessingFeeRate, settings.ServiceDiscountRate,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Save(ctx, settings)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
