package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// One row holds the whole rate table; the catalogs go in as JSONB.
func (r *settingsRepository) Get(ctx context.Context) (*domain.PricingSettings, error) {
	s := &domain.PricingSettings{}
	var tiers, mixers, extras []byte
	query := `SELECT delivery_fee, sales_tax_rate, processing_fee_rate, service_discount_rate,
	          tier_prices, mixer_prices, extra_prices, updated_on
	          FROM pricing_settings WHERE id = 1`
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.DeliveryFee, &s.SalesTaxRate, &s.ProcessingFeeRate, &s.ServiceDiscountRate,
		&tiers, &mixers, &extras, &s.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tiers, &s.TierPrices); err != nil {
		return nil, fmt.Errorf("failed to decode tier prices: %w", err)
	}
	if err := json.Unmarshal(mixers, &s.MixerPrices); err != nil {
		return nil, fmt.Errorf("failed to decode mixer prices: %w", err)
	}
	if err := json.Unmarshal(extras, &s.ExtraPrices); err != nil {
		return nil, fmt.Errorf("failed to decode extra prices: %w", err)
	}
	return s, nil
}

func (r *settingsRepository) Save(ctx context.Context, s *domain.PricingSettings) error {
	tiers, err := json.Marshal(s.TierPrices)
	if err != nil {
		return err
	}
	mixers, err := json.Marshal(s.MixerPrices)
	if err != nil {
		return err
	}
	extras, err := json.Marshal(s.ExtraPrices)
	if err != nil {
		return err
	}

	query := `INSERT INTO pricing_settings (id, delivery_fee, sales_tax_rate, processing_fee_rate, service_discount_rate,
	          tier_prices, mixer_prices, extra_prices, updated_on)
	          VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (id) DO UPDATE SET
	          delivery_fee = EXCLUDED.delivery_fee,
	          sales_tax_rate = EXCLUDED.sales_tax_rate,
	          processing_fee_rate = EXCLUDED.processing_fee_rate,
	          service_discount_rate = EXCLUDED.service_discount_rate,
	          tier_prices = EXCLUDED.tier_prices,
	          mixer_prices = EXCLUDED.mixer_prices,
	          extra_prices = EXCLUDED.extra_prices,
	          updated_on = EXCLUDED.updated_on`
	_, err = r.db.ExecContext(ctx, query,
		s.DeliveryFee, s.SalesTaxRate, s.ProcessingFeeRate, s.ServiceDiscountRate,
		tiers, mixers, extras, time.Now(),
	)
	return err
}

// IsNotFound reports whether an error is the no-rows condition from a Get.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
