package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/config"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

type settingsRepository struct {
	db       *DB
	defaults config.ReorderConfig
}

func NewSettingsRepository(db *DB, defaults config.ReorderConfig) repository.SettingsRepository {
	return &settingsRepository{db: db, defaults: defaults}
}

func (r *settingsRepository) Get(ctx context.Context, companyID uuid.UUID) (*domain.CompanySettings, error) {
	settings := &domain.CompanySettings{
		CompanyID:          companyID,
		Timezone:           "UTC",
		DeadStockDays:      r.defaults.DeadStockDays,
		LeadTimeDays:       r.defaults.LeadTimeDays,
		SafetyStockDays:    r.defaults.SafetyStockDays,
		VelocityWindowDays: r.defaults.VelocityWindowDays,
	}

	row := struct {
		Timezone           *string `db:"timezone"`
		DeadStockDays      *int    `db:"dead_stock_days"`
		LeadTimeDays       *int    `db:"lead_time_days"`
		SafetyStockDays    *int    `db:"safety_stock_days"`
		VelocityWindowDays *int    `db:"velocity_window_days"`
	}{}
	err := r.db.GetContext(ctx, &row, `
        SELECT timezone, dead_stock_days, lead_time_days, safety_stock_days, velocity_window_days
        FROM company_settings
        WHERE company_id = $1`,
		companyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to get company settings: %w", err)
	}

	if row.Timezone != nil && *row.Timezone != "" {
		settings.Timezone = *row.Timezone
	}
	if row.DeadStockDays != nil && *row.DeadStockDays > 0 {
		settings.DeadStockDays = *row.DeadStockDays
	}
	if row.LeadTimeDays != nil && *row.LeadTimeDays > 0 {
		settings.LeadTimeDays = *row.LeadTimeDays
	}
	if row.SafetyStockDays != nil && *row.SafetyStockDays > 0 {
		settings.SafetyStockDays = *row.SafetyStockDays
	}
	if row.VelocityWindowDays != nil && *row.VelocityWindowDays > 0 {
		settings.VelocityWindowDays = *row.VelocityWindowDays
	}
	return settings, nil
}
