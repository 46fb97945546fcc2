package postgres

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sslogistics/logipro/internal/domains/quotes/domain"
	"github.com/sslogistics/logipro/internal/domains/quotes/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

var _ ports.ConfigStore = (*ConfigStore)(nil)

// singletonID pins the rate sheet to one row.
const singletonID = 1

// multiplierMap stores the per-service multipliers as a JSONB column.
type multiplierMap map[string]float64

func (m multiplierMap) Value() (driver.Value, error) {
	if m == nil {
		m = multiplierMap{}
	}
	return json.Marshal(m)
}

func (m *multiplierMap) Scan(value any) error {
	switch raw := value.(type) {
	case []byte:
		return json.Unmarshal(raw, m)
	case string:
		return json.Unmarshal([]byte(raw), m)
	case nil:
		*m = multiplierMap{}
		return nil
	default:
		return fmt.Errorf("unsupported multiplier column type %T", value)
	}
}

type rateConfigRecord struct {
	ID                        int16         `gorm:"primaryKey;column:id"`
	BaseRatePerMileCents      int64         `gorm:"column:base_rate_per_mile_cents"`
	ServiceMultipliers        multiplierMap `gorm:"column:service_multipliers;type:jsonb"`
	WeightFactorCentsPerPound float64       `gorm:"column:weight_factor_cents_per_pound"`
	MinimumChargeCents        int64         `gorm:"column:minimum_charge_cents"`
	CreatedAt                 time.Time     `gorm:"column:created_at"`
	UpdatedAt                 time.Time     `gorm:"column:updated_at"`
}

func (rateConfigRecord) TableName() string { return "quote_rate_configs" }

// ConfigStore persists the rate sheet in PostgreSQL using GORM.
type ConfigStore struct {
	db *gorm.DB
}

// NewConfigStore wires the PostgreSQL rate-sheet store.
func NewConfigStore(db *gorm.DB) *ConfigStore {
	store := &ConfigStore{db: db}
	if db != nil {
		_ = db.AutoMigrate(&rateConfigRecord{})
	}
	return store
}

// Load returns the singleton rate sheet, inserting the defaults when the row
// does not exist yet. A duplicate-key hit means another process seeded it
// first, so the stored row wins.
func (s *ConfigStore) Load(ctx context.Context) (*projection.Projection[*domain.RateConfig], error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record rateConfigRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", singletonID).Error
	if err == nil {
		return record.toProjection(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	seeded := toRecord(domain.DefaultRateConfig())
	if err := s.db.WithContext(ctx).Create(&seeded).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}
	if err := s.db.WithContext(ctx).First(&record, "id = ?", singletonID).Error; err != nil {
		return nil, err
	}
	return record.toProjection(), nil
}

func (s *ConfigStore) Save(ctx context.Context, config domain.RateConfig) (*projection.Projection[*domain.RateConfig], error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	if _, err := s.Load(ctx); err != nil {
		return nil, err
	}
	record := toRecord(config)
	err := s.db.WithContext(ctx).Model(&rateConfigRecord{}).Where("id = ?", singletonID).Updates(map[string]any{
		"base_rate_per_mile_cents":      record.BaseRatePerMileCents,
		"service_multipliers":           record.ServiceMultipliers,
		"weight_factor_cents_per_pound": record.WeightFactorCentsPerPound,
		"minimum_charge_cents":          record.MinimumChargeCents,
		"updated_at":                    gorm.Expr("NOW()"),
	}).Error
	if err != nil {
		return nil, err
	}
	var stored rateConfigRecord
	if err := s.db.WithContext(ctx).First(&stored, "id = ?", singletonID).Error; err != nil {
		return nil, err
	}
	return stored.toProjection(), nil
}

func (s *ConfigStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres rate config store not configured")
	}
	return nil
}

func toRecord(config domain.RateConfig) rateConfigRecord {
	return rateConfigRecord{
		ID:                        singletonID,
		BaseRatePerMileCents:      config.BaseRatePerMileCents,
		ServiceMultipliers:        multiplierMap(config.ServiceMultipliers),
		WeightFactorCentsPerPound: config.WeightFactorCentsPerPound,
		MinimumChargeCents:        config.MinimumChargeCents,
	}
}

func (r rateConfigRecord) toProjection() *projection.Projection[*domain.RateConfig] {
	config := &domain.RateConfig{
		BaseRatePerMileCents:      r.BaseRatePerMileCents,
		ServiceMultipliers:        map[string]float64(r.ServiceMultipliers),
		WeightFactorCentsPerPound: r.WeightFactorCentsPerPound,
		MinimumChargeCents:        r.MinimumChargeCents,
	}
	if config.ServiceMultipliers == nil {
		config.ServiceMultipliers = map[string]float64{}
	}
	return projection.New(config, r.CreatedAt, r.UpdatedAt)
}
