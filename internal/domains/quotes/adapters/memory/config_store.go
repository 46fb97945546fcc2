package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sslogistics/logipro/internal/domains/quotes/domain"
	"github.com/sslogistics/logipro/internal/domains/quotes/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

var _ ports.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps the single rate sheet in memory, seeded with the defaults
// on first load.
type ConfigStore struct {
	mu        sync.Mutex
	config    *domain.RateConfig
	createdAt time.Time
	updatedAt time.Time
}

// NewConfigStore creates an unseeded in-memory rate-sheet store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{}
}

func (s *ConfigStore) Load(_ context.Context) (*projection.Projection[*domain.RateConfig], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config == nil {
		seeded := domain.DefaultRateConfig()
		s.config = &seeded
		s.createdAt = time.Now().UTC()
		s.updatedAt = s.createdAt
	}
	return s.toProjection(), nil
}

func (s *ConfigStore) Save(_ context.Context, config domain.RateConfig) (*projection.Projection[*domain.RateConfig], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := config.Clone()
	s.config = &clone
	if s.createdAt.IsZero() {
		s.createdAt = time.Now().UTC()
	}
	s.updatedAt = time.Now().UTC()
	return s.toProjection(), nil
}

func (s *ConfigStore) toProjection() *projection.Projection[*domain.RateConfig] {
	clone := s.config.Clone()
	return projection.New(&clone, s.createdAt, s.updatedAt)
}
