package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sslogistics/logipro/internal/domains/users/domain"
	"github.com/sslogistics/logipro/internal/domains/users/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

type row struct {
	user      domain.User
	createdAt time.Time
	updatedAt time.Time
}

// Repository is an in-memory user store for tests and local runs.
type Repository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*row
}

// NewRepository creates an empty in-memory user store.
func NewRepository() *Repository {
	return &Repository{users: make(map[uuid.UUID]*row)}
}

func (r *Repository) Create(_ context.Context, user *domain.User) (*projection.Projection[*domain.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	entry := &row{user: *user, createdAt: now, updatedAt: now}
	r.users[user.ID] = entry
	return toProjection(entry), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*projection.Projection[*domain.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return toProjection(entry), nil
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*projection.Projection[*domain.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.users {
		if entry.user.Username == username {
			return toProjection(entry), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*projection.Projection[*domain.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.users[user.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	entry.user = *user
	entry.updatedAt = time.Now().UTC()
	return toProjection(entry), nil
}

func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]*row, 0, len(r.users))
	for _, entry := range r.users {
		rows = append(rows, entry)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].createdAt.After(rows[j].createdAt) })
	result := make([]*projection.Projection[*domain.User], 0, len(rows))
	for _, entry := range rows {
		result = append(result, toProjection(entry))
	}
	return result, nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func toProjection(entry *row) *projection.Projection[*domain.User] {
	clone := entry.user
	return projection.New(&clone, entry.createdAt, entry.updatedAt)
}
