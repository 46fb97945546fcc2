package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sslogistics/logipro/internal/domains/users/domain"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

var ErrNotFound = errors.New("user not found")

// Repository persists user accounts (outbound/driven port).
type Repository interface {
	Create(ctx context.Context, user *domain.User) (*projection.Projection[*domain.User], error)
	GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.User], error)
	GetByUsername(ctx context.Context, username string) (*projection.Projection[*domain.User], error)
	Save(ctx context.Context, user *domain.User) (*projection.Projection[*domain.User], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.User], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service defines the users use cases (inbound/driving port).
type Service interface {
	CreateUser(ctx context.Context, username, email, fullName, phone, role string) (*projection.Projection[*domain.User], error)
	GetUser(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.User], error)
	ListUsers(ctx context.Context) ([]*projection.Projection[*domain.User], error)
	SetUserActive(ctx context.Context, id uuid.UUID, active bool) (*projection.Projection[*domain.User], error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	// IsActiveUser reports whether the account exists and is active. A
	// missing account is simply "not active", not an error.
	IsActiveUser(ctx context.Context, id uuid.UUID) (bool, error)
}
