package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sslogistics/logipro/internal/domains/users/domain"
	"github.com/sslogistics/logipro/internal/domains/users/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid user input")

// Service implements the users use cases over a repository.
type Service struct {
	repo ports.Repository
}

// NewService wires the users service.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateUser(ctx context.Context, username, email, fullName, phone, role string) (*projection.Projection[*domain.User], error) {
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	user, err := domain.NewUser(uuid.New(), username, email, fullName, phone, parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.repo.Create(ctx, user)
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.User], error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]*projection.Projection[*domain.User], error) {
	return s.repo.List(ctx)
}

func (s *Service) SetUserActive(ctx context.Context, id uuid.UUID, active bool) (*projection.Projection[*domain.User], error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user := current.Entity
	if active {
		user.Activate()
	} else {
		user.Deactivate()
	}
	return s.repo.Save(ctx, user)
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// IsActiveUser treats a missing account as inactive rather than an error so
// assignment preconditions fail with a validation message, not a 404.
func (s *Service) IsActiveUser(ctx context.Context, id uuid.UUID) (bool, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return current.Entity.Active, nil
}

var _ ports.Service = (*Service)(nil)
