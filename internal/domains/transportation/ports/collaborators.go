package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

// UserDirectory is the users-context collaborator the assignment rules need:
// a driver may only be assigned when their account exists and is active.
type UserDirectory interface {
	IsActiveUser(ctx context.Context, userID uuid.UUID) (bool, error)
}
