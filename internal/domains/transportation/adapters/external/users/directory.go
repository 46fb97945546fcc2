// Package users adapts the users context's service to the directory port the
// transportation assignment rules consume.
package users

import (
	"context"

	"github.com/google/uuid"

	transportports "github.com/sslogistics/logipro/internal/domains/transportation/ports"
	usersports "github.com/sslogistics/logipro/internal/domains/users/ports"
)

var _ transportports.UserDirectory = (*Directory)(nil)

// Directory bridges account activity checks into the users context.
type Directory struct {
	service usersports.Service
}

// NewDirectory wraps the users service.
func NewDirectory(service usersports.Service) *Directory {
	return &Directory{service: service}
}

func (d *Directory) IsActiveUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	return d.service.IsActiveUser(ctx, userID)
}
