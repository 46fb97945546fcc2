package application

import (
	"errors"
	"fmt"

	"github.com/sslogistics/logipro/internal/domains/transportation/domain"
)

// ErrInvalidInput signals the request violated an assignment precondition or
// a domain invariant.
var ErrInvalidInput = errors.New("invalid transportation input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidShipmentStatus) ||
		errors.Is(err, domain.ErrShipmentDelivered) ||
		errors.Is(err, domain.ErrDriverInactive) ||
		errors.Is(err, domain.ErrVehicleUnavailable) ||
		errors.Is(err, domain.ErrInvalidVehicleStatus) ||
		errors.Is(err, domain.ErrEmptyLicense) ||
		errors.Is(err, domain.ErrMissingDriverRef) ||
		errors.Is(err, domain.ErrEmptyPlate) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
