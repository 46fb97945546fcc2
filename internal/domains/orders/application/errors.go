package application

import (
	"errors"
	"fmt"

	"github.com/sslogistics/logipro/internal/domains/orders/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid job input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyCargo) ||
		errors.Is(err, domain.ErrInvalidServiceType) ||
		errors.Is(err, domain.ErrIncompleteStop) ||
		errors.Is(err, domain.ErrMissingPickupDate) ||
		errors.Is(err, domain.ErrInvalidTimelineStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
