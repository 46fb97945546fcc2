package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrDriverInactive   = errors.New("driver account is not active")
	ErrEmptyLicense     = errors.New("license number is required")
	ErrMissingDriverRef = errors.New("driver user reference is required")
)

// Driver is reference data for a person who moves shipments. The UserID links
// the driver to their account in the users context; activity checks go
// through that account.
type Driver struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	LicenseNumber string
	Phone         string
}

// NewDriver creates a driver profile for an existing user account.
func NewDriver(id, userID uuid.UUID, licenseNumber, phone string) (*Driver, error) {
	driver := &Driver{
		ID:            id,
		UserID:        userID,
		LicenseNumber: strings.TrimSpace(licenseNumber),
		Phone:         strings.TrimSpace(phone),
	}
	if err := driver.Validate(); err != nil {
		return nil, err
	}
	return driver, nil
}

func (d *Driver) Validate() error {
	if d.UserID == uuid.Nil {
		return ErrMissingDriverRef
	}
	if d.LicenseNumber == "" {
		return ErrEmptyLicense
	}
	return nil
}
