package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	jobtypes "github.com/sslogistics/logipro/internal/domains/orders/application/types"
)

// normalizedCreateJobInput pins the field set and ordering hashed for
// idempotency checks. The idempotency key itself is excluded so the hash
// captures only the payload.
type normalizedCreateJobInput struct {
	CustomerID        *uuid.UUID     `json:"customerId"`
	ServiceType       string         `json:"serviceType"`
	CargoDescription  string         `json:"cargoDescription"`
	Pickup            normalizedStop `json:"pickup"`
	Delivery          normalizedStop `json:"delivery"`
	RequestedPickupAt int64          `json:"requestedPickupAt"`
}

type normalizedStop struct {
	Address       string `json:"address"`
	City          string `json:"city"`
	ContactPerson string `json:"contactPerson"`
	ContactPhone  string `json:"contactPhone"`
}

// FingerprintCreateJob builds a deterministic hash of a create-job request
// payload, excluding the idempotency key.
func FingerprintCreateJob(input jobtypes.CreateJobInput) (string, error) {
	normalized := normalizedCreateJobInput{
		CustomerID:        input.CustomerID,
		ServiceType:       input.ServiceType,
		CargoDescription:  input.CargoDescription,
		Pickup:            normalizeStop(input.Pickup),
		Delivery:          normalizeStop(input.Delivery),
		RequestedPickupAt: input.RequestedPickupAt.Truncate(time.Second).Unix(),
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func normalizeStop(input jobtypes.StopInput) normalizedStop {
	return normalizedStop{
		Address:       input.Address,
		City:          input.City,
		ContactPerson: input.ContactPerson,
		ContactPhone:  input.ContactPhone,
	}
}
