package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&jobNumberSeq{},
		&jobRecord{},
		&timelineRecord{},
		&jobIdempotencyRecord{},
		&shipmentRecord{},
		&driverRecord{},
		&vehicleRecord{},
		&invoiceRecord{},
		&rateConfigRecord{},
		&userRecord{},
	)
}

// Job schema mirrors the orders Postgres adapter.
type jobRecord struct {
	ID                    uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	JobNumber             int64      `gorm:"column:job_number;uniqueIndex"`
	CustomerID            *uuid.UUID `gorm:"column:customer_id;type:uuid;index"`
	ServiceType           string     `gorm:"column:service_type;type:varchar(32)"`
	CargoDescription      string     `gorm:"column:cargo_description"`
	PickupAddress         string     `gorm:"column:pickup_address"`
	PickupCity            string     `gorm:"column:pickup_city"`
	PickupContactPerson   string     `gorm:"column:pickup_contact_person"`
	PickupContactPhone    string     `gorm:"column:pickup_contact_phone"`
	DeliveryAddress       string     `gorm:"column:delivery_address"`
	DeliveryCity          string     `gorm:"column:delivery_city"`
	DeliveryContactPerson string     `gorm:"column:delivery_contact_person"`
	DeliveryContactPhone  string     `gorm:"column:delivery_contact_phone"`
	RequestedPickupAt     time.Time  `gorm:"column:requested_pickup_at"`
	CreatedAt             time.Time  `gorm:"column:created_at;index"`
	UpdatedAt             time.Time  `gorm:"column:updated_at"`
}

func (jobRecord) TableName() string { return "jobs" }

// Timeline schema mirrors the orders Postgres adapter.
type timelineRecord struct {
	ID          uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	JobID       uuid.UUID `gorm:"column:job_id;type:uuid;index:idx_job_timeline_job;not null"`
	Status      string    `gorm:"column:status;type:varchar(32)"`
	Timestamp   time.Time `gorm:"column:timestamp;index"`
	Location    string    `gorm:"column:location"`
	Description string    `gorm:"column:description"`
	IsCurrent   bool      `gorm:"column:is_current;index:idx_job_timeline_current,where:is_current"`
	Seq         int64     `gorm:"column:seq;autoIncrement"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (timelineRecord) TableName() string { return "job_timeline_entries" }

type jobNumberSeq struct {
	ID    int16 `gorm:"primaryKey;column:id"`
	Value int64 `gorm:"column:value"`
}

func (jobNumberSeq) TableName() string { return "job_number_seq" }

type jobIdempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	JobID       uuid.UUID `gorm:"column:job_id;type:uuid"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (jobIdempotencyRecord) TableName() string { return "job_idempotency_keys" }

// Shipment schema mirrors the transportation Postgres adapter.
type shipmentRecord struct {
	ID                   uuid.UUID      `gorm:"primaryKey;column:id;type:uuid"`
	JobID                uuid.UUID      `gorm:"column:job_id;type:uuid;uniqueIndex:uniq_shipment_job;not null"`
	Status               string         `gorm:"column:status;type:varchar(32)"`
	DriverID             *uuid.UUID     `gorm:"column:driver_id;type:uuid;index"`
	VehicleID            *uuid.UUID     `gorm:"column:vehicle_id;type:uuid;index"`
	EstimatedDepartureAt *time.Time     `gorm:"column:estimated_departure_at"`
	ActualDepartureAt    *time.Time     `gorm:"column:actual_departure_at"`
	EstimatedArrivalAt   *time.Time     `gorm:"column:estimated_arrival_at"`
	ActualArrivalAt      *time.Time     `gorm:"column:actual_arrival_at"`
	ProofOfDelivery      pq.StringArray `gorm:"column:proof_of_delivery;type:text[]"`
	CreatedAt            time.Time      `gorm:"column:created_at;index"`
	UpdatedAt            time.Time      `gorm:"column:updated_at"`
}

func (shipmentRecord) TableName() string { return "shipments" }

type driverRecord struct {
	ID            uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex"`
	LicenseNumber string    `gorm:"column:license_number"`
	Phone         string    `gorm:"column:phone"`
	CreatedAt     time.Time `gorm:"column:created_at;index"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (driverRecord) TableName() string { return "drivers" }

type vehicleRecord struct {
	ID           uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	LicensePlate string    `gorm:"column:license_plate;uniqueIndex"`
	Model        string    `gorm:"column:model"`
	CapacityKG   int       `gorm:"column:capacity_kg"`
	Status       string    `gorm:"column:status;type:varchar(32)"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (vehicleRecord) TableName() string { return "vehicles" }

// Invoice schema mirrors the billing Postgres adapter.
type invoiceRecord struct {
	ID            uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	JobID         uuid.UUID  `gorm:"column:job_id;type:uuid;uniqueIndex:uniq_invoice_job;not null"`
	Status        string     `gorm:"column:status;type:varchar(16)"`
	AmountCents   int64      `gorm:"column:amount_cents"`
	IssuedAt      time.Time  `gorm:"column:issued_at"`
	DueAt         time.Time  `gorm:"column:due_at"`
	PaidAt        *time.Time `gorm:"column:paid_at"`
	PaymentMethod *string    `gorm:"column:payment_method;type:varchar(16)"`
	CreatedAt     time.Time  `gorm:"column:created_at;index"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (invoiceRecord) TableName() string { return "invoices" }

// Rate sheet schema mirrors the quotes Postgres adapter.
type rateConfigRecord struct {
	ID                        int16     `gorm:"primaryKey;column:id"`
	BaseRatePerMileCents      int64     `gorm:"column:base_rate_per_mile_cents"`
	ServiceMultipliers        string    `gorm:"column:service_multipliers;type:jsonb"`
	WeightFactorCentsPerPound float64   `gorm:"column:weight_factor_cents_per_pound"`
	MinimumChargeCents        int64     `gorm:"column:minimum_charge_cents"`
	CreatedAt                 time.Time `gorm:"column:created_at"`
	UpdatedAt                 time.Time `gorm:"column:updated_at"`
}

func (rateConfigRecord) TableName() string { return "quote_rate_configs" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Username  string    `gorm:"column:username;uniqueIndex"`
	Email     string    `gorm:"column:email"`
	FullName  string    `gorm:"column:full_name"`
	Phone     string    `gorm:"column:phone"`
	Role      string    `gorm:"column:role;type:varchar(16)"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }
