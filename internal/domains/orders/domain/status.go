package domain

// JobStatus is the externally visible status of a job. It is never stored:
// readers derive it from the timeline ledger with a shipment fallback, so the
// value is the union of timeline statuses and coarse shipment statuses.
type JobStatus string

const (
	// Statuses only the shipment fallback produces.
	JobStatusPending  JobStatus = "PENDING"
	JobStatusAssigned JobStatus = "ASSIGNED"
	JobStatusFailed   JobStatus = "FAILED"
	// Timeline-derived statuses. IN_TRANSIT and DELIVERED are shared with
	// the shipment fallback, which can also produce them.
	JobStatusOrderPlaced    JobStatus = "ORDER_PLACED"
	JobStatusPickedUp       JobStatus = "PICKED_UP"
	JobStatusInTransit      JobStatus = "IN_TRANSIT"
	JobStatusOutForDelivery JobStatus = "OUT_FOR_DELIVERY"
	JobStatusDelivered      JobStatus = "DELIVERED"
	JobStatusCancelled      JobStatus = "CANCELLED"
)

// JobStatusFromTimeline lifts a ledger status into the external status space.
func JobStatusFromTimeline(status TimelineStatus) JobStatus {
	return JobStatus(status)
}

// JobStatusFromShipment maps a coarse shipment status string into the external
// status space. Unknown values collapse to PENDING so a read path never fails.
func JobStatusFromShipment(status string) JobStatus {
	switch JobStatus(status) {
	case JobStatusPending, JobStatusAssigned, JobStatusInTransit, JobStatusDelivered, JobStatusFailed:
		return JobStatus(status)
	default:
		return JobStatusPending
	}
}
