package order

// Status is the order lifecycle stage. Orders are always created as
// StatusPending; every other status is reachable only through an explicit
// administrative status update.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing,
		StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the move from s to next is allowed.
// There are no automatic transitions; only pending orders move on.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.Valid() || next == StatusPending {
		return false
	}
	return s == StatusPending
}
