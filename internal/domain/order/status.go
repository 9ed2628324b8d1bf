package order

import (
	"fmt"

	"github.com/lewisgroup/storefront/internal/domain/shared"
)

// Status represents the lifecycle state of an order. Deleted is a tagged
// state rather than a physical removal; buyer-facing queries exclude it.
type Status string

const (
	StatusPending         Status = "Pending"
	StatusConfirmed       Status = "Confirmed"
	StatusPacked          Status = "Packed"
	StatusDispatched      Status = "Dispatched"
	StatusDelivered       Status = "Delivered"
	StatusCancelled       Status = "Cancelled"
	StatusReturned        Status = "Returned"
	StatusPaymentReceived Status = "PaymentReceived"
	StatusPaymentFailed   Status = "PaymentFailed"
	StatusDeleted         Status = "Deleted"
)

var allStatuses = map[Status]struct{}{
	StatusPending:         {},
	StatusConfirmed:       {},
	StatusPacked:          {},
	StatusDispatched:      {},
	StatusDelivered:       {},
	StatusCancelled:       {},
	StatusReturned:        {},
	StatusPaymentReceived: {},
	StatusPaymentFailed:   {},
	StatusDeleted:         {},
}

// ParseStatus converts a string to a Status, failing on unknown values
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := allStatuses[status]; !ok {
		return "", shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid order status: %s", s))
	}
	return status, nil
}

// IsValid reports whether the status is a known enum value
func (s Status) IsValid() bool {
	_, ok := allStatuses[s]
	return ok
}

// String returns the status as a string
func (s Status) String() string {
	return string(s)
}

// CanCancel reports whether a buyer may still cancel an order in this
// state. Orders that have left the warehouse or already released their
// stock cannot be cancelled again.
func (s Status) CanCancel() bool {
	switch s {
	case StatusDispatched, StatusDelivered, StatusReturned, StatusCancelled, StatusDeleted:
		return false
	default:
		return true
	}
}

// StockRestored reports whether this state has already returned its line
// quantities to product stock
func (s Status) StockRestored() bool {
	return s == StatusCancelled || s == StatusReturned
}
