package enums

import "fmt"

// OrderStatus tracks the operational progress of an order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPickedUp       OrderStatus = "picked_up"
	OrderStatusInProgress     OrderStatus = "in_progress"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPickedUp,
	OrderStatusInProgress,
	OrderStatusReady,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// forwardOrder is the canonical happy-path sequence. Operational updates may
// skip ahead (e.g. pending straight to out_for_delivery), so it documents
// ordering rather than gating transitions; only terminal states gate.
var forwardOrder = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPickedUp,
	OrderStatusInProgress,
	OrderStatusReady,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanCancel reports whether a customer may still cancel from this status.
func (s OrderStatus) CanCancel() bool {
	return !s.IsTerminal()
}

// NextForward returns the next status in the canonical sequence, or the
// status itself when it is the last forward state or a side-exit.
func (s OrderStatus) NextForward() OrderStatus {
	for i, candidate := range forwardOrder {
		if candidate == s && i+1 < len(forwardOrder) {
			return forwardOrder[i+1]
		}
	}
	return s
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
