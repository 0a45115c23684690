package domain

import "time"

// Status is the lifecycle state of an order as reported by the upstream.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPlaced    Status = "placed"
	StatusAccepted  Status = "accepted"
	StatusPrepping  Status = "prepping"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// PaymentStatus tracks payment independently of the order lifecycle.
type PaymentStatus string

const (
	PaymentUnpaid     PaymentStatus = "unpaid"
	PaymentAuthorized PaymentStatus = "authorized"
	PaymentPaid       PaymentStatus = "paid"
	PaymentRefunded   PaymentStatus = "refunded"
	PaymentFailed     PaymentStatus = "failed"
)

// Order is the client projection of an upstream order.
type Order struct {
	ID            string            `json:"id"`
	Status        Status            `json:"status"`
	PaymentStatus PaymentStatus     `json:"paymentStatus"`
	Method        FulfillmentMethod `json:"method"`
	Address       *Address          `json:"address,omitempty"`
	Items         []CartLine        `json:"items"`
	Subtotal      float64           `json:"subtotal"`
	DeliveryFee   float64           `json:"deliveryFee"`
	ServiceFee    float64           `json:"serviceFee"`
	Tax           float64           `json:"tax"`
	Discount      float64           `json:"discount"`
	Total         float64           `json:"total"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// NextStatus returns the single legal forward transition from the given
// status. ok is false when no forward transition exists. This is a display
// gating projection; the upstream enforces the real transition and a rejected
// request must surface as an error, never be applied locally.
func NextStatus(s Status) (Status, bool) {
	switch s {
	case StatusPending, StatusPlaced:
		return StatusAccepted, true
	case StatusAccepted:
		return StatusPrepping, true
	case StatusPrepping:
		return StatusReady, true
	}
	return "", false
}

// CanCancel reports whether an order in the given status may still be cancelled.
func CanCancel(s Status) bool {
	switch s {
	case StatusPending, StatusPlaced, StatusAccepted:
		return true
	}
	return false
}

// AllStatuses lists every known status, in lifecycle order, for filter UIs.
func AllStatuses() []Status {
	return []Status{
		StatusPending, StatusPlaced, StatusAccepted, StatusPrepping,
		StatusReady, StatusCompleted, StatusCancelled,
	}
}
