package domain

import (
	"errors"
	"time"
)

// Status represents the lifecycle stage of a shipment. The enumeration is
// ordered for display purposes only; no forward-only transition is
// enforced, any status may follow any other.
type Status string

const (
	StatusOrderReceived    Status = "Order Received"
	StatusPackagePickup    Status = "Package Pickup"
	StatusSortingCenter    Status = "Sorting Center"
	StatusInTransit        Status = "In Transit"
	StatusCustomsClearance Status = "Customs Clearance"
	StatusOutForDelivery   Status = "Out for Delivery"
	StatusDelivered        Status = "Delivered"
)

// AllStatuses lists the valid statuses in lifecycle order.
var AllStatuses = []Status{
	StatusOrderReceived,
	StatusPackagePickup,
	StatusSortingCenter,
	StatusInTransit,
	StatusCustomsClearance,
	StatusOutForDelivery,
	StatusDelivered,
}

// Valid reports whether s is a member of the status enumeration.
func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

var (
	// ErrNotFound is returned when no shipment carries the given tracking code.
	ErrNotFound = errors.New("shipment not found")
	// ErrTrackingCodeTaken is returned when an insert conflicts with an
	// existing tracking code.
	ErrTrackingCodeTaken = errors.New("tracking code already taken")
)

// TimelineEntry is a single entry in a shipment's append-only status history.
type TimelineEntry struct {
	// Status is the status recorded by this entry.
	Status Status `json:"status"`
	// Timestamp is when the status was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// Location is the last known position of a shipment. Coordinates and the
// city fallback are all optional.
type Location struct {
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
	City *string  `json:"city,omitempty"`
}

// Shipment is the central entity: an independent record addressed by its
// tracking code. Content fields are set at creation and never mutated by
// update operations; only status, timeline, location, last_update and the
// proof-of-delivery reference change afterwards.
type Shipment struct {
	// ID is the server-generated record identifier.
	ID string `json:"id"`
	// TrackingCode is the public, unique identifier, assigned once at
	// creation and immutable thereafter.
	TrackingCode string `json:"tracking_code"`
	// Status is the current lifecycle stage.
	Status Status `json:"status"`
	// Timeline is the append-only ordered history of status changes.
	// Entries are never removed or reordered.
	Timeline []TimelineEntry `json:"timeline"`
	// Location is the last known position, replaced wholesale on update.
	Location *Location `json:"location,omitempty"`

	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	SenderName    string  `json:"sender_name"`
	ReceiverName  string  `json:"receiver_name"`
	ReceiverEmail string  `json:"receiver_email"`
	ReceiverPhone string  `json:"receiver_phone,omitempty"`
	Address       string  `json:"address"`
	Country       string  `json:"country"`
	Weight        float64 `json:"weight"`
	Description   string  `json:"description,omitempty"`
	Amount        float64 `json:"amount"`

	// LastUpdate is the timestamp of the most recent mutation.
	LastUpdate time.Time `json:"last_update"`
	// ProofOfDeliveryURL references an externally stored delivery-proof
	// artifact, set by the upload operation.
	ProofOfDeliveryURL string `json:"proof_of_delivery_url,omitempty"`
}
