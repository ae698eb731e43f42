package ports

import (
	"context"
	"time"

	"cargoconnect/internal/features/shipments/domain"
)

// CreateShipmentInput carries the immutable content fields of a new shipment.
type CreateShipmentInput struct {
	SenderName    string  `validate:"required"`
	ReceiverName  string  `validate:"required"`
	ReceiverEmail string  `validate:"required,email"`
	ReceiverPhone string  `validate:"omitempty"`
	Address       string  `validate:"required"`
	Country       string  `validate:"required"`
	Weight        float64 `validate:"gte=0"`
	Description   string  `validate:"omitempty"`
	Amount        float64 `validate:"gte=0"`
	Origin        string  `validate:"required"`
	Destination   string  `validate:"required"`
}

// UpdateShipmentInput carries the optional mutations of an update. A nil
// field leaves the corresponding attribute untouched; last_update is
// refreshed regardless.
type UpdateShipmentInput struct {
	Status   *domain.Status
	Location *domain.Location
}

// ShipmentService defines the primary port for shipment lifecycle operations.
type ShipmentService interface {
	Create(ctx context.Context, in CreateShipmentInput) (*domain.Shipment, error)
	List(ctx context.Context) ([]domain.Shipment, error)
	GetByTrackingCode(ctx context.Context, code string) (*domain.Shipment, error)
	UpdateStatusAndLocation(ctx context.Context, code string, in UpdateShipmentInput) (*domain.Shipment, error)
	AttachProofOfDelivery(ctx context.Context, code, filename string, content []byte) (string, error)
}

// ShipmentRepository defines the secondary port for shipment storage. The
// persistence layer is responsible for atomic single-record mutations:
// Update must append to the timeline atomically with respect to concurrent
// updates on the same tracking code.
type ShipmentRepository interface {
	// Insert persists a new shipment. It returns
	// domain.ErrTrackingCodeTaken if the tracking code is already in use.
	Insert(ctx context.Context, s *domain.Shipment) error
	// FindByCode returns the shipment carrying the tracking code, or
	// domain.ErrNotFound.
	FindByCode(ctx context.Context, code string) (*domain.Shipment, error)
	// List returns up to limit shipments ordered by last_update descending.
	List(ctx context.Context, limit int) ([]domain.Shipment, error)
	// Update applies an optional status (appending one timeline entry) and
	// an optional wholesale location replacement, refreshes last_update to
	// at, and returns the updated record.
	Update(ctx context.Context, code string, status *domain.Status, location *domain.Location, at time.Time) (*domain.Shipment, error)
	// SetProofURL sets the proof-of-delivery reference and refreshes
	// last_update to at.
	SetProofURL(ctx context.Context, code, url string, at time.Time) error
}
