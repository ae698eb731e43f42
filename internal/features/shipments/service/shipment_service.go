package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cargoconnect/internal/core/blob"
	"cargoconnect/internal/features/shipments/domain"
	"cargoconnect/internal/features/shipments/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	// listLimit caps the admin listing. Callers needing more are out of scope.
	listLimit = 200
	// maxCodeAttempts bounds the tracking-code collision retry loop.
	maxCodeAttempts = 8
)

// ErrCodeExhausted is returned when every tracking-code attempt collided.
var ErrCodeExhausted = errors.New("could not generate a unique tracking code")

// ShipmentServiceImpl implements ports.ShipmentService. It owns creation,
// status transition, timeline accumulation and retrieval of shipment
// records; atomicity of concurrent mutations is delegated to the repository.
type ShipmentServiceImpl struct {
	repo     ports.ShipmentRepository
	blobs    blob.Store
	validate *validator.Validate
	now      func() time.Time
}

// NewShipmentService creates a new ShipmentServiceImpl.
func NewShipmentService(repo ports.ShipmentRepository, blobs blob.Store) *ShipmentServiceImpl {
	return &ShipmentServiceImpl{
		repo:     repo,
		blobs:    blobs,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Create validates the content fields, mints a tracking code and persists
// the shipment with status "Order Received" and a single-entry timeline.
// Tracking-code collisions are retried with a fresh code against the
// repository's unique constraint.
func (s *ShipmentServiceImpl) Create(ctx context.Context, in ports.CreateShipmentInput) (*domain.Shipment, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, asValidationError(err)
	}

	now := s.now().UTC()

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		shipment := &domain.Shipment{
			ID:           uuid.NewString(),
			TrackingCode: domain.NewTrackingCode(now, attempt),
			Status:       domain.StatusOrderReceived,
			Timeline: []domain.TimelineEntry{
				{Status: domain.StatusOrderReceived, Timestamp: now},
			},
			Origin:        in.Origin,
			Destination:   in.Destination,
			SenderName:    in.SenderName,
			ReceiverName:  in.ReceiverName,
			ReceiverEmail: in.ReceiverEmail,
			ReceiverPhone: in.ReceiverPhone,
			Address:       in.Address,
			Country:       in.Country,
			Weight:        in.Weight,
			Description:   in.Description,
			Amount:        in.Amount,
			LastUpdate:    now,
		}

		err := s.repo.Insert(ctx, shipment)
		if errors.Is(err, domain.ErrTrackingCodeTaken) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("service: failed to create shipment: %w", err)
		}
		return shipment, nil
	}

	return nil, ErrCodeExhausted
}

// List returns the most recently updated shipments, up to the fixed page size.
func (s *ShipmentServiceImpl) List(ctx context.Context) ([]domain.Shipment, error) {
	shipments, err := s.repo.List(ctx, listLimit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list shipments: %w", err)
	}
	return shipments, nil
}

// GetByTrackingCode returns the full record for a tracking code. This is
// the public lookup; no field redaction is applied.
func (s *ShipmentServiceImpl) GetByTrackingCode(ctx context.Context, code string) (*domain.Shipment, error) {
	shipment, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("service: failed to get shipment: %w", err)
	}
	return shipment, nil
}

// UpdateStatusAndLocation applies an optional status change (appending one
// timeline entry) and an optional wholesale location replacement.
// last_update is refreshed even when neither is supplied. The status
// enumeration is validated for membership only; any status may follow any
// other.
func (s *ShipmentServiceImpl) UpdateStatusAndLocation(ctx context.Context, code string, in ports.UpdateShipmentInput) (*domain.Shipment, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, domain.NewValidationError(map[string]string{
			"status": fmt.Sprintf("unknown status %q", string(*in.Status)),
		})
	}

	shipment, err := s.repo.Update(ctx, code, in.Status, in.Location, s.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("service: failed to update shipment: %w", err)
	}
	return shipment, nil
}

// AttachProofOfDelivery stores the uploaded content keyed by
// "<tracking_code>-<filename>" and records the resulting reference on the
// shipment. The record is checked before the blob write so an unknown code
// never leaves an orphaned file.
func (s *ShipmentServiceImpl) AttachProofOfDelivery(ctx context.Context, code, filename string, content []byte) (string, error) {
	if _, err := s.repo.FindByCode(ctx, code); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("service: failed to get shipment: %w", err)
	}

	url, err := s.blobs.Write(ctx, code+"-"+filename, content)
	if err != nil {
		return "", fmt.Errorf("service: failed to store proof: %w", err)
	}

	if err := s.repo.SetProofURL(ctx, code, url, s.now().UTC()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("service: failed to record proof: %w", err)
	}

	return url, nil
}

// asValidationError converts validator violations into the domain's
// field-level validation error.
func asValidationError(err error) error {
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return err
	}

	fields := make(map[string]string, len(violations))
	for _, v := range violations {
		name := snakeCase(v.Field())
		switch v.Tag() {
		case "required":
			fields[name] = "is required"
		case "email":
			fields[name] = "must be a valid email address"
		case "gte":
			fields[name] = "must be greater than or equal to " + v.Param()
		default:
			fields[name] = "is invalid"
		}
	}
	return domain.NewValidationError(fields)
}

// snakeCase converts a Go field name to its wire form, e.g.
// ReceiverEmail -> receiver_email.
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
