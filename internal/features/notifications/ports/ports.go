package ports

import (
	"context"

	"cargoconnect/internal/features/shipments/domain"
)

// Dispatcher defines the primary port for best-effort status
// notifications. Notify reports whether the message was handed to the
// transport; it never returns an error, so a failing or unconfigured
// transport cannot fail the operation that triggered it.
type Dispatcher interface {
	Notify(ctx context.Context, shipment *domain.Shipment) bool
}
