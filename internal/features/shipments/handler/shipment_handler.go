package handler

import (
	"errors"
	"io"
	"net/http"

	"cargoconnect/internal/core/logger"
	notifyports "cargoconnect/internal/features/notifications/ports"
	"cargoconnect/internal/features/shipments/domain"
	"cargoconnect/internal/features/shipments/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ShipmentHandler handles HTTP requests for shipment operations.
type ShipmentHandler struct {
	service  ports.ShipmentService
	notifier notifyports.Dispatcher
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(service ports.ShipmentService, notifier notifyports.Dispatcher) *ShipmentHandler {
	return &ShipmentHandler{
		service:  service,
		notifier: notifier,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// Fields carries field-level validation detail when applicable.
	Fields map[string]string `json:"fields,omitempty"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// CreateShipmentRequest represents the request body for creating a shipment.
type CreateShipmentRequest struct {
	SenderName    string  `json:"sender_name"`
	ReceiverName  string  `json:"receiver_name"`
	ReceiverEmail string  `json:"receiver_email"`
	ReceiverPhone string  `json:"receiver_phone"`
	Address       string  `json:"address"`
	Country       string  `json:"country"`
	Weight        float64 `json:"weight"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
}

// CreateShipmentResponse returns the identifiers of a created shipment.
type CreateShipmentResponse struct {
	ID           string `json:"id"`
	TrackingCode string `json:"tracking_code"`
}

// UpdateShipmentRequest represents the request body for a status/location update.
type UpdateShipmentRequest struct {
	Status   *domain.Status   `json:"status"`
	Location *domain.Location `json:"location"`
}

// Create handles POST /shipments.
// @Summary Create a shipment
// @Description Creates a shipment with a generated tracking code, status "Order Received" and a seeded timeline.
// @Tags shipments
// @Accept json
// @Produce json
// @Param shipment body CreateShipmentRequest true "Shipment content"
// @Success 200 {object} CreateShipmentResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var req CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	shipment, err := h.service.Create(c.Context(), ports.CreateShipmentInput{
		SenderName:    req.SenderName,
		ReceiverName:  req.ReceiverName,
		ReceiverEmail: req.ReceiverEmail,
		ReceiverPhone: req.ReceiverPhone,
		Address:       req.Address,
		Country:       req.Country,
		Weight:        req.Weight,
		Description:   req.Description,
		Amount:        req.Amount,
		Origin:        req.Origin,
		Destination:   req.Destination,
	})
	if err != nil {
		var invalid *domain.ValidationError
		if errors.As(err, &invalid) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "validation failed",
				Fields:  invalid.Fields,
				RayID:   rayID(c),
			})
		}
		logger.Get().Error("Failed to create shipment", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "internal server error",
			RayID:   rayID(c),
		})
	}

	return c.JSON(CreateShipmentResponse{
		ID:           shipment.ID,
		TrackingCode: shipment.TrackingCode,
	})
}

// List handles GET /shipments.
// @Summary List recent shipments
// @Description Returns the most recently updated shipments, at most 200, ordered by last_update descending.
// @Tags shipments
// @Produce json
// @Success 200 {array} domain.Shipment
// @Security BearerAuth
// @Router /shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	shipments, err := h.service.List(c.Context())
	if err != nil {
		logger.Get().Error("Failed to list shipments", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "internal server error",
			RayID:   rayID(c),
		})
	}

	return c.JSON(shipments)
}

// Track handles GET /track/:code. Public: no authentication, no field
// redaction.
// @Summary Track a shipment by code
// @Description Public lookup of the full shipment record by tracking code.
// @Tags tracking
// @Produce json
// @Param code path string true "Tracking code"
// @Success 200 {object} domain.Shipment
// @Failure 404 {object} ErrorResponse
// @Router /track/{code} [get]
func (h *ShipmentHandler) Track(c *fiber.Ctx) error {
	shipment, err := h.service.GetByTrackingCode(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: "tracking number not found",
				RayID:   rayID(c),
			})
		}
		logger.Get().Error("Failed to track shipment", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "internal server error",
			RayID:   rayID(c),
		})
	}

	return c.JSON(shipment)
}

// Update handles PATCH /shipments/:code.
// @Summary Update shipment status and location
// @Description Applies an optional status (appending a timeline entry) and an optional location replacement; always refreshes last_update.
// @Tags shipments
// @Accept json
// @Produce json
// @Param code path string true "Tracking code"
// @Param update body UpdateShipmentRequest true "Status and/or location"
// @Success 200 {object} domain.Shipment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments/{code} [patch]
func (h *ShipmentHandler) Update(c *fiber.Ctx) error {
	var req UpdateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	shipment, err := h.service.UpdateStatusAndLocation(c.Context(), c.Params("code"), ports.UpdateShipmentInput{
		Status:   req.Status,
		Location: req.Location,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: "tracking number not found",
				RayID:   rayID(c),
			})
		}
		var invalid *domain.ValidationError
		if errors.As(err, &invalid) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "validation failed",
				Fields:  invalid.Fields,
				RayID:   rayID(c),
			})
		}
		logger.Get().Error("Failed to update shipment", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "internal server error",
			RayID:   rayID(c),
		})
	}

	return c.JSON(shipment)
}

// UploadProof handles POST /shipments/:code/proof.
// @Summary Attach a proof-of-delivery file
// @Description Stores the uploaded file and records its reference on the shipment.
// @Tags shipments
// @Accept mpfd
// @Produce json
// @Param code path string true "Tracking code"
// @Param file formData file true "Proof-of-delivery file"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments/{code}/proof [post]
func (h *ShipmentHandler) UploadProof(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "file is required",
			RayID:   rayID(c),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "could not read uploaded file",
			RayID:   rayID(c),
		})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "could not read uploaded file",
			RayID:   rayID(c),
		})
	}

	url, err := h.service.AttachProofOfDelivery(c.Context(), c.Params("code"), fileHeader.Filename, content)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: "tracking number not found",
				RayID:   rayID(c),
			})
		}
		logger.Get().Error("Failed to attach proof of delivery", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "internal server error",
			RayID:   rayID(c),
		})
	}

	return c.JSON(fiber.Map{"url": url})
}

// Notify handles POST /shipments/:code/notify.
// @Summary Email the current status to the receiver
// @Description Sends a best-effort status email; transport failures are reported as sent=false, never as an error.
// @Tags shipments
// @Produce json
// @Param code path string true "Tracking code"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments/{code}/notify [post]
func (h *ShipmentHandler) Notify(c *fiber.Ctx) error {
	shipment, err := h.service.GetByTrackingCode(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: "tracking number not found",
				RayID:   rayID(c),
			})
		}
		logger.Get().Error("Failed to load shipment for notification", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "internal server error",
			RayID:   rayID(c),
		})
	}

	sent := h.notifier.Notify(c.Context(), shipment)
	return c.JSON(fiber.Map{"sent": sent})
}

// rayID returns the request identifier set by the requestid middleware.
func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
