package handler

import (
	"errors"
	"net/http"

	"cargoconnect/internal/core/logger"
	"cargoconnect/internal/features/receipts/service"
	"cargoconnect/internal/features/shipments/domain"
	"cargoconnect/internal/features/shipments/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReceiptHandler handles HTTP requests for PDF receipts.
type ReceiptHandler struct {
	shipments ports.ShipmentService
	renderer  *service.ReceiptRenderer
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(shipments ports.ShipmentService, renderer *service.ReceiptRenderer) *ReceiptHandler {
	return &ReceiptHandler{
		shipments: shipments,
		renderer:  renderer,
	}
}

// Receipt handles GET /shipments/:code/receipt.pdf.
// @Summary Download a shipment receipt
// @Description Generates a PDF receipt with an embedded QR code linking to the public tracking page.
// @Tags shipments
// @Produce application/pdf
// @Param code path string true "Tracking code"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /shipments/{code}/receipt.pdf [get]
func (h *ReceiptHandler) Receipt(c *fiber.Ctx) error {
	shipment, err := h.shipments.GetByTrackingCode(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"message": "tracking number not found",
			})
		}
		logger.Get().Error("Failed to load shipment for receipt", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "internal server error",
		})
	}

	pdf, err := h.renderer.Render(shipment)
	if err != nil {
		logger.Get().Error("Failed to render receipt", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "internal server error",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}
