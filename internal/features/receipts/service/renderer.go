package service

import (
	"bytes"
	"fmt"

	"cargoconnect/internal/features/shipments/domain"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// ReceiptRenderer composes a one-page PDF receipt for a shipment with an
// embedded QR code linking to the public tracking page.
type ReceiptRenderer struct {
	baseURL string
}

// NewReceiptRenderer creates a ReceiptRenderer. baseURL is the externally
// reachable base of the tracking page, without a trailing slash.
func NewReceiptRenderer(baseURL string) *ReceiptRenderer {
	return &ReceiptRenderer{
		baseURL: baseURL,
	}
}

// Render returns the receipt PDF for the shipment.
func (r *ReceiptRenderer) Render(shipment *domain.Shipment) ([]byte, error) {
	trackURL := fmt.Sprintf("%s/track/%s", r.baseURL, shipment.TrackingCode)

	qr, err := qrcode.Encode(trackURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tracking QR: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// CargoConnect red title.
	pdf.SetFont("Arial", "", 16)
	pdf.SetTextColor(230, 0, 0)
	pdf.CellFormat(200, 10, "CargoConnect Shipment Receipt", "", 1, "C", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(200, 10, "Tracking: "+shipment.TrackingCode, "", 1, "", false, 0, "")
	pdf.CellFormat(200, 10, "Sender: "+shipment.SenderName, "", 1, "", false, 0, "")
	pdf.CellFormat(200, 10, "Receiver: "+shipment.ReceiverName, "", 1, "", false, 0, "")
	pdf.CellFormat(200, 10, fmt.Sprintf("Amount: $%g", shipment.Amount), "", 1, "", false, 0, "")

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("tracking-qr", opts, bytes.NewReader(qr))
	pdf.ImageOptions("tracking-qr", 160, 20, 30, 30, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}

	return buf.Bytes(), nil
}
