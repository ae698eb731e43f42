package service

import (
	"context"
	"fmt"
	"time"

	"cargoconnect/internal/core/config"
	"cargoconnect/internal/core/logger"
	"cargoconnect/internal/features/shipments/domain"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// SMTPDispatcher implements ports.Dispatcher over SMTP. Delivery is
// best-effort: an unconfigured transport short-circuits without attempting
// a connection, and any send error is logged and reported as "not sent".
type SMTPDispatcher struct {
	cfg     config.SMTPConfig
	baseURL string
	timeout time.Duration
}

// NewSMTPDispatcher creates a new SMTPDispatcher.
func NewSMTPDispatcher(cfg config.SMTPConfig, baseURL string) *SMTPDispatcher {
	return &SMTPDispatcher{
		cfg:     cfg,
		baseURL: baseURL,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// Notify composes a status message for the shipment's receiver and hands
// it to the SMTP transport under a bounded timeout.
func (d *SMTPDispatcher) Notify(ctx context.Context, shipment *domain.Shipment) bool {
	if d.cfg.Host == "" || d.cfg.User == "" || d.cfg.Pass == "" {
		logger.Get().Debug("Mail transport not configured, skipping notification",
			zap.String("tracking_code", shipment.TrackingCode),
		)
		return false
	}

	subject := fmt.Sprintf("CargoConnect Update: %s - %s", shipment.TrackingCode, shipment.Status)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour shipment %s status is now: %s.\nTrack here: %s/track/%s\n\nCargoConnect",
		shipment.ReceiverName, shipment.TrackingCode, shipment.Status, d.baseURL, shipment.TrackingCode,
	)

	msg := mail.NewMsg()
	if err := msg.From(d.cfg.User); err != nil {
		logger.Get().Error("Invalid notification sender", zap.Error(err))
		return false
	}
	if err := msg.To(shipment.ReceiverEmail); err != nil {
		logger.Get().Error("Invalid notification recipient",
			zap.String("tracking_code", shipment.TrackingCode),
			zap.Error(err),
		)
		return false
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(d.cfg.Host,
		mail.WithPort(d.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(d.cfg.User),
		mail.WithPassword(d.cfg.Pass),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(d.timeout),
	)
	if err != nil {
		logger.Get().Error("Failed to build mail client", zap.Error(err))
		return false
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := client.DialAndSendWithContext(sendCtx, msg); err != nil {
		logger.Get().Warn("Notification delivery failed",
			zap.String("tracking_code", shipment.TrackingCode),
			zap.Error(err),
		)
		return false
	}

	logger.Get().Info("Notification sent",
		zap.String("tracking_code", shipment.TrackingCode),
		zap.String("status", string(shipment.Status)),
	)
	return true
}
