package service

import (
	"context"
	"testing"
	"time"

	"cargoconnect/internal/core/config"
	"cargoconnect/internal/features/shipments/domain"

	"github.com/stretchr/testify/assert"
)

func TestSMTPDispatcher_Notify(t *testing.T) {
	shipment := &domain.Shipment{
		TrackingCode:  "CC-20260828-0001",
		Status:        domain.StatusInTransit,
		ReceiverName:  "Receiver",
		ReceiverEmail: "receiver@example.com",
	}

	t.Run("UnconfiguredTransportSkipsWithoutConnecting", func(t *testing.T) {
		dispatcher := NewSMTPDispatcher(config.SMTPConfig{}, "https://cargo.example.com")

		start := time.Now()
		sent := dispatcher.Notify(context.Background(), shipment)

		assert.False(t, sent)
		// No dial may happen on the short-circuit path.
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("PartialConfigSkips", func(t *testing.T) {
		dispatcher := NewSMTPDispatcher(config.SMTPConfig{
			Host: "smtp.example.com",
			Port: 587,
		}, "https://cargo.example.com")

		assert.False(t, dispatcher.Notify(context.Background(), shipment))
	})

	t.Run("InvalidRecipientIsNotSent", func(t *testing.T) {
		dispatcher := NewSMTPDispatcher(config.SMTPConfig{
			Host:           "smtp.example.com",
			Port:           587,
			User:           "mailer@example.com",
			Pass:           "secret",
			TimeoutSeconds: 1,
		}, "https://cargo.example.com")

		broken := &domain.Shipment{
			TrackingCode:  "CC-20260828-0002",
			ReceiverEmail: "not-an-address",
		}
		assert.False(t, dispatcher.Notify(context.Background(), broken))
	})
}
