package services

import (
	"context"
	"testing"
	"time"

	"afterhourshvac/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testWebhookSecret = "whsec_test_secret"

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(649900), toMinorUnits(6499))
	assert.Equal(t, int64(14999), toMinorUnits(149.99))
	assert.Equal(t, int64(0), toMinorUnits(0))
}

func signedPayload(t *testing.T, payload string) ([]byte, string) {
	t.Helper()
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})
	return signed.Payload, signed.Header
}

func TestParseWebhook(t *testing.T) {
	gateway := NewStripeGateway(config.StripeConfig{WebhookSecret: testWebhookSecret, Currency: "cad"}, "http://localhost:8080")
	ctx := context.Background()

	t.Run("checkout completed", func(t *testing.T) {
		payload, header := signedPayload(t, `{
			"id": "evt_1", "object": "event", "type": "checkout.session.completed",
			"data": {"object": {"id": "cs_test_1", "object": "checkout.session", "payment_status": "paid"}}
		}`)

		event, err := gateway.ParseWebhook(ctx, payload, header)

		require.NoError(t, err)
		assert.Equal(t, EventCheckoutCompleted, event.Type)
		assert.Equal(t, "cs_test_1", event.SessionID)
		assert.Equal(t, "paid", event.Status)
	})

	t.Run("async payment failed", func(t *testing.T) {
		payload, header := signedPayload(t, `{
			"id": "evt_2", "object": "event", "type": "checkout.session.async_payment_failed",
			"data": {"object": {"id": "cs_test_2", "object": "checkout.session", "payment_status": "unpaid"}}
		}`)

		event, err := gateway.ParseWebhook(ctx, payload, header)

		require.NoError(t, err)
		assert.Equal(t, "cs_test_2", event.SessionID)
		assert.Equal(t, "unpaid", event.Status)
	})

	t.Run("unhandled type", func(t *testing.T) {
		payload, header := signedPayload(t, `{
			"id": "evt_3", "object": "event", "type": "customer.created",
			"data": {"object": {"id": "cus_1", "object": "customer"}}
		}`)

		event, err := gateway.ParseWebhook(ctx, payload, header)

		require.NoError(t, err)
		assert.Equal(t, "customer.created", event.Type)
		assert.Empty(t, event.SessionID)
	})

	t.Run("refund without payment intent", func(t *testing.T) {
		payload, header := signedPayload(t, `{
			"id": "evt_4", "object": "event", "type": "charge.refunded",
			"data": {"object": {"id": "ch_1", "object": "charge"}}
		}`)

		event, err := gateway.ParseWebhook(ctx, payload, header)

		require.NoError(t, err)
		assert.Equal(t, EventChargeRefunded, event.Type)
		assert.Empty(t, event.SessionID)
	})

	t.Run("bad signature", func(t *testing.T) {
		payload, _ := signedPayload(t, `{"id": "evt_5", "object": "event", "type": "checkout.session.completed"}`)

		_, err := gateway.ParseWebhook(ctx, payload, "t=1,v1=deadbeef")
		assert.Error(t, err)
	})
}

func TestGatewayWithoutKeys(t *testing.T) {
	gateway := NewStripeGateway(config.StripeConfig{}, "http://localhost:8080")
	ctx := context.Background()

	_, err := gateway.CreateCheckoutSession(ctx, CheckoutRequest{Price: 149, ServiceName: "AC Tune-Up"})
	assert.ErrorIs(t, err, ErrGatewayNotConfigured)

	_, err = gateway.SessionPaymentStatus(ctx, "cs_test_1")
	assert.ErrorIs(t, err, ErrGatewayNotConfigured)

	_, err = gateway.ParseWebhook(ctx, []byte(`{}`), "t=1,v1=x")
	assert.ErrorIs(t, err, ErrGatewayNotConfigured)
}
