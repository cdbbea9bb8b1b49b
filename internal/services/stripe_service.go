package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"afterhourshvac/internal/config"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// CheckoutRequest describes a single-item hosted checkout.
type CheckoutRequest struct {
	Price         float64 `json:"price" validate:"gte=0"`
	ServiceName   string  `json:"serviceName" validate:"required"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	CustomerEmail string  `json:"customerEmail" validate:"omitempty,email"`
}

type CheckoutSession struct {
	ID  string `json:"sessionId"`
	URL string `json:"url"`
}

// PaymentEvent is a webhook event reduced to what bookings care about.
type PaymentEvent struct {
	Type      string
	SessionID string
	Status    string
}

// PaymentGateway is the hosted checkout provider.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	SessionPaymentStatus(ctx context.Context, sessionID string) (string, error)
	ParseWebhook(ctx context.Context, payload []byte, signature string) (*PaymentEvent, error)
}

const (
	EventCheckoutCompleted          = "checkout.session.completed"
	EventCheckoutAsyncPaymentOK     = "checkout.session.async_payment_succeeded"
	EventCheckoutAsyncPaymentFailed = "checkout.session.async_payment_failed"
	EventChargeRefunded             = "charge.refunded"
)

var ErrGatewayNotConfigured = errors.New("payment gateway not configured")

type stripeGateway struct {
	api           *client.API
	webhookSecret string
	currency      string
	successURL    string
	cancelURL     string
}

// NewStripeGateway returns a gateway that fails every call when no secret
// key is configured.
func NewStripeGateway(cfg config.StripeConfig, baseURL string) PaymentGateway {
	g := &stripeGateway{
		webhookSecret: cfg.WebhookSecret,
		currency:      cfg.Currency,
		successURL:    baseURL + "/booking/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:     baseURL + "/booking/cancelled",
	}
	if cfg.SecretKey != "" {
		g.api = client.New(cfg.SecretKey, nil)
	}
	return g
}

// toMinorUnits converts a dollar amount to cents.
func toMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if g.api == nil {
		return nil, ErrGatewayNotConfigured
	}

	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(req.ServiceName),
	}
	if req.Description != "" {
		product.Description = stripe.String(req.Description)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(g.currency),
					ProductData: product,
					UnitAmount:  stripe.Int64(toMinorUnits(req.Price)),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.Context = ctx
	params.AddMetadata("serviceName", req.ServiceName)
	params.AddMetadata("serviceCategory", req.Category)

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (g *stripeGateway) SessionPaymentStatus(ctx context.Context, sessionID string) (string, error) {
	if g.api == nil {
		return "", ErrGatewayNotConfigured
	}
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return "", fmt.Errorf("retrieve checkout session: %w", err)
	}
	return string(sess.PaymentStatus), nil
}

// ParseWebhook verifies the signature and extracts the checkout session the
// event refers to. Unhandled event types come back with an empty SessionID.
func (g *stripeGateway) ParseWebhook(ctx context.Context, payload []byte, signature string) (*PaymentEvent, error) {
	if g.webhookSecret == "" {
		return nil, ErrGatewayNotConfigured
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("verify webhook: %w", err)
	}

	out := &PaymentEvent{Type: string(event.Type)}
	switch out.Type {
	case EventCheckoutCompleted, EventCheckoutAsyncPaymentOK, EventCheckoutAsyncPaymentFailed:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}
		out.SessionID = sess.ID
		out.Status = string(sess.PaymentStatus)
	case EventChargeRefunded:
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return nil, fmt.Errorf("decode charge: %w", err)
		}
		if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
			return out, nil
		}
		sessionID, err := g.sessionForPaymentIntent(ctx, charge.PaymentIntent.ID)
		if err != nil {
			return nil, err
		}
		out.SessionID = sessionID
	}
	return out, nil
}

func (g *stripeGateway) sessionForPaymentIntent(ctx context.Context, paymentIntentID string) (string, error) {
	if g.api == nil {
		return "", ErrGatewayNotConfigured
	}
	params := &stripe.CheckoutSessionListParams{PaymentIntent: stripe.String(paymentIntentID)}
	params.Context = ctx
	iter := g.api.CheckoutSessions.List(params)
	if iter.Next() {
		return iter.CheckoutSession().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("list checkout sessions: %w", err)
	}
	return "", nil
}
