package handlers

import (
	"errors"
	"io"
	"net/http"

	"afterhourshvac/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const maxWebhookBytes = 65536

// WebhookHandlers receives payment provider callbacks.
type WebhookHandlers struct {
	gateway        services.PaymentGateway
	bookingService services.BookingService
	logger         zerolog.Logger
}

// NewWebhookHandlers creates a new webhook handlers instance
func NewWebhookHandlers(gateway services.PaymentGateway, bookingService services.BookingService, logger zerolog.Logger) *WebhookHandlers {
	return &WebhookHandlers{
		gateway:        gateway,
		bookingService: bookingService,
		logger:         logger.With().Str("handler", "webhooks").Logger(),
	}
}

// StripeWebhook handles POST /api/webhooks/stripe
func (h *WebhookHandlers) StripeWebhook(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read request body")
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if signature == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing signature")
	}

	event, err := h.gateway.ParseWebhook(c.Request().Context(), body, signature)
	if err != nil {
		if errors.Is(err, services.ErrGatewayNotConfigured) {
			return echo.NewHTTPError(http.StatusServiceUnavailable).SetInternal(err)
		}
		h.logger.Warn().Err(err).Msg("rejected webhook")
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid webhook")
	}

	if err := h.bookingService.ApplyPaymentEvent(c.Request().Context(), event); err != nil {
		return serviceError(err, "Booking")
	}
	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
