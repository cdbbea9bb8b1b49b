package handlers

import (
	"errors"
	"net/http"

	"afterhourshvac/internal/common"
	"afterhourshvac/internal/services"

	"github.com/labstack/echo/v4"
)

// CheckoutHandlers starts hosted checkout sessions for the booking modal.
type CheckoutHandlers struct {
	checkoutService services.CheckoutService
}

// NewCheckoutHandlers creates a new checkout handlers instance
func NewCheckoutHandlers(checkoutService services.CheckoutService) *CheckoutHandlers {
	return &CheckoutHandlers{checkoutService: checkoutService}
}

// CreateCheckoutSession handles POST /api/create-checkout-session
// @Summary Start a hosted checkout
// @Tags checkout
// @Accept json
// @Produce json
// @Param body body services.CheckoutRequest true "Service and price"
// @Success 200 {object} services.CheckoutSession
// @Failure 400 {object} common.ErrorResponse
// @Failure 502 {object} common.ErrorResponse
// @Router /api/create-checkout-session [post]
func (h *CheckoutHandlers) CreateCheckoutSession(c echo.Context) error {
	var req services.CheckoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sess, err := h.checkoutService.CreateSession(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrCheckoutUnavailable) {
			return checkoutUnavailable(c)
		}
		return serviceError(err, "Checkout session")
	}
	return c.JSON(http.StatusOK, sess)
}

// checkoutUnavailable answers every gateway failure with the same message.
func checkoutUnavailable(c echo.Context) error {
	return c.JSON(http.StatusBadGateway, common.CreateErrorResponse(common.CodeServer, services.CheckoutFailedMessage, nil))
}
