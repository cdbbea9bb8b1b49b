package handlers

import (
	"errors"
	"net/http"

	"afterhourshvac/internal/common"
	"afterhourshvac/internal/services"

	"github.com/labstack/echo/v4"
)

// bindAndValidate binds the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return c.Validate(req)
}

// serviceError maps service sentinels to HTTP errors. Unknown errors become
// a 500 whose cause is logged by the error handler but never sent.
func serviceError(err error, resource string) error {
	var validationErr *common.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, resource+" not found")
	case errors.Is(err, services.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, resource+" already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrAccountLocked):
		return echo.NewHTTPError(http.StatusForbidden, "Account is locked")
	case errors.Is(err, services.ErrPaymentNotConfirmed):
		return echo.NewHTTPError(http.StatusPaymentRequired, "Payment not confirmed")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
}

// listResponse is the envelope for paginated admin lists.
func listResponse(key string, items any, limit, offset int) map[string]any {
	return map[string]any{
		key:      items,
		"limit":  limit,
		"offset": offset,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}
