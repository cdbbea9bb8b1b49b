package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"afterhourshvac/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	SessionUserKey = "session_user"
	SessionIDKey   = "session_id"
	VisitorIDKey   = "visitor_id"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeClient       = "CLIENT_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeServer       = "SERVER_ERROR"
)

// InvalidateHeader tells clients which cached resource a mutation touched.
const InvalidateHeader = "X-Invalidate"

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// ValidationError carries per-field messages for a 400 response.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for field, msg := range e.Details {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Details: map[string]string{field: message}}
}

// CodeForStatus maps an HTTP status to its error code.
func CodeForStatus(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return CodeValidation
	case status == http.StatusUnauthorized:
		return CodeUnauthorized
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusConflict:
		return CodeConflict
	case status >= 500:
		return CodeServer
	default:
		return CodeClient
	}
}

// HTTPErrorHandler renders every error as an ErrorResponse. Server errors
// are logged and answered with a generic message.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error"
		var details map[string]string

		var validationErr *ValidationError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &validationErr):
			status = http.StatusBadRequest
			message = "Validation failed"
			details = validationErr.Details
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if status < 500 {
				message = fmt.Sprint(httpErr.Message)
			}
			if httpErr.Internal != nil {
				err = httpErr.Internal
			}
		}

		if status >= 500 {
			logger.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("request failed")
		}

		resp := CreateErrorResponse(CodeForStatus(status), message, details)
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, resp)
		}
		if err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	}
}

// GetSessionUser returns the identity attached by the session middleware.
func GetSessionUser(c echo.Context) (*models.SessionUser, bool) {
	user, ok := c.Get(SessionUserKey).(*models.SessionUser)
	return user, ok && user != nil
}

// GetVisitorID returns the anonymous visitor id attached by the visitor middleware.
func GetVisitorID(c echo.Context) string {
	id, _ := c.Get(VisitorIDKey).(string)
	return id
}

// ParseUUIDParam reads a path parameter as a UUID.
func ParseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return uuid.Nil, NewValidationError(name, "is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, NewValidationError(name, "must be a valid UUID")
	}
	return id, nil
}

// ParsePagination reads limit/offset query params. Bad values fall back to
// the defaults; repositories clamp the upper bound.
func ParsePagination(c echo.Context) (int, int) {
	limit, offset := 20, 0
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

// ClearCookie expires the named HTTP-only cookie in the browser.
func ClearCookie(c echo.Context, name string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// MarkInvalidated sets the cache-invalidation signal on the response.
func MarkInvalidated(c echo.Context, resource string) {
	c.Response().Header().Add(InvalidateHeader, resource)
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
