package middleware

import (
	"net/http"
	"time"

	"afterhourshvac/internal/common"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	VisitorCookieName = "hvac_visitor"
	visitorCookieTTL  = 30 * 24 * time.Hour
)

// Visitor gives every browser an anonymous id. The booking modal keys its
// pending-booking stash by it.
func Visitor(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(VisitorCookieName); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     VisitorCookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(visitorCookieTTL.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(common.VisitorIDKey, id)
			return next(c)
		}
	}
}
