package middleware

import (
	"net/http"

	"afterhourshvac/internal/common"
	"afterhourshvac/internal/config"
	"afterhourshvac/internal/services"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const tokenContextKey = "session_token"

// SessionMiddleware authenticates requests from the signed session cookie
// and the matching server-side session record.
type SessionMiddleware struct {
	authSvc services.AuthService
	cfg     config.SessionConfig
	logger  zerolog.Logger
}

func NewSessionMiddleware(authSvc services.AuthService, cfg config.SessionConfig, logger zerolog.Logger) *SessionMiddleware {
	return &SessionMiddleware{authSvc: authSvc, cfg: cfg, logger: logger}
}

func (m *SessionMiddleware) jwtConfig(optional bool) echojwt.Config {
	return echojwt.Config{
		SigningKey:    []byte(m.cfg.Secret),
		SigningMethod: echojwt.AlgorithmHS256,
		TokenLookup:   "cookie:" + m.cfg.CookieName,
		ContextKey:    tokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(services.SessionClaims)
		},
		ContinueOnIgnoredError: optional,
		ErrorHandler: func(c echo.Context, err error) error {
			if optional {
				return nil
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		},
	}
}

// Required rejects requests without a live session with 401.
func (m *SessionMiddleware) Required() echo.MiddlewareFunc {
	parse := echojwt.WithConfig(m.jwtConfig(false))
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return parse(m.resolve(true)(next))
	}
}

// Optional attaches the session user when there is one and never rejects.
func (m *SessionMiddleware) Optional() echo.MiddlewareFunc {
	parse := echojwt.WithConfig(m.jwtConfig(true))
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return parse(m.resolve(false)(next))
	}
}

// resolve checks the parsed token against Redis so logged-out sessions stop
// working before the cookie expires.
func (m *SessionMiddleware) resolve(required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reject := func() error {
				if required {
					return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
				}
				return next(c)
			}

			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok || token == nil {
				return reject()
			}
			claims, ok := token.Claims.(*services.SessionClaims)
			if !ok {
				return reject()
			}

			user, err := m.authSvc.ResolveSession(c.Request().Context(), claims.ID)
			if err != nil {
				m.logger.Error().Err(err).Msg("session lookup failed")
				return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
			}
			if user == nil || user.ID.String() != claims.UserID {
				// Revoked or expired server-side: drop the stale cookie.
				common.ClearCookie(c, m.cfg.CookieName, m.cfg.Secure)
				return reject()
			}

			c.Set(common.SessionUserKey, user)
			c.Set(common.SessionIDKey, claims.ID)
			return next(c)
		}
	}
}

// RequireAdmin answers 401 unless the session user is an admin. It must run
// after Required.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := common.GetSessionUser(c)
			if !ok || !user.IsAdmin {
				return echo.NewHTTPError(http.StatusUnauthorized, "Admin access required")
			}
			return next(c)
		}
	}
}
