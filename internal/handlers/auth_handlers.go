package handlers

import (
	"net/http"
	"time"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/common"
	"afterhourshvac/internal/config"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// AuthHandlers handles registration, login and the session cookie.
type AuthHandlers struct {
	authService services.AuthService
	cfg         config.SessionConfig
	logger      zerolog.Logger
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService, cfg config.SessionConfig, logger zerolog.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		cfg:         cfg,
		logger:      logger.With().Str("handler", "auth").Logger(),
	}
}

type sessionResponse struct {
	User models.SessionUser `json:"user"`
}

func (h *AuthHandlers) setSessionCookie(c echo.Context, sess *services.Session) {
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearSessionCookie(c echo.Context) {
	common.ClearCookie(c, h.cfg.CookieName, h.cfg.Secure)
}

// Register handles POST /api/auth/register
// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.RegisterRequest true "Account details"
// @Success 201 {object} sessionResponse
// @Failure 400 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandlers) Register(c echo.Context) error {
	var req services.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, sess, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return serviceError(err, "User")
	}

	h.logger.Info().Str("user_id", user.ID.String()).Bool("admin", user.IsAdmin).Msg("user registered")
	h.setSessionCookie(c, sess)
	common.MarkInvalidated(c, caching.ResourceUsers)
	return c.JSON(http.StatusCreated, sessionResponse{User: user.SessionUser()})
}

// Login handles POST /api/auth/login
// @Summary Log in with email or username
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.LoginRequest true "Credentials"
// @Success 200 {object} sessionResponse
// @Failure 401 {object} common.ErrorResponse
// @Failure 403 {object} common.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandlers) Login(c echo.Context) error {
	var req services.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, sess, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return serviceError(err, "User")
	}

	h.setSessionCookie(c, sess)
	return c.JSON(http.StatusOK, sessionResponse{User: user.SessionUser()})
}

// Logout handles POST /api/auth/logout. It always clears the cookie, even
// without a live session.
func (h *AuthHandlers) Logout(c echo.Context) error {
	sessionID, _ := c.Get(common.SessionIDKey).(string)
	if err := h.authService.Logout(c.Request().Context(), sessionID); err != nil {
		h.logger.Warn().Err(err).Msg("failed to revoke session")
	}
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}

// Me handles GET /api/auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	user, ok := common.GetSessionUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, sessionResponse{User: *user})
}
