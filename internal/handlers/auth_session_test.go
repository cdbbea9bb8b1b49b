package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"afterhourshvac/internal/config"
	"afterhourshvac/internal/middleware"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMe_ClearsCookieWhenSessionIsGone(t *testing.T) {
	cfg := config.SessionConfig{Secret: "handler-test-secret-handler-test", CookieName: "hvac_session", TTL: time.Hour}
	svc := new(MockAuthService)
	svc.On("ResolveSession", mock.Anything, "revoked-jti").Return(nil, nil)

	e := newTestEcho(t)
	h := NewAuthHandlers(svc, cfg, zerolog.Nop())
	session := middleware.NewSessionMiddleware(svc, cfg, zerolog.Nop())
	e.GET("/api/auth/me", h.Me, session.Optional())

	user := models.SessionUser{ID: uuid.New(), Username: "jordan", IsAdmin: true}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.SessionClaims{
		UserID:  user.ID.String(),
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "revoked-jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "hvac_session", Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	cookie := findCookie(rec, "hvac_session")
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
	svc.AssertExpectations(t)
}
