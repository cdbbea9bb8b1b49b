package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hvac_test")
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("ADMIN_EMAILS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "hvac_session", cfg.Session.CookieName)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"jordan@afterhourshvac.ca"}, cfg.Session.AdminEmails)
	assert.False(t, cfg.Stripe.VerifySessions)
	assert.Equal(t, "cad", cfg.Stripe.Currency)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_VerifyDefaultsOnWithStripeKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hvac_test")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_VERIFY_SESSIONS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Stripe.VerifySessions)
}

func TestLoad_ProductionRequiresLongSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hvac_test")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "short")

	_, err := Load()
	require.Error(t, err)
}

func TestSessionConfig_IsAdminEmail(t *testing.T) {
	s := SessionConfig{AdminEmails: normalizeEmails(splitList("Jordan@AfterHoursHVAC.ca, ops@afterhourshvac.ca"))}

	assert.True(t, s.IsAdminEmail("jordan@afterhourshvac.ca"))
	assert.True(t, s.IsAdminEmail("  OPS@afterhourshvac.ca "))
	assert.False(t, s.IsAdminEmail("someone@example.com"))
}
