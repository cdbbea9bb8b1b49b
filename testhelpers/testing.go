package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/models"
	"afterhourshvac/pkg/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

var truncated = []string{"quote_requests", "team_members", "blog_posts", "job_applications", "bookings", "users"}

// SetupTestDB connects to TEST_DATABASE_URL, applies migrations and empties
// every table. The test is skipped when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if err := database.Migrate(connString, zerolog.Nop()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	pool, err := database.NewPool(context.Background(), connString, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	db := &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
	truncateAll(t, db)
	t.Cleanup(func() { _ = db.Cleanup() })
	return db
}

func truncateAll(t *testing.T, db *TestDB) {
	t.Helper()
	for _, table := range truncated {
		if _, err := db.Pool.Exec(context.Background(), "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			t.Fatalf("Failed to truncate %s: %v", table, err)
		}
	}
}

// NewTestCache returns the Redis cache backed by an in-process miniredis.
func NewTestCache(t *testing.T) (caching.CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return caching.NewRedisCacheService(client), mr
}

// NewBookingFixture returns a paid maintenance booking that has not been stored.
func NewBookingFixture() *models.Booking {
	session := "cs_test_" + uuid.NewString()[:8]
	return &models.Booking{
		ID:                 uuid.New(),
		CustomerName:       "Pat Doe",
		CustomerEmail:      "pat@example.com",
		CustomerPhone:      "4035550100",
		CustomerAddress:    "12 Main St",
		ServiceName:        "Furnace Tune-Up",
		ServicePrice:       149,
		ServiceDescription: "21-point inspection",
		ServiceCategory:    "maintenance",
		Status:             models.BookingPending,
		PaymentStatus:      models.PaymentPaid,
		StripeSessionID:    &session,
	}
}

// SetupTestAdmin inserts an admin user and returns it.
func SetupTestAdmin(t *testing.T, db *TestDB) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Username:     "jordan",
		Email:        "jordan@afterhourshvac.ca",
		PasswordHash: "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z4lH1aR1zZ8Ff7rXGZ8r6s1K",
		Role:         models.RoleAdmin,
		IsAdmin:      true,
		CreatedAt:    time.Now(),
	}
	query := `
		INSERT INTO users (id, username, email, password_hash, role, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Role, user.IsAdmin, user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}
	return user
}
