package repositories

import (
	"context"
	"testing"

	"afterhourshvac/internal/models"
	"afterhourshvac/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRepo_Postgres(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewBookingRepo(db.Pool)
	ctx := context.Background()

	booking := testhelpers.NewBookingFixture()
	require.NoError(t, repo.Create(ctx, booking))
	assert.False(t, booking.CreatedAt.IsZero())

	dup := testhelpers.NewBookingFixture()
	dup.StripeSessionID = booking.StripeSessionID
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrDuplicate)

	require.NoError(t, repo.UpdatePaymentStatusBySession(ctx, *booking.StripeSessionID, models.PaymentRefunded))
	got, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, got.PaymentStatus)
	assert.Equal(t, 149.0, got.ServicePrice)

	assert.ErrorIs(t, repo.UpdatePaymentStatusBySession(ctx, "cs_unknown", models.PaymentPaid), ErrNotFound)

	require.NoError(t, repo.Delete(ctx, booking.ID))
	_, err = repo.GetByID(ctx, booking.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_Postgres(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	admin := testhelpers.SetupTestAdmin(t, db)
	repo := NewUserRepo(db.Pool)

	got, err := repo.GetByEmail(context.Background(), "JORDAN@afterhourshvac.ca")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
	assert.True(t, got.IsAdmin)
}
