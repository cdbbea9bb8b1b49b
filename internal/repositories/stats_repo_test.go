package repositories

import (
	"context"
	"testing"

	"afterhourshvac/internal/models"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepo_BookingCountsByStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM bookings GROUP BY status`).
		WillReturnRows(pgxmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 3).
			AddRow("completed", 7))

	counts, err := NewStatsRepo(mock).BookingCountsByStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"pending": 3, "completed": 7}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepo_PaidRevenueAndCounts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewStatsRepo(mock)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(service_price\), 0\)::float8 FROM bookings WHERE payment_status = \$1`).
		WithArgs(models.PaymentPaid).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(6648.0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM job_applications WHERE status = \$1`).
		WithArgs(models.ApplicationPending).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM team_members WHERE is_active = TRUE`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))

	revenue, err := repo.PaidRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6648.0, revenue)

	apps, err := repo.CountApplicationsByStatus(ctx, models.ApplicationPending)
	require.NoError(t, err)
	assert.Equal(t, 2, apps)

	team, err := repo.CountActiveTeamMembers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, team)

	assert.NoError(t, mock.ExpectationsWereMet())
}
