package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"afterhourshvac/internal/models"
	"afterhourshvac/testhelpers"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) BookingCountsByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockStatsRepository) PaidRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockStatsRepository) CountApplicationsByStatus(ctx context.Context, status models.ApplicationStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountQuotesByStatus(ctx context.Context, status models.QuoteStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountPublishedPosts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountActiveTeamMembers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func expectFigures(repo *MockStatsRepository) {
	repo.On("BookingCountsByStatus", mock.Anything).Return(map[string]int{"pending": 2, "completed": 4}, nil)
	repo.On("PaidRevenue", mock.Anything).Return(6797.0, nil)
	repo.On("CountApplicationsByStatus", mock.Anything, models.ApplicationPending).Return(3, nil)
	repo.On("CountQuotesByStatus", mock.Anything, models.QuoteNew).Return(1, nil)
	repo.On("CountPublishedPosts", mock.Anything).Return(6, nil)
	repo.On("CountActiveTeamMembers", mock.Anything).Return(5, nil)
}

func TestCalculateDashboardStats_FillsMissingStatuses(t *testing.T) {
	repo := new(MockStatsRepository)
	expectFigures(repo)
	cache, _ := testhelpers.NewTestCache(t)
	svc := NewAnalyticsService(repo, cache, zerolog.Nop())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	stats, err := svc.CalculateDashboardStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"pending": 2, "confirmed": 0, "scheduled": 0, "completed": 4, "cancelled": 0}, stats.BookingsByStatus)
	assert.Equal(t, 6797.0, stats.PaidRevenue)
	assert.Equal(t, 3, stats.PendingApplications)
	assert.Equal(t, 1, stats.OpenQuotes)
	assert.Equal(t, 6, stats.PublishedPosts)
	assert.Equal(t, 5, stats.TeamMembers)
	assert.Equal(t, fixed, stats.GeneratedAt)
}

func TestDashboardStats_ServedFromCache(t *testing.T) {
	repo := new(MockStatsRepository)
	expectFigures(repo)
	cache, _ := testhelpers.NewTestCache(t)
	svc := NewAnalyticsService(repo, cache, zerolog.Nop())
	ctx := context.Background()

	first, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	second, err := svc.DashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.PaidRevenue, second.PaidRevenue)
	repo.AssertNumberOfCalls(t, "PaidRevenue", 1)
}

func TestDashboardStats_RepositoryError(t *testing.T) {
	repo := new(MockStatsRepository)
	repo.On("BookingCountsByStatus", mock.Anything).Return(nil, errors.New("connection refused"))
	cache, _ := testhelpers.NewTestCache(t)
	svc := NewAnalyticsService(repo, cache, zerolog.Nop())

	_, err := svc.DashboardStats(context.Background())
	assert.ErrorContains(t, err, "booking counts")
}
