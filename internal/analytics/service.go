package analytics

import (
	"context"
	"fmt"
	"time"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/repositories"

	"github.com/rs/zerolog"
)

// AnalyticsService computes the admin dashboard figures and keeps them in Redis.
type AnalyticsService struct {
	statsRepo    repositories.StatsRepository
	cacheService caching.CacheService
	logger       zerolog.Logger
	now          func() time.Time
}

func NewAnalyticsService(statsRepo repositories.StatsRepository, cacheService caching.CacheService, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		statsRepo:    statsRepo,
		cacheService: cacheService,
		logger:       logger.With().Str("service", "analytics").Logger(),
		now:          time.Now,
	}
}

// CalculateDashboardStats reads every figure straight from the database.
func (a *AnalyticsService) CalculateDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	byStatus, err := a.statsRepo.BookingCountsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking counts: %w", err)
	}
	for _, s := range []models.BookingStatus{
		models.BookingPending, models.BookingConfirmed, models.BookingScheduled,
		models.BookingCompleted, models.BookingCancelled,
	} {
		if _, ok := byStatus[string(s)]; !ok {
			byStatus[string(s)] = 0
		}
	}

	revenue, err := a.statsRepo.PaidRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("paid revenue: %w", err)
	}
	pendingApps, err := a.statsRepo.CountApplicationsByStatus(ctx, models.ApplicationPending)
	if err != nil {
		return nil, fmt.Errorf("pending applications: %w", err)
	}
	openQuotes, err := a.statsRepo.CountQuotesByStatus(ctx, models.QuoteNew)
	if err != nil {
		return nil, fmt.Errorf("open quotes: %w", err)
	}
	posts, err := a.statsRepo.CountPublishedPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("published posts: %w", err)
	}
	team, err := a.statsRepo.CountActiveTeamMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("team members: %w", err)
	}

	return &models.DashboardStats{
		BookingsByStatus:    byStatus,
		PaidRevenue:         revenue,
		PendingApplications: pendingApps,
		OpenQuotes:          openQuotes,
		PublishedPosts:      posts,
		TeamMembers:         team,
		GeneratedAt:         a.now().UTC(),
	}, nil
}

// DashboardStats serves the cached figures, recomputing on a miss.
func (a *AnalyticsService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	cached, err := a.cacheService.GetDashboardStats(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("dashboard cache read failed")
	}
	if cached != nil {
		return cached, nil
	}
	return a.RefreshDashboardStats(ctx)
}

// RefreshDashboardStats recomputes and re-caches the figures.
func (a *AnalyticsService) RefreshDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats, err := a.CalculateDashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.cacheService.SetDashboardStats(ctx, stats); err != nil {
		a.logger.Warn().Err(err).Msg("dashboard cache write failed")
	}
	return stats, nil
}
