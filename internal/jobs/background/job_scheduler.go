package background

import (
	"context"
	"fmt"
	"sync"
	"time"

	"afterhourshvac/internal/analytics"
	"afterhourshvac/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

const jobTimeout = 30 * time.Second

// LimiterSweeper drops idle per-client rate limit state.
type LimiterSweeper interface {
	Sweep(idle time.Duration) int
}

// JobScheduler runs the periodic dashboard refresh and cache warm-up jobs.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc *analytics.AnalyticsService
	blogSvc      services.BlogService
	teamSvc      services.TeamService
	limiter      LimiterSweeper
	limiterIdle  time.Duration
	logger       zerolog.Logger
	jobs         map[string]gocron.Job
	mu           sync.RWMutex
}

func NewJobScheduler(analyticsSvc *analytics.AnalyticsService, blogSvc services.BlogService,
	teamSvc services.TeamService, limiter LimiterSweeper, limiterIdle time.Duration,
	logger zerolog.Logger) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
		blogSvc:      blogSvc,
		teamSvc:      teamSvc,
		limiter:      limiter,
		limiterIdle:  limiterIdle,
		logger:       logger.With().Str("component", "scheduler").Logger(),
		jobs:         make(map[string]gocron.Job),
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	js.logger.Info().Int("jobs", len(js.jobs)).Msg("starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	js.logger.Info().Msg("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

type jobDefinition struct {
	name     string
	interval time.Duration
	task     func()
}

func (js *JobScheduler) registerJobs() error {
	definitions := []jobDefinition{
		{"dashboard-stats-refresh", 5 * time.Minute, js.refreshDashboardStats},
		{"content-cache-warmup", 10 * time.Minute, js.warmContentCache},
	}
	if js.limiter != nil {
		definitions = append(definitions, jobDefinition{"rate-limiter-sweep", 5 * time.Minute, js.sweepRateLimiter})
	}

	for _, d := range definitions {
		job, err := js.scheduler.NewJob(
			gocron.DurationJob(d.interval),
			gocron.NewTask(d.task),
			gocron.WithName(d.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			return fmt.Errorf("failed to create %s job: %w", d.name, err)
		}
		js.mu.Lock()
		js.jobs[d.name] = job
		js.mu.Unlock()
	}
	return nil
}

func (js *JobScheduler) refreshDashboardStats() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	stats, err := js.analyticsSvc.RefreshDashboardStats(ctx)
	if err != nil {
		js.logger.Error().Err(err).Msg("dashboard stats refresh failed")
		return
	}
	js.logger.Debug().
		Float64("paid_revenue", stats.PaidRevenue).
		Dur("took", time.Since(start)).
		Msg("dashboard stats refreshed")
}

// warmContentCache refills the public blog and team listings.
func (js *JobScheduler) warmContentCache() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := js.blogSvc.ListPublished(ctx, 20, 0); err != nil {
		js.logger.Warn().Err(err).Msg("blog cache warm-up failed")
	}
	if _, err := js.teamSvc.List(ctx, true); err != nil {
		js.logger.Warn().Err(err).Msg("team cache warm-up failed")
	}
}

func (js *JobScheduler) sweepRateLimiter() {
	if removed := js.limiter.Sweep(js.limiterIdle); removed > 0 {
		js.logger.Debug().Int("removed", removed).Msg("idle rate limiters dropped")
	}
}

// JobNames lists the registered jobs.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()
	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}
