package handlers

import (
	"context"
	"net/http"
	"time"

	"afterhourshvac/internal/caching"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 3 * time.Second

// Pinger is anything that can report its own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles liveness and readiness probes.
type HealthHandlers struct {
	db        Pinger
	cache     caching.CacheService
	version   string
	startedAt time.Time
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db Pinger, cache caching.CacheService, version string) *HealthHandlers {
	return &HealthHandlers{
		db:        db,
		cache:     cache,
		version:   version,
		startedAt: time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services,omitempty"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
}

func (h *HealthHandlers) status(state string) *HealthStatus {
	return &HealthStatus{
		Status:    state,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startedAt).Truncate(time.Second).String(),
		Version:   h.version,
	}
}

// Health handles GET /health. It only reports that the process is up.
func (h *HealthHandlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.status("healthy"))
}

// Ready handles GET /health/ready by pinging PostgreSQL and Redis.
func (h *HealthHandlers) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	health := h.status("healthy")
	health.Services = map[string]string{}

	check := func(name string, ping func(context.Context) error) {
		if err := ping(ctx); err != nil {
			health.Services[name] = "unhealthy"
			health.Status = "unhealthy"
			return
		}
		health.Services[name] = "healthy"
	}
	check("database", h.db.Ping)
	check("redis", h.cache.Ping)

	code := http.StatusOK
	if health.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, health)
}
