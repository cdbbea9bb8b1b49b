package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "afterhourshvac",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "afterhourshvac",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	checkoutSessions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "afterhourshvac",
			Name:      "checkout_sessions_total",
			Help:      "Hosted checkout sessions requested, by outcome.",
		},
		[]string{"outcome"},
	)

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "afterhourshvac",
			Name:      "bookings_created_total",
			Help:      "Bookings persisted, by payment status.",
		},
		[]string{"payment_status"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, checkoutSessions, bookingsCreated)
	})
}

func ObserveHTTP(route, method string, status int, d time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

func IncCheckout(outcome string) {
	checkoutSessions.WithLabelValues(outcome).Inc()
}

func IncBookingCreated(paymentStatus string) {
	bookingsCreated.WithLabelValues(paymentStatus).Inc()
}
