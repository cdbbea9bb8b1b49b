package repositories

import (
	"context"

	"afterhourshvac/internal/models"
)

// StatsRepository runs the aggregate queries behind the admin dashboard.
type StatsRepository interface {
	BookingCountsByStatus(ctx context.Context) (map[string]int, error)
	PaidRevenue(ctx context.Context) (float64, error)
	CountApplicationsByStatus(ctx context.Context, status models.ApplicationStatus) (int, error)
	CountQuotesByStatus(ctx context.Context, status models.QuoteStatus) (int, error)
	CountPublishedPosts(ctx context.Context) (int, error)
	CountActiveTeamMembers(ctx context.Context) (int, error)
}

type statsRepo struct {
	db Database
}

func NewStatsRepo(db Database) StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) BookingCountsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *statsRepo) PaidRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(service_price), 0)::float8 FROM bookings WHERE payment_status = $1`, models.PaymentPaid).Scan(&total)
	return total, err
}

func (r *statsRepo) CountApplicationsByStatus(ctx context.Context, status models.ApplicationStatus) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM job_applications WHERE status = $1`, status)
}

func (r *statsRepo) CountQuotesByStatus(ctx context.Context, status models.QuoteStatus) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM quote_requests WHERE status = $1`, status)
}

func (r *statsRepo) CountPublishedPosts(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM blog_posts WHERE published = TRUE`)
}

func (r *statsRepo) CountActiveTeamMembers(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM team_members WHERE is_active = TRUE`)
}

func (r *statsRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}
