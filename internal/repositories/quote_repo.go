package repositories

import (
	"context"

	"afterhourshvac/internal/models"

	"github.com/google/uuid"
)

type QuoteRepository interface {
	Create(ctx context.Context, quote *models.QuoteRequest) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.QuoteStatus) error
	List(ctx context.Context, limit, offset int) ([]*models.QuoteRequest, error)
}

type quoteRepo struct {
	db Database
}

func NewQuoteRepo(db Database) QuoteRepository {
	return &quoteRepo{db: db}
}

func (r *quoteRepo) Create(ctx context.Context, q *models.QuoteRequest) error {
	query := `
		INSERT INTO quote_requests (id, name, email, phone, address, service_type, property_type, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, q.ID, q.Name, q.Email, q.Phone, q.Address, q.ServiceType, q.PropertyType, q.Message, q.Status).
		Scan(&q.CreatedAt)
	return mapError(err)
}

func (r *quoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.QuoteStatus) error {
	query := `UPDATE quote_requests SET status = $1 WHERE id = $2`
	return requireAffected(r.db.Exec(ctx, query, status, id))
}

func (r *quoteRepo) List(ctx context.Context, limit, offset int) ([]*models.QuoteRequest, error) {
	limit, offset = clampPage(limit, offset)
	query := `
		SELECT id, name, email, phone, address, service_type, property_type, message, status, created_at
		FROM quote_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := []*models.QuoteRequest{}
	for rows.Next() {
		q := &models.QuoteRequest{}
		if err := rows.Scan(&q.ID, &q.Name, &q.Email, &q.Phone, &q.Address, &q.ServiceType, &q.PropertyType, &q.Message, &q.Status, &q.CreatedAt); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}
