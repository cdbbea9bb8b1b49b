package repositories

import (
	"context"

	"afterhourshvac/internal/models"

	"github.com/google/uuid"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetByStripeSessionID(ctx context.Context, sessionID string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	UpdatePaymentStatusBySession(ctx context.Context, sessionID string, status models.PaymentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error)
	ListAll(ctx context.Context) ([]*models.Booking, error)
}

type bookingRepo struct {
	db Database
}

func NewBookingRepo(db Database) BookingRepository {
	return &bookingRepo{db: db}
}

const bookingColumns = `id, customer_name, customer_email, customer_phone, customer_address, notes,
	service_name, service_price, service_description, service_category,
	status, payment_status, stripe_session_id, created_at, updated_at`

func scanBooking(row interface{ Scan(dest ...any) error }) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(&b.ID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.CustomerAddress, &b.Notes,
		&b.ServiceName, &b.ServicePrice, &b.ServiceDescription, &b.ServiceCategory,
		&b.Status, &b.PaymentStatus, &b.StripeSessionID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepo) Create(ctx context.Context, b *models.Booking) error {
	query := `
		INSERT INTO bookings (id, customer_name, customer_email, customer_phone, customer_address, notes,
			service_name, service_price, service_description, service_category,
			status, payment_status, stripe_session_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, b.ID, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.CustomerAddress, b.Notes,
		b.ServiceName, b.ServicePrice, b.ServiceDescription, b.ServiceCategory,
		b.Status, b.PaymentStatus, b.StripeSessionID).Scan(&b.CreatedAt, &b.UpdatedAt)
	return mapError(err)
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRow(ctx, query, id))
	return b, mapError(err)
}

func (r *bookingRepo) GetByStripeSessionID(ctx context.Context, sessionID string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE stripe_session_id = $1`
	b, err := scanBooking(r.db.QueryRow(ctx, query, sessionID))
	return b, mapError(err)
}

func (r *bookingRepo) Update(ctx context.Context, b *models.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, payment_status = $2, notes = $3, updated_at = NOW()
		WHERE id = $4
	`
	return requireAffected(r.db.Exec(ctx, query, b.Status, b.PaymentStatus, b.Notes, b.ID))
}

func (r *bookingRepo) UpdatePaymentStatusBySession(ctx context.Context, sessionID string, status models.PaymentStatus) error {
	query := `UPDATE bookings SET payment_status = $1, updated_at = NOW() WHERE stripe_session_id = $2`
	return requireAffected(r.db.Exec(ctx, query, status, sessionID))
}

func (r *bookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`
	return requireAffected(r.db.Exec(ctx, query, id))
}

func (r *bookingRepo) List(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	limit, offset := clampPage(filter.Limit, filter.Offset)
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}
	return r.query(ctx, query, status, limit, offset)
}

func (r *bookingRepo) ListAll(ctx context.Context) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	return r.query(ctx, query)
}

func (r *bookingRepo) query(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []*models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
