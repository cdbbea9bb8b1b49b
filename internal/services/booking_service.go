package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/common"
	"afterhourshvac/internal/metrics"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type CreateBookingRequest struct {
	CustomerName       string  `json:"customerName" validate:"required,min=2"`
	CustomerEmail      string  `json:"customerEmail" validate:"required,email"`
	CustomerPhone      string  `json:"customerPhone" validate:"required,phone"`
	CustomerAddress    string  `json:"customerAddress"`
	Notes              string  `json:"notes"`
	ServiceName        string  `json:"serviceName" validate:"required"`
	ServicePrice       float64 `json:"servicePrice" validate:"gte=0"`
	ServiceDescription string  `json:"serviceDescription"`
	ServiceCategory    string  `json:"serviceCategory"`
	PaymentStatus      string  `json:"paymentStatus" validate:"omitempty,oneof=pending paid refunded failed"`
	StripeSessionID    *string `json:"stripeSessionId"`
}

type BookingService interface {
	Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	List(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error)
	ListAll(ctx context.Context) ([]*models.Booking, error)
	Update(ctx context.Context, id uuid.UUID, upd models.BookingUpdate) (*models.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ApplyPaymentEvent(ctx context.Context, event *PaymentEvent) error
}

type bookingService struct {
	bookingRepo repositories.BookingRepository
	cacheSvc    caching.CacheService
	gateway     PaymentGateway
	notifier    NotificationService
	verify      bool
	logger      zerolog.Logger
}

// NewBookingService builds the service. When verify is set, bookings that
// claim to be paid are checked against the gateway before they are stored.
func NewBookingService(
	bookingRepo repositories.BookingRepository,
	cacheSvc caching.CacheService,
	gateway PaymentGateway,
	notifier NotificationService,
	verify bool,
	logger zerolog.Logger,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		cacheSvc:    cacheSvc,
		gateway:     gateway,
		notifier:    notifier,
		verify:      verify,
		logger:      logger.With().Str("service", "booking").Logger(),
	}
}

func (s *bookingService) Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	payment := models.PaymentStatus(req.PaymentStatus)
	if payment == "" {
		payment = models.PaymentPending
	}

	var sessionID *string
	if req.StripeSessionID != nil && strings.TrimSpace(*req.StripeSessionID) != "" {
		id := strings.TrimSpace(*req.StripeSessionID)
		sessionID = &id
	}

	if s.verify && payment == models.PaymentPaid {
		if err := s.confirmPaid(ctx, sessionID); err != nil {
			return nil, err
		}
	}

	booking := &models.Booking{
		ID:                 uuid.New(),
		CustomerName:       strings.TrimSpace(req.CustomerName),
		CustomerEmail:      strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerPhone:      strings.TrimSpace(req.CustomerPhone),
		CustomerAddress:    strings.TrimSpace(req.CustomerAddress),
		Notes:              strings.TrimSpace(req.Notes),
		ServiceName:        req.ServiceName,
		ServicePrice:       req.ServicePrice,
		ServiceDescription: req.ServiceDescription,
		ServiceCategory:    req.ServiceCategory,
		Status:             models.BookingPending,
		PaymentStatus:      payment,
		StripeSessionID:    sessionID,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, repoError("create booking", err)
	}

	metrics.IncBookingCreated(string(booking.PaymentStatus))
	s.logger.Info().
		Str("booking_id", booking.ID.String()).
		Str("service", booking.ServiceName).
		Str("payment_status", string(booking.PaymentStatus)).
		Msg("booking created")

	s.invalidate(ctx)
	s.notifier.BookingCreated(ctx, booking)
	return booking, nil
}

func (s *bookingService) confirmPaid(ctx context.Context, sessionID *string) error {
	if sessionID == nil {
		return fmt.Errorf("missing checkout session: %w", ErrPaymentNotConfirmed)
	}
	status, err := s.gateway.SessionPaymentStatus(ctx, *sessionID)
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", *sessionID).Msg("payment verification failed")
		return fmt.Errorf("verify session: %w", ErrPaymentNotConfirmed)
	}
	if status != string(models.PaymentPaid) {
		return fmt.Errorf("session %s is %q: %w", *sessionID, status, ErrPaymentNotConfirmed)
	}
	return nil
}

func (s *bookingService) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("get booking", err)
	}
	return b, nil
}

func (s *bookingService) List(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, common.NewValidationError("status", "must be one of: pending confirmed scheduled completed cancelled")
	}

	variant := fmt.Sprintf("%s:%d:%d", statusVariant(filter.Status), filter.Limit, filter.Offset)
	return cachedList(ctx, s.cacheSvc, s.logger, caching.ResourceBookings, variant, func() ([]*models.Booking, error) {
		bookings, err := s.bookingRepo.List(ctx, filter)
		if err != nil {
			return nil, repoError("list bookings", err)
		}
		return bookings, nil
	})
}

func (s *bookingService) ListAll(ctx context.Context) ([]*models.Booking, error) {
	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		return nil, repoError("list bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) Update(ctx context.Context, id uuid.UUID, upd models.BookingUpdate) (*models.Booking, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, common.NewValidationError("status", "must be one of: pending confirmed scheduled completed cancelled")
	}
	if upd.PaymentStatus != nil && !upd.PaymentStatus.Valid() {
		return nil, common.NewValidationError("paymentStatus", "must be one of: pending paid refunded failed")
	}

	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("get booking", err)
	}
	if upd.Status != nil {
		b.Status = *upd.Status
	}
	if upd.PaymentStatus != nil {
		b.PaymentStatus = *upd.PaymentStatus
	}
	if upd.Notes != nil {
		b.Notes = strings.TrimSpace(*upd.Notes)
	}
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, repoError("update booking", err)
	}
	s.invalidate(ctx)
	return b, nil
}

func (s *bookingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return repoError("delete booking", err)
	}
	s.invalidate(ctx)
	return nil
}

// ApplyPaymentEvent moves the payment status of the booking tied to a
// checkout session. Events for sessions without a booking are ignored.
func (s *bookingService) ApplyPaymentEvent(ctx context.Context, event *PaymentEvent) error {
	if event == nil || event.SessionID == "" {
		return nil
	}

	var status models.PaymentStatus
	switch event.Type {
	case EventCheckoutCompleted, EventCheckoutAsyncPaymentOK:
		if event.Status != string(models.PaymentPaid) {
			return nil
		}
		status = models.PaymentPaid
	case EventCheckoutAsyncPaymentFailed:
		status = models.PaymentFailed
	case EventChargeRefunded:
		status = models.PaymentRefunded
	default:
		return nil
	}

	if err := s.bookingRepo.UpdatePaymentStatusBySession(ctx, event.SessionID, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Info().Str("session_id", event.SessionID).Str("event", event.Type).Msg("no booking for session")
			return nil
		}
		return repoError("update payment status", err)
	}
	s.logger.Info().Str("session_id", event.SessionID).Str("payment_status", string(status)).Msg("payment status updated")
	s.invalidate(ctx)
	return nil
}

func (s *bookingService) invalidate(ctx context.Context) {
	if err := s.cacheSvc.Invalidate(ctx, caching.ResourceBookings); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate bookings cache")
	}
}

func statusVariant(status *models.BookingStatus) string {
	if status == nil {
		return "all"
	}
	return string(*status)
}
