package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/config"
	"afterhourshvac/internal/metrics"
	"afterhourshvac/internal/models"

	"github.com/rs/zerolog"
)

// CheckoutFailedMessage is the only failure text a visitor sees when a
// checkout cannot be started.
const CheckoutFailedMessage = "Unable to start checkout. Please try again or call us."

var (
	dollarAmount = regexp.MustCompile(`\$\s*(\d[\d,]*(?:\.\d+)?)`)
	bareAmount   = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
)

// ParsePrice extracts a numeric price from a display string such as
// "Starting at $6,499". A "$"-prefixed amount wins over a bare number; no
// digits at all yields 0.
func ParsePrice(display string) float64 {
	var raw string
	if m := dollarAmount.FindStringSubmatch(display); m != nil {
		raw = m[1]
	} else if m := bareAmount.FindString(display); m != "" {
		raw = m
	}
	if raw == "" {
		return 0
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0
	}
	return price
}

// BookingForm is what the booking modal collects.
type BookingForm struct {
	Name    string `json:"name" form:"name" validate:"required,min=2"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Phone   string `json:"phone" form:"phone" validate:"required,phone"`
	Address string `json:"address" form:"address"`
	Notes   string `json:"notes" form:"notes"`
}

// Validator matches echo.Validator.
type Validator interface {
	Validate(i any) error
}

type ReturnState string

const (
	ReturnLoading ReturnState = "loading"
	ReturnSuccess ReturnState = "success"
	ReturnError   ReturnState = "error"
)

// ReturnResult is what the payment-return page shows.
type ReturnResult struct {
	State        ReturnState     `json:"state"`
	Booking      *models.Booking `json:"booking,omitempty"`
	Message      string          `json:"message,omitempty"`
	ContactPhone string          `json:"contactPhone,omitempty"`
	ContactEmail string          `json:"contactEmail,omitempty"`
}

type CheckoutService interface {
	// CreateSession starts a hosted checkout for an explicit price.
	CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	// BeginCheckout validates the modal form, stashes it for the visitor and
	// starts a hosted checkout for the catalogue service.
	BeginCheckout(ctx context.Context, visitorID string, form BookingForm, service models.Service) (*CheckoutSession, error)
	// CompleteCheckout turns the stash into a paid booking.
	CompleteCheckout(ctx context.Context, visitorID, sessionID string) *ReturnResult
}

type checkoutService struct {
	gateway    PaymentGateway
	cacheSvc   caching.CacheService
	bookingSvc BookingService
	validator  Validator
	business   config.BusinessConfig
	logger     zerolog.Logger
}

func NewCheckoutService(
	gateway PaymentGateway,
	cacheSvc caching.CacheService,
	bookingSvc BookingService,
	validator Validator,
	business config.BusinessConfig,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		gateway:    gateway,
		cacheSvc:   cacheSvc,
		bookingSvc: bookingSvc,
		validator:  validator,
		business:   business,
		logger:     logger.With().Str("service", "checkout").Logger(),
	}
}

func (s *checkoutService) CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	sess, err := s.gateway.CreateCheckoutSession(ctx, req)
	if err != nil {
		metrics.IncCheckout("failed")
		s.logger.Error().Err(err).Str("service", req.ServiceName).Msg("checkout session failed")
		return nil, fmt.Errorf("%w: %v", ErrCheckoutUnavailable, err)
	}
	metrics.IncCheckout("started")
	return sess, nil
}

func (s *checkoutService) BeginCheckout(ctx context.Context, visitorID string, form BookingForm, service models.Service) (*CheckoutSession, error) {
	if err := s.validator.Validate(&form); err != nil {
		return nil, err
	}
	if visitorID == "" {
		return nil, fmt.Errorf("%w: missing visitor id", ErrCheckoutUnavailable)
	}

	price := ParsePrice(service.DisplayPrice)
	pending := &models.PendingBooking{
		Name:               strings.TrimSpace(form.Name),
		Email:              strings.TrimSpace(form.Email),
		Phone:              strings.TrimSpace(form.Phone),
		Address:            strings.TrimSpace(form.Address),
		Notes:              strings.TrimSpace(form.Notes),
		ServiceName:        service.Name,
		ServicePrice:       price,
		ServiceDescription: service.Description,
		ServiceCategory:    service.Category,
	}
	if err := s.cacheSvc.StashPendingBooking(ctx, visitorID, pending); err != nil {
		metrics.IncCheckout("failed")
		s.logger.Error().Err(err).Msg("failed to stash pending booking")
		return nil, fmt.Errorf("%w: %v", ErrCheckoutUnavailable, err)
	}

	return s.CreateSession(ctx, CheckoutRequest{
		Price:         price,
		ServiceName:   service.Name,
		Description:   service.Description,
		Category:      service.Category,
		CustomerEmail: pending.Email,
	})
}

func (s *checkoutService) CompleteCheckout(ctx context.Context, visitorID, sessionID string) *ReturnResult {
	result := &ReturnResult{State: ReturnLoading}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return s.fail(result, "We could not find your payment session.")
	}

	pending, err := s.cacheSvc.LoadPendingBooking(ctx, visitorID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load pending booking")
		return s.fail(result, "We could not load your booking details.")
	}
	if pending.Empty() {
		return s.fail(result, "We could not find your booking details.")
	}

	booking, err := s.bookingSvc.Create(ctx, CreateBookingRequest{
		CustomerName:       pending.Name,
		CustomerEmail:      pending.Email,
		CustomerPhone:      pending.Phone,
		CustomerAddress:    pending.Address,
		Notes:              pending.Notes,
		ServiceName:        pending.ServiceName,
		ServicePrice:       pending.ServicePrice,
		ServiceDescription: pending.ServiceDescription,
		ServiceCategory:    pending.ServiceCategory,
		PaymentStatus:      string(models.PaymentPaid),
		StripeSessionID:    &sessionID,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("booking after payment failed")
		if errors.Is(err, ErrConflict) {
			return s.fail(result, "This payment has already been recorded.")
		}
		return s.fail(result, "Your payment went through but we could not save your booking.")
	}

	if err := s.cacheSvc.ClearPendingBooking(ctx, visitorID); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear pending booking")
	}
	result.State = ReturnSuccess
	result.Booking = booking
	return result
}

func (s *checkoutService) fail(result *ReturnResult, message string) *ReturnResult {
	result.State = ReturnError
	result.Message = message
	result.ContactPhone = s.business.Phone
	result.ContactEmail = s.business.Email
	return result
}
