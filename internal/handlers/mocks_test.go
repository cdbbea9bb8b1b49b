package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"afterhourshvac/internal/common"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Validator = common.NewRequestValidator()
	e.HTTPErrorHandler = common.HTTPErrorHandler(zerolog.Nop())
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	e.Renderer = renderer
	return e
}

// serve runs one request through e.
func serve(e *echo.Echo, method, target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func serveJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	return serve(e, method, target, echo.MIMEApplicationJSON, strings.NewReader(body))
}

// withUser pretends the session middleware already ran.
func withUser(user *models.SessionUser, sessionID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(common.SessionUserKey, user)
			c.Set(common.SessionIDKey, sessionID)
			return next(c)
		}
	}
}

func withVisitor(id string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(common.VisitorIDKey, id)
			return next(c)
		}
	}
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req services.RegisterRequest) (*models.User, *services.Session, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*services.Session), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, req services.LoginRequest) (*models.User, *services.Session, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*services.Session), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockAuthService) StartSession(ctx context.Context, user *models.User) (*services.Session, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

func (m *MockAuthService) ResolveSession(ctx context.Context, sessionID string) (*models.SessionUser, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionUser), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, req services.CreateBookingRequest) (*models.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) List(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingService) ListAll(ctx context.Context) ([]*models.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingService) Update(ctx context.Context, id uuid.UUID, upd models.BookingUpdate) (*models.Booking, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingService) ApplyPaymentEvent(ctx context.Context, event *services.PaymentEvent) error {
	return m.Called(ctx, event).Error(0)
}

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) CreateSession(ctx context.Context, req services.CheckoutRequest) (*services.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutService) BeginCheckout(ctx context.Context, visitorID string, form services.BookingForm, service models.Service) (*services.CheckoutSession, error) {
	args := m.Called(ctx, visitorID, form, service)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutService) CompleteCheckout(ctx context.Context, visitorID, sessionID string) *services.ReturnResult {
	return m.Called(ctx, visitorID, sessionID).Get(0).(*services.ReturnResult)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, req services.CheckoutRequest) (*services.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CheckoutSession), args.Error(1)
}

func (m *MockPaymentGateway) SessionPaymentStatus(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) ParseWebhook(ctx context.Context, payload []byte, signature string) (*services.PaymentEvent, error) {
	args := m.Called(ctx, payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PaymentEvent), args.Error(1)
}

type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) ListPublished(ctx context.Context, limit, offset int) ([]*models.BlogPost, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.BlogPost), args.Error(1)
}

func (m *MockBlogService) ListAll(ctx context.Context, limit, offset int) ([]*models.BlogPost, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.BlogPost), args.Error(1)
}

func (m *MockBlogService) GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *MockBlogService) Create(ctx context.Context, authorID *uuid.UUID, req services.CreatePostRequest) (*models.BlogPost, error) {
	args := m.Called(ctx, authorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *MockBlogService) Update(ctx context.Context, id uuid.UUID, req services.UpdatePostRequest) (*models.BlogPost, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *MockBlogService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) List(ctx context.Context, activeOnly bool) ([]*models.TeamMember, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]*models.TeamMember), args.Error(1)
}

func (m *MockTeamService) Get(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMember), args.Error(1)
}

func (m *MockTeamService) Create(ctx context.Context, req services.TeamMemberRequest) (*models.TeamMember, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMember), args.Error(1)
}

func (m *MockTeamService) Update(ctx context.Context, id uuid.UUID, req services.TeamMemberRequest) (*models.TeamMember, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMember), args.Error(1)
}

func (m *MockTeamService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTeamService) UploadPhoto(ctx context.Context, id uuid.UUID, reader io.Reader, size int64, contentType string) (*models.TeamMember, error) {
	args := m.Called(ctx, id, reader, size, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMember), args.Error(1)
}

func (m *MockTeamService) PhotoURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Submit(ctx context.Context, req services.ApplicationRequest, resume *services.Upload) (*models.JobApplication, error) {
	args := m.Called(ctx, req, resume)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobApplication), args.Error(1)
}

func (m *MockApplicationService) Get(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobApplication), args.Error(1)
}

func (m *MockApplicationService) List(ctx context.Context, status *models.ApplicationStatus, limit, offset int) ([]*models.JobApplication, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]*models.JobApplication), args.Error(1)
}

func (m *MockApplicationService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockApplicationService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockApplicationService) ResumeURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Submit(ctx context.Context, in services.QuoteRequestInput) (*models.QuoteRequest, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuoteRequest), args.Error(1)
}

func (m *MockQuoteService) List(ctx context.Context, limit, offset int) ([]*models.QuoteRequest, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.QuoteRequest), args.Error(1)
}

func (m *MockQuoteService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.QuoteStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
