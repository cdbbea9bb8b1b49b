package services

import (
	"context"
	"strings"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/common"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type QuoteRequestInput struct {
	Name         string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" form:"email" validate:"required,email"`
	Phone        string `json:"phone" form:"phone" validate:"required,phone"`
	Address      string `json:"address" form:"address" validate:"max=300"`
	ServiceType  string `json:"serviceType" form:"serviceType" validate:"required,max=100"`
	PropertyType string `json:"propertyType" form:"propertyType" validate:"omitempty,oneof=residential commercial"`
	Message      string `json:"message" form:"message" validate:"max=2000"`
}

type QuoteService interface {
	Submit(ctx context.Context, in QuoteRequestInput) (*models.QuoteRequest, error)
	List(ctx context.Context, limit, offset int) ([]*models.QuoteRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.QuoteStatus) error
}

type quoteService struct {
	quoteRepo repositories.QuoteRepository
	cacheSvc  caching.CacheService
	notifier  NotificationService
	logger    zerolog.Logger
}

func NewQuoteService(quoteRepo repositories.QuoteRepository, cacheSvc caching.CacheService, notifier NotificationService, logger zerolog.Logger) QuoteService {
	return &quoteService{
		quoteRepo: quoteRepo,
		cacheSvc:  cacheSvc,
		notifier:  notifier,
		logger:    logger.With().Str("service", "quotes").Logger(),
	}
}

func (s *quoteService) Submit(ctx context.Context, in QuoteRequestInput) (*models.QuoteRequest, error) {
	propertyType := in.PropertyType
	if propertyType == "" {
		propertyType = "residential"
	}
	q := &models.QuoteRequest{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		ServiceType:  strings.TrimSpace(in.ServiceType),
		PropertyType: propertyType,
		Message:      strings.TrimSpace(in.Message),
		Status:       models.QuoteNew,
	}
	if err := s.quoteRepo.Create(ctx, q); err != nil {
		return nil, repoError("create quote", err)
	}
	s.invalidate(ctx)
	s.notifier.QuoteRequested(ctx, q)
	return q, nil
}

func (s *quoteService) List(ctx context.Context, limit, offset int) ([]*models.QuoteRequest, error) {
	quotes, err := s.quoteRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, repoError("list quotes", err)
	}
	return quotes, nil
}

func (s *quoteService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.QuoteStatus) error {
	if !status.Valid() {
		return common.NewValidationError("status", "must be one of: new contacted closed")
	}
	if err := s.quoteRepo.UpdateStatus(ctx, id, status); err != nil {
		return repoError("update quote status", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *quoteService) invalidate(ctx context.Context) {
	if err := s.cacheSvc.Invalidate(ctx, caching.ResourceQuotes); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate quote cache")
	}
}
