package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/common"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	resumeURLExpiry = 15 * time.Minute
	MaxResumeBytes  = 5 << 20
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type ApplicationRequest struct {
	FirstName       string `json:"firstName" form:"firstName" validate:"required,min=2,max=100"`
	LastName        string `json:"lastName" form:"lastName" validate:"required,min=2,max=100"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Phone           string `json:"phone" form:"phone" validate:"required,phone"`
	Position        string `json:"position" form:"position" validate:"required,max=100"`
	ExperienceYears int    `json:"experienceYears" form:"experienceYears" validate:"gte=0,lte=60"`
	CoverLetter     string `json:"coverLetter" form:"coverLetter" validate:"max=5000"`
}

// Upload is a file received with a multipart form. The client's
// Content-Type is not trusted; the stored type follows the extension.
type Upload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// resumeTypes are the accepted resume extensions and the type they are
// stored with.
var resumeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".rtf":  "application/rtf",
	".txt":  "text/plain",
}

func resumeContentType(filename string) (string, bool) {
	ct, ok := resumeTypes[strings.ToLower(path.Ext(filename))]
	return ct, ok
}

type ApplicationService interface {
	Submit(ctx context.Context, req ApplicationRequest, resume *Upload) (*models.JobApplication, error)
	Get(ctx context.Context, id uuid.UUID) (*models.JobApplication, error)
	List(ctx context.Context, status *models.ApplicationStatus, limit, offset int) ([]*models.JobApplication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	ResumeURL(ctx context.Context, id uuid.UUID) (string, error)
}

type applicationService struct {
	appRepo  repositories.JobApplicationRepository
	cacheSvc caching.CacheService
	storage  MinioService
	notifier NotificationService
	logger   zerolog.Logger
}

func NewApplicationService(
	appRepo repositories.JobApplicationRepository,
	cacheSvc caching.CacheService,
	storage MinioService,
	notifier NotificationService,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationService{
		appRepo:  appRepo,
		cacheSvc: cacheSvc,
		storage:  storage,
		notifier: notifier,
		logger:   logger.With().Str("service", "applications").Logger(),
	}
}

func resumeObjectName(id uuid.UUID, filename string) string {
	name := unsafeFileChars.ReplaceAllString(path.Base(filename), "_")
	if name == "" || name == "." || name == "_" {
		name = "resume"
	}
	return "resumes/" + id.String() + "/" + name
}

func (s *applicationService) Submit(ctx context.Context, req ApplicationRequest, resume *Upload) (*models.JobApplication, error) {
	app := &models.JobApplication{
		ID:              uuid.New(),
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           strings.TrimSpace(req.Phone),
		Position:        strings.TrimSpace(req.Position),
		ExperienceYears: req.ExperienceYears,
		CoverLetter:     strings.TrimSpace(req.CoverLetter),
		Status:          models.ApplicationPending,
	}

	if resume != nil {
		if resume.Size > MaxResumeBytes {
			return nil, common.NewValidationError("resume", "must be 5 MB or smaller")
		}
		contentType, ok := resumeContentType(resume.Filename)
		if !ok {
			return nil, common.NewValidationError("resume", "must be a PDF, Word, RTF or text file")
		}
		key := resumeObjectName(app.ID, resume.Filename)
		if err := s.storage.Upload(ctx, key, resume.Reader, resume.Size, contentType); err != nil {
			return nil, fmt.Errorf("upload resume: %w", err)
		}
		app.ResumeKey = &key
		app.HasResume = true
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		if app.ResumeKey != nil {
			if delErr := s.storage.Delete(ctx, *app.ResumeKey); delErr != nil {
				s.logger.Warn().Err(delErr).Str("key", *app.ResumeKey).Msg("failed to remove orphaned resume")
			}
		}
		return nil, repoError("create application", err)
	}

	s.invalidate(ctx)
	s.notifier.ApplicationSubmitted(ctx, app)
	return app, nil
}

func (s *applicationService) Get(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("get application", err)
	}
	return app, nil
}

func (s *applicationService) List(ctx context.Context, status *models.ApplicationStatus, limit, offset int) ([]*models.JobApplication, error) {
	if status != nil && !status.Valid() {
		return nil, common.NewValidationError("status", "must be one of: pending reviewing approved rejected hired")
	}
	apps, err := s.appRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, repoError("list applications", err)
	}
	return apps, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	if !status.Valid() {
		return common.NewValidationError("status", "must be one of: pending reviewing approved rejected hired")
	}
	if err := s.appRepo.UpdateStatus(ctx, id, status); err != nil {
		return repoError("update application status", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *applicationService) Delete(ctx context.Context, id uuid.UUID) error {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return repoError("get application", err)
	}
	if err := s.appRepo.Delete(ctx, id); err != nil {
		return repoError("delete application", err)
	}
	if app.ResumeKey != nil {
		if err := s.storage.Delete(ctx, *app.ResumeKey); err != nil {
			s.logger.Warn().Err(err).Str("key", *app.ResumeKey).Msg("failed to delete resume")
		}
	}
	s.invalidate(ctx)
	return nil
}

func (s *applicationService) ResumeURL(ctx context.Context, id uuid.UUID) (string, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return "", repoError("get application", err)
	}
	if app.ResumeKey == nil {
		return "", fmt.Errorf("application %s has no resume: %w", id, ErrNotFound)
	}
	url, err := s.storage.GetDownloadURL(ctx, *app.ResumeKey, resumeURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign resume: %w", err)
	}
	return url, nil
}

func (s *applicationService) invalidate(ctx context.Context) {
	if err := s.cacheSvc.Invalidate(ctx, caching.ResourceApplications); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate application cache")
	}
}
