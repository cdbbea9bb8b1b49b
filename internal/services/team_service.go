package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const photoURLExpiry = time.Hour

type TeamMemberRequest struct {
	Name            string   `json:"name" yaml:"name" validate:"required,min=2,max=100"`
	Role            string   `json:"role" yaml:"role" validate:"required,max=100"`
	Department      string   `json:"department" yaml:"department"`
	Bio             string   `json:"bio" yaml:"bio"`
	ShortBio        string   `json:"shortBio" yaml:"short_bio" validate:"max=280"`
	PhotoURL        string   `json:"photoUrl" yaml:"photo_url" validate:"max=500"`
	YearsExperience int      `json:"yearsExperience" yaml:"years_experience" validate:"gte=0"`
	Certifications  []string `json:"certifications" yaml:"certifications"`
	DisplayOrder    int      `json:"displayOrder" yaml:"display_order"`
	IsActive        *bool    `json:"isActive" yaml:"is_active"`
}

type TeamService interface {
	List(ctx context.Context, activeOnly bool) ([]*models.TeamMember, error)
	Get(ctx context.Context, id uuid.UUID) (*models.TeamMember, error)
	Create(ctx context.Context, req TeamMemberRequest) (*models.TeamMember, error)
	Update(ctx context.Context, id uuid.UUID, req TeamMemberRequest) (*models.TeamMember, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadPhoto(ctx context.Context, id uuid.UUID, reader io.Reader, size int64, contentType string) (*models.TeamMember, error)
	PhotoURL(ctx context.Context, id uuid.UUID) (string, error)
}

type teamService struct {
	teamRepo repositories.TeamMemberRepository
	cacheSvc caching.CacheService
	storage  MinioService
	logger   zerolog.Logger
}

func NewTeamService(teamRepo repositories.TeamMemberRepository, cacheSvc caching.CacheService, storage MinioService, logger zerolog.Logger) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		cacheSvc: cacheSvc,
		storage:  storage,
		logger:   logger.With().Str("service", "team").Logger(),
	}
}

func photoObjectName(id uuid.UUID) string {
	return "team/" + id.String() + "/photo"
}

func (s *teamService) List(ctx context.Context, activeOnly bool) ([]*models.TeamMember, error) {
	variant := "all"
	if activeOnly {
		variant = "active"
	}
	return cachedList(ctx, s.cacheSvc, s.logger, caching.ResourceTeam, variant, func() ([]*models.TeamMember, error) {
		members, err := s.teamRepo.List(ctx, activeOnly)
		if err != nil {
			return nil, repoError("list team", err)
		}
		return members, nil
	})
}

func (s *teamService) Get(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	m, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("get team member", err)
	}
	return m, nil
}

func applyTeamRequest(m *models.TeamMember, req TeamMemberRequest) {
	m.Name = strings.TrimSpace(req.Name)
	m.Role = strings.TrimSpace(req.Role)
	m.Department = strings.TrimSpace(req.Department)
	m.Bio = req.Bio
	m.ShortBio = req.ShortBio
	if req.PhotoURL != "" {
		m.PhotoURL = req.PhotoURL
	}
	m.YearsExperience = req.YearsExperience
	m.Certifications = req.Certifications
	if m.Certifications == nil {
		m.Certifications = []string{}
	}
	m.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
}

func (s *teamService) Create(ctx context.Context, req TeamMemberRequest) (*models.TeamMember, error) {
	m := &models.TeamMember{ID: uuid.New(), IsActive: true}
	applyTeamRequest(m, req)
	if err := s.teamRepo.Create(ctx, m); err != nil {
		return nil, repoError("create team member", err)
	}
	s.invalidate(ctx)
	return m, nil
}

func (s *teamService) Update(ctx context.Context, id uuid.UUID, req TeamMemberRequest) (*models.TeamMember, error) {
	m, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("get team member", err)
	}
	applyTeamRequest(m, req)
	if err := s.teamRepo.Update(ctx, m); err != nil {
		return nil, repoError("update team member", err)
	}
	s.invalidate(ctx)
	return m, nil
}

func (s *teamService) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return repoError("get team member", err)
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return repoError("delete team member", err)
	}
	if m.PhotoURL == teamPhotoPath(id) {
		if err := s.storage.Delete(ctx, photoObjectName(id)); err != nil {
			s.logger.Warn().Err(err).Str("member_id", id.String()).Msg("failed to delete photo")
		}
	}
	s.invalidate(ctx)
	return nil
}

// teamPhotoPath is the public URL that redirects to the stored photo.
func teamPhotoPath(id uuid.UUID) string {
	return "/api/team/" + id.String() + "/photo"
}

func (s *teamService) UploadPhoto(ctx context.Context, id uuid.UUID, reader io.Reader, size int64, contentType string) (*models.TeamMember, error) {
	m, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("get team member", err)
	}
	if err := s.storage.Upload(ctx, photoObjectName(id), reader, size, contentType); err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}
	m.PhotoURL = teamPhotoPath(id)
	if err := s.teamRepo.Update(ctx, m); err != nil {
		return nil, repoError("update team member", err)
	}
	s.invalidate(ctx)
	return m, nil
}

func (s *teamService) PhotoURL(ctx context.Context, id uuid.UUID) (string, error) {
	m, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return "", repoError("get team member", err)
	}
	if m.PhotoURL != teamPhotoPath(id) {
		if m.PhotoURL == "" {
			return "", fmt.Errorf("team member %s has no photo: %w", id, ErrNotFound)
		}
		return m.PhotoURL, nil
	}
	url, err := s.storage.GetPresignedURL(ctx, photoObjectName(id), photoURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign photo: %w", err)
	}
	return url, nil
}

func (s *teamService) invalidate(ctx context.Context) {
	if err := s.cacheSvc.Invalidate(ctx, caching.ResourceTeam); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate team cache")
	}
}
