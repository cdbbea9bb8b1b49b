package services

import (
	"context"
	"fmt"
	"strings"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/common"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type CreatePostRequest struct {
	Title     string   `json:"title" yaml:"title" validate:"required,max=200"`
	Excerpt   string   `json:"excerpt" yaml:"excerpt" validate:"max=500"`
	Content   string   `json:"content" yaml:"content" validate:"required"`
	Tags      []string `json:"tags" yaml:"tags"`
	Published bool     `json:"published" yaml:"published"`
}

type UpdatePostRequest struct {
	Title     *string  `json:"title" validate:"omitempty,max=200"`
	Excerpt   *string  `json:"excerpt" validate:"omitempty,max=500"`
	Content   *string  `json:"content"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
}

type BlogService interface {
	ListPublished(ctx context.Context, limit, offset int) ([]*models.BlogPost, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.BlogPost, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	Create(ctx context.Context, authorID *uuid.UUID, req CreatePostRequest) (*models.BlogPost, error)
	Update(ctx context.Context, id uuid.UUID, req UpdatePostRequest) (*models.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type blogService struct {
	postRepo repositories.BlogPostRepository
	cacheSvc caching.CacheService
	logger   zerolog.Logger
}

func NewBlogService(postRepo repositories.BlogPostRepository, cacheSvc caching.CacheService, logger zerolog.Logger) BlogService {
	return &blogService{
		postRepo: postRepo,
		cacheSvc: cacheSvc,
		logger:   logger.With().Str("service", "blog").Logger(),
	}
}

func (s *blogService) list(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.BlogPost, error) {
	scope := "all"
	if publishedOnly {
		scope = "published"
	}
	variant := fmt.Sprintf("%s:%d:%d", scope, limit, offset)

	return cachedList(ctx, s.cacheSvc, s.logger, caching.ResourceBlogPosts, variant, func() ([]*models.BlogPost, error) {
		posts, err := s.postRepo.List(ctx, publishedOnly, limit, offset)
		if err != nil {
			return nil, repoError("list posts", err)
		}
		return posts, nil
	})
}

func (s *blogService) ListPublished(ctx context.Context, limit, offset int) ([]*models.BlogPost, error) {
	return s.list(ctx, true, limit, offset)
}

func (s *blogService) ListAll(ctx context.Context, limit, offset int) ([]*models.BlogPost, error) {
	return s.list(ctx, false, limit, offset)
}

func (s *blogService) GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.postRepo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, repoError("get post", err)
	}
	if !post.Published {
		return nil, fmt.Errorf("post %s is a draft: %w", slug, ErrNotFound)
	}
	return post, nil
}

func (s *blogService) Create(ctx context.Context, authorID *uuid.UUID, req CreatePostRequest) (*models.BlogPost, error) {
	slug := models.Slugify(req.Title)
	if slug == "" {
		return nil, common.NewValidationError("title", "must contain at least one letter or digit")
	}
	post := &models.BlogPost{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(req.Title),
		Slug:      slug,
		Excerpt:   strings.TrimSpace(req.Excerpt),
		Content:   req.Content,
		Tags:      cleanTags(req.Tags),
		Published: req.Published,
		AuthorID:  authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, repoError("create post "+slug, err)
	}
	s.invalidate(ctx)
	return post, nil
}

// Update re-derives the slug whenever the title changes.
func (s *blogService) Update(ctx context.Context, id uuid.UUID, req UpdatePostRequest) (*models.BlogPost, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("get post", err)
	}
	if req.Title != nil {
		slug := models.Slugify(*req.Title)
		if slug == "" {
			return nil, common.NewValidationError("title", "must contain at least one letter or digit")
		}
		post.Title = strings.TrimSpace(*req.Title)
		post.Slug = slug
	}
	if req.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Tags != nil {
		post.Tags = cleanTags(req.Tags)
	}
	if req.Published != nil {
		post.Published = *req.Published
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, repoError("update post", err)
	}
	s.invalidate(ctx)
	return post, nil
}

func (s *blogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return repoError("delete post", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *blogService) invalidate(ctx context.Context) {
	if err := s.cacheSvc.Invalidate(ctx, caching.ResourceBlogPosts); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate post cache")
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
