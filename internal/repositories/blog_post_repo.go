package repositories

import (
	"context"

	"afterhourshvac/internal/models"

	"github.com/google/uuid"
)

type BlogPostRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.BlogPost, error)
}

type blogPostRepo struct {
	db Database
}

func NewBlogPostRepo(db Database) BlogPostRepository {
	return &blogPostRepo{db: db}
}

const blogPostColumns = `id, title, slug, excerpt, content, tags, published, author_id, created_at, updated_at`

func scanBlogPost(row interface{ Scan(dest ...any) error }) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Tags, &p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *blogPostRepo) Create(ctx context.Context, p *models.BlogPost) error {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	query := `
		INSERT INTO blog_posts (id, title, slug, excerpt, content, tags, published, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.Tags, p.Published, p.AuthorID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapError(err)
}

func (r *blogPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE id = $1`
	p, err := scanBlogPost(r.db.QueryRow(ctx, query, id))
	return p, mapError(err)
}

func (r *blogPostRepo) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE slug = $1`
	p, err := scanBlogPost(r.db.QueryRow(ctx, query, slug))
	return p, mapError(err)
}

func (r *blogPostRepo) Update(ctx context.Context, p *models.BlogPost) error {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	query := `
		UPDATE blog_posts
		SET title = $1, slug = $2, excerpt = $3, content = $4, tags = $5, published = $6, updated_at = NOW()
		WHERE id = $7
	`
	return requireAffected(r.db.Exec(ctx, query, p.Title, p.Slug, p.Excerpt, p.Content, p.Tags, p.Published, p.ID))
}

func (r *blogPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM blog_posts WHERE id = $1`
	return requireAffected(r.db.Exec(ctx, query, id))
}

func (r *blogPostRepo) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.BlogPost, error) {
	limit, offset = clampPage(limit, offset)
	query := `
		SELECT ` + blogPostColumns + `
		FROM blog_posts
		WHERE ($1 = FALSE OR published = TRUE)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, publishedOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*models.BlogPost{}
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
