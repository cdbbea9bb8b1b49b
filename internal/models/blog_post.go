package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BlogPost struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Slug      string     `json:"slug" db:"slug"`
	Excerpt   string     `json:"excerpt" db:"excerpt"`
	Content   string     `json:"content" db:"content"`
	Tags      []string   `json:"tags" db:"tags"`
	Published bool       `json:"published" db:"published"`
	AuthorID  *uuid.UUID `json:"authorId" db:"author_id"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the title, collapses every run of non-alphanumeric
// characters into a single hyphen and trims hyphens from both ends.
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
