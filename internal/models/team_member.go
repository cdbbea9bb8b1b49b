package models

import (
	"time"

	"github.com/google/uuid"
)

type TeamMember struct {
	ID              uuid.UUID `json:"id" db:"id" yaml:"-"`
	Name            string    `json:"name" db:"name" yaml:"name"`
	Role            string    `json:"role" db:"role" yaml:"role"`
	Department      string    `json:"department" db:"department" yaml:"department"`
	Bio             string    `json:"bio" db:"bio" yaml:"bio"`
	ShortBio        string    `json:"shortBio" db:"short_bio" yaml:"short_bio"`
	PhotoURL        string    `json:"photoUrl" db:"photo_url" yaml:"photo_url"`
	YearsExperience int       `json:"yearsExperience" db:"years_experience" yaml:"years_experience"`
	Certifications  []string  `json:"certifications" db:"certifications" yaml:"certifications"`
	DisplayOrder    int       `json:"displayOrder" db:"display_order" yaml:"display_order"`
	IsActive        bool      `json:"isActive" db:"is_active" yaml:"is_active"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at" yaml:"-"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at" yaml:"-"`
}
