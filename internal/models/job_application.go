package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationReviewing ApplicationStatus = "reviewing"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationHired     ApplicationStatus = "hired"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewing, ApplicationApproved, ApplicationRejected, ApplicationHired:
		return true
	}
	return false
}

type JobApplication struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	FirstName       string            `json:"firstName" db:"first_name"`
	LastName        string            `json:"lastName" db:"last_name"`
	Email           string            `json:"email" db:"email"`
	Phone           string            `json:"phone" db:"phone"`
	Position        string            `json:"position" db:"position"`
	ExperienceYears int               `json:"experienceYears" db:"experience_years"`
	CoverLetter     string            `json:"coverLetter" db:"cover_letter"`
	ResumeKey       *string           `json:"-" db:"resume_key"`
	HasResume       bool              `json:"hasResume" db:"-"`
	Status          ApplicationStatus `json:"status" db:"status"`
	CreatedAt       time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time         `json:"updatedAt" db:"updated_at"`
}
