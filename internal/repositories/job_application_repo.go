package repositories

import (
	"context"

	"afterhourshvac/internal/models"

	"github.com/google/uuid"
)

type JobApplicationRepository interface {
	Create(ctx context.Context, app *models.JobApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, status *models.ApplicationStatus, limit, offset int) ([]*models.JobApplication, error)
}

type jobApplicationRepo struct {
	db Database
}

func NewJobApplicationRepo(db Database) JobApplicationRepository {
	return &jobApplicationRepo{db: db}
}

const jobApplicationColumns = `id, first_name, last_name, email, phone, position, experience_years, cover_letter, resume_key, status, created_at, updated_at`

func scanJobApplication(row interface{ Scan(dest ...any) error }) (*models.JobApplication, error) {
	a := &models.JobApplication{}
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.Position, &a.ExperienceYears,
		&a.CoverLetter, &a.ResumeKey, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.HasResume = a.ResumeKey != nil && *a.ResumeKey != ""
	return a, nil
}

func (r *jobApplicationRepo) Create(ctx context.Context, a *models.JobApplication) error {
	query := `
		INSERT INTO job_applications (id, first_name, last_name, email, phone, position, experience_years, cover_letter, resume_key, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, a.ID, a.FirstName, a.LastName, a.Email, a.Phone, a.Position, a.ExperienceYears,
		a.CoverLetter, a.ResumeKey, a.Status).Scan(&a.CreatedAt, &a.UpdatedAt)
	return mapError(err)
}

func (r *jobApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	query := `SELECT ` + jobApplicationColumns + ` FROM job_applications WHERE id = $1`
	a, err := scanJobApplication(r.db.QueryRow(ctx, query, id))
	return a, mapError(err)
}

func (r *jobApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	query := `UPDATE job_applications SET status = $1, updated_at = NOW() WHERE id = $2`
	return requireAffected(r.db.Exec(ctx, query, status, id))
}

func (r *jobApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM job_applications WHERE id = $1`
	return requireAffected(r.db.Exec(ctx, query, id))
}

func (r *jobApplicationRepo) List(ctx context.Context, status *models.ApplicationStatus, limit, offset int) ([]*models.JobApplication, error) {
	limit, offset = clampPage(limit, offset)
	query := `
		SELECT ` + jobApplicationColumns + `
		FROM job_applications
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var s *string
	if status != nil {
		v := string(*status)
		s = &v
	}
	rows, err := r.db.Query(ctx, query, s, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []*models.JobApplication{}
	for rows.Next() {
		a, err := scanJobApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
