package repositories

import (
	"context"

	"afterhourshvac/internal/models"

	"github.com/google/uuid"
)

type TeamMemberRepository interface {
	Create(ctx context.Context, member *models.TeamMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error)
	Update(ctx context.Context, member *models.TeamMember) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]*models.TeamMember, error)
}

type teamMemberRepo struct {
	db Database
}

func NewTeamMemberRepo(db Database) TeamMemberRepository {
	return &teamMemberRepo{db: db}
}

const teamMemberColumns = `id, name, role, department, bio, short_bio, photo_url, years_experience, certifications, display_order, is_active, created_at, updated_at`

func scanTeamMember(row interface{ Scan(dest ...any) error }) (*models.TeamMember, error) {
	m := &models.TeamMember{}
	err := row.Scan(&m.ID, &m.Name, &m.Role, &m.Department, &m.Bio, &m.ShortBio, &m.PhotoURL, &m.YearsExperience,
		&m.Certifications, &m.DisplayOrder, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *teamMemberRepo) Create(ctx context.Context, m *models.TeamMember) error {
	if m.Certifications == nil {
		m.Certifications = []string{}
	}
	query := `
		INSERT INTO team_members (id, name, role, department, bio, short_bio, photo_url, years_experience, certifications, display_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, m.ID, m.Name, m.Role, m.Department, m.Bio, m.ShortBio, m.PhotoURL, m.YearsExperience,
		m.Certifications, m.DisplayOrder, m.IsActive).Scan(&m.CreatedAt, &m.UpdatedAt)
	return mapError(err)
}

func (r *teamMemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	query := `SELECT ` + teamMemberColumns + ` FROM team_members WHERE id = $1`
	m, err := scanTeamMember(r.db.QueryRow(ctx, query, id))
	return m, mapError(err)
}

func (r *teamMemberRepo) Update(ctx context.Context, m *models.TeamMember) error {
	if m.Certifications == nil {
		m.Certifications = []string{}
	}
	query := `
		UPDATE team_members
		SET name = $1, role = $2, department = $3, bio = $4, short_bio = $5, photo_url = $6, years_experience = $7,
			certifications = $8, display_order = $9, is_active = $10, updated_at = NOW()
		WHERE id = $11
	`
	return requireAffected(r.db.Exec(ctx, query, m.Name, m.Role, m.Department, m.Bio, m.ShortBio, m.PhotoURL, m.YearsExperience,
		m.Certifications, m.DisplayOrder, m.IsActive, m.ID))
}

func (r *teamMemberRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM team_members WHERE id = $1`
	return requireAffected(r.db.Exec(ctx, query, id))
}

func (r *teamMemberRepo) List(ctx context.Context, activeOnly bool) ([]*models.TeamMember, error) {
	query := `
		SELECT ` + teamMemberColumns + `
		FROM team_members
		WHERE ($1 = FALSE OR is_active = TRUE)
		ORDER BY display_order ASC, name ASC
	`
	rows, err := r.db.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []*models.TeamMember{}
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
