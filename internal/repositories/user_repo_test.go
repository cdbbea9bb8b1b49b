package repositories

import (
	"context"
	"testing"
	"time"

	"afterhourshvac/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    UserRepository
	context context.Context
}

func (suite *UserRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	suite.Require().NoError(err)
	suite.mock = mock
	suite.repo = NewUserRepo(mock)
	suite.context = context.Background()
}

func (suite *UserRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}

func userRows(u *models.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "is_admin", "is_pro", "is_corporate", "is_locked", "created_at", "updated_at"}).
		AddRow(u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.IsAdmin, u.IsPro, u.IsCorporate, u.IsLocked, u.CreatedAt, u.UpdatedAt)
}

func (suite *UserRepoTestSuite) TestCreate_LowercasesEmail() {
	now := time.Now()
	user := &models.User{ID: uuid.New(), Username: "jordan", Email: "Jordan@AfterHoursHVAC.ca", PasswordHash: "hash", Role: models.RoleAdmin, IsAdmin: true}

	suite.mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.ID, "jordan", "jordan@afterhourshvac.ca", "hash", models.RoleAdmin, true, false, false, false).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	err := suite.repo.Create(suite.context, user)
	suite.NoError(err)
	suite.Equal(now, user.CreatedAt)
}

func (suite *UserRepoTestSuite) TestCreate_DuplicateEmail() {
	user := &models.User{ID: uuid.New(), Username: "sam", Email: "sam@example.com", PasswordHash: "hash", Role: models.RoleUser}

	suite.mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.ID, "sam", "sam@example.com", "hash", models.RoleUser, false, false, false, false).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := suite.repo.Create(suite.context, user)
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *UserRepoTestSuite) TestGetByEmail_Found() {
	user := &models.User{ID: uuid.New(), Username: "sam", Email: "sam@example.com", PasswordHash: "hash", Role: models.RoleUser, CreatedAt: time.Now(), UpdatedAt: time.Now()}

	suite.mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
		WithArgs("sam@example.com").
		WillReturnRows(userRows(user))

	got, err := suite.repo.GetByEmail(suite.context, "  SAM@example.com ")
	suite.NoError(err)
	suite.Equal(user.ID, got.ID)
	suite.Equal("hash", got.PasswordHash)
}

func (suite *UserRepoTestSuite) TestGetByID_NotFound() {
	id := uuid.New()
	suite.mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	got, err := suite.repo.GetByID(suite.context, id)
	suite.Nil(got)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *UserRepoTestSuite) TestUpdate_NoRowsIsNotFound() {
	user := &models.User{ID: uuid.New(), Username: "sam", Email: "sam@example.com", Role: models.RoleUser, IsLocked: true}

	suite.mock.ExpectExec(`UPDATE users`).
		WithArgs("sam", "sam@example.com", models.RoleUser, false, false, false, true, user.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Update(suite.context, user)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *UserRepoTestSuite) TestUpdatePassword() {
	id := uuid.New()
	suite.mock.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs("newhash", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	suite.NoError(suite.repo.UpdatePassword(suite.context, id, "newhash"))
}

func (suite *UserRepoTestSuite) TestList_ClampsLimit() {
	user := &models.User{ID: uuid.New(), Username: "sam", Email: "sam@example.com", Role: models.RoleUser, CreatedAt: time.Now(), UpdatedAt: time.Now()}

	suite.mock.ExpectQuery(`SELECT .* FROM users ORDER BY created_at DESC`).
		WithArgs(100, 0).
		WillReturnRows(userRows(user))

	users, err := suite.repo.List(suite.context, 500, -3)
	suite.NoError(err)
	suite.Len(users, 1)
}
