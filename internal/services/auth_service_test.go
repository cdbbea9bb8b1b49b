package services

import (
	"context"
	"testing"
	"time"

	"afterhourshvac/internal/config"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	userRepo *MockUserRepository
	service  AuthService
	cfg      config.SessionConfig
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.userRepo = new(MockUserRepository)
	cache, _ := newTestCache(s.T())
	s.cfg = config.SessionConfig{
		Secret:      "unit-test-secret-unit-test-secret",
		CookieName:  "hvac_session",
		TTL:         7 * 24 * time.Hour,
		AdminEmails: []string{"jordan@afterhourshvac.ca"},
	}
	s.service = NewAuthService(s.userRepo, cache, s.cfg)
}

func (s *AuthServiceTestSuite) TearDownTest() {
	s.userRepo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) expectFreshAccount(email, username string) {
	s.userRepo.On("GetByEmail", mock.Anything, email).Return(nil, repositories.ErrNotFound)
	s.userRepo.On("GetByUsername", mock.Anything, username).Return(nil, repositories.ErrNotFound)
}

func (s *AuthServiceTestSuite) TestRegister_AllowlistedEmailBecomesAdmin() {
	ctx := context.Background()
	s.expectFreshAccount("jordan@afterhourshvac.ca", "jordan")
	s.userRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, sess, err := s.service.Register(ctx, RegisterRequest{Username: "jordan", Email: "Jordan@AfterHoursHVAC.ca", Password: "secret1"})

	s.Require().NoError(err)
	s.True(user.IsAdmin)
	s.Equal(models.RoleAdmin, user.Role)
	s.Equal("jordan@afterhourshvac.ca", user.Email)
	s.NotEqual("secret1", user.PasswordHash)
	s.NotEmpty(sess.Token)

	stored, err := s.service.ResolveSession(ctx, sess.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.True(stored.IsAdmin)
}

func (s *AuthServiceTestSuite) TestRegister_OrdinaryEmailIsUser() {
	ctx := context.Background()
	s.expectFreshAccount("casey@example.com", "casey")
	s.userRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, _, err := s.service.Register(ctx, RegisterRequest{Username: "casey", Email: "casey@example.com", Password: "secret1"})

	s.Require().NoError(err)
	s.False(user.IsAdmin)
	s.Equal(models.RoleUser, user.Role)
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	s.userRepo.On("GetByEmail", mock.Anything, "casey@example.com").Return(&models.User{ID: uuid.New()}, nil)

	_, _, err := s.service.Register(context.Background(), RegisterRequest{Username: "casey", Email: "casey@example.com", Password: "secret1"})

	s.ErrorIs(err, ErrConflict)
}

func (s *AuthServiceTestSuite) TestLogin() {
	hash, err := HashPassword("secret1")
	s.Require().NoError(err)
	user := &models.User{ID: uuid.New(), Username: "casey", Email: "casey@example.com", PasswordHash: hash, Role: models.RoleUser}

	s.userRepo.On("GetByUsername", mock.Anything, "casey").Return(user, nil)

	_, _, err = s.service.Login(context.Background(), LoginRequest{Username: "casey", Password: "wrong"})
	s.ErrorIs(err, ErrInvalidCredentials)

	got, sess, err := s.service.Login(context.Background(), LoginRequest{Username: "casey", Password: "secret1"})
	s.Require().NoError(err)
	s.Equal(user.ID, got.ID)

	claims := &SessionClaims{}
	_, err = jwt.ParseWithClaims(sess.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	})
	s.Require().NoError(err)
	s.Equal(sess.ID, claims.ID)
	s.Equal(user.ID.String(), claims.UserID)
	s.Equal("casey", claims.Username)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownUser() {
	s.userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repositories.ErrNotFound)

	_, _, err := s.service.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLogin_LockedAccount() {
	hash, _ := HashPassword("secret1")
	s.userRepo.On("GetByEmail", mock.Anything, "casey@example.com").
		Return(&models.User{ID: uuid.New(), PasswordHash: hash, IsLocked: true}, nil)

	_, _, err := s.service.Login(context.Background(), LoginRequest{Email: "casey@example.com", Password: "secret1"})
	s.ErrorIs(err, ErrAccountLocked)
}

func (s *AuthServiceTestSuite) TestLogout_RevokesSession() {
	ctx := context.Background()
	sess, err := s.service.StartSession(ctx, &models.User{ID: uuid.New(), Username: "casey"})
	s.Require().NoError(err)

	user, err := s.service.ResolveSession(ctx, sess.ID)
	s.Require().NoError(err)
	s.NotNil(user)

	s.Require().NoError(s.service.Logout(ctx, sess.ID))

	user, err = s.service.ResolveSession(ctx, sess.ID)
	s.NoError(err)
	s.Nil(user)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func TestSessionClaims_SessionUser(t *testing.T) {
	id := uuid.New()
	c := &SessionClaims{UserID: id.String(), Username: "casey", IsAdmin: true}
	u, err := c.SessionUser()
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.True(t, u.IsAdmin)

	_, err = (&SessionClaims{UserID: "nope"}).SessionUser()
	assert.Error(t, err)
}
