package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/config"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const sessionIssuer = "afterhourshvac"

// SessionClaims is the payload of the session cookie. The registered ID
// (jti) names the server-side session record.
type SessionClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

func (c *SessionClaims) SessionUser() (*models.SessionUser, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in session: %w", err)
	}
	return &models.SessionUser{ID: id, Username: c.Username, Email: c.Email, Role: c.Role, IsAdmin: c.IsAdmin}, nil
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest accepts either an email or a username.
type LoginRequest struct {
	Email    string `json:"email" validate:"required_without=Username"`
	Username string `json:"username" validate:"required_without=Email"`
	Password string `json:"password" validate:"required"`
}

// Session is a signed cookie value and its server-side id.
type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, *Session, error)
	Login(ctx context.Context, req LoginRequest) (*models.User, *Session, error)
	Logout(ctx context.Context, sessionID string) error
	StartSession(ctx context.Context, user *models.User) (*Session, error)
	ResolveSession(ctx context.Context, sessionID string) (*models.SessionUser, error)
}

type authService struct {
	userRepo repositories.UserRepository
	cacheSvc caching.CacheService
	cfg      config.SessionConfig
	secret   []byte
	now      func() time.Time
}

func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, cfg config.SessionConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		cacheSvc: cacheSvc,
		cfg:      cfg,
		secret:   []byte(cfg.Secret),
		now:      time.Now,
	}
}

// HashPassword bcrypt-hashes a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, *Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, nil, fmt.Errorf("email %s: %w", email, ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, fmt.Errorf("lookup email: %w", err)
	}
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, nil, fmt.Errorf("username %s: %w", username, ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, fmt.Errorf("lookup username: %w", err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if s.cfg.IsAdminEmail(email) {
		user.IsAdmin = true
		user.Role = models.RoleAdmin
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, repoError("create user", err)
	}

	sess, err := s.StartSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*models.User, *Session, error) {
	var (
		user *models.User
		err  error
	)
	if req.Email != "" {
		user, err = s.userRepo.GetByEmail(ctx, req.Email)
	} else {
		user, err = s.userRepo.GetByUsername(ctx, req.Username)
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if user.IsLocked {
		return nil, nil, ErrAccountLocked
	}

	sess, err := s.StartSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.cacheSvc.DeleteSession(ctx, sessionID)
}

// StartSession signs a cookie token and records the session in Redis.
func (s *authService) StartSession(ctx context.Context, user *models.User) (*Session, error) {
	now := s.now()
	sessionID := uuid.NewString()
	expires := now.Add(s.cfg.TTL)

	claims := SessionClaims{
		UserID:   user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        sessionID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}
	if err := s.cacheSvc.SetSession(ctx, sessionID, user.SessionUser(), s.cfg.TTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return &Session{ID: sessionID, Token: token, ExpiresAt: expires}, nil
}

// ResolveSession returns the stored identity, or nil when the session was
// revoked or has expired.
func (s *authService) ResolveSession(ctx context.Context, sessionID string) (*models.SessionUser, error) {
	if sessionID == "" {
		return nil, nil
	}
	return s.cacheSvc.GetSession(ctx, sessionID)
}
