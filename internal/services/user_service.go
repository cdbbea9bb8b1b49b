package services

import (
	"context"
	"fmt"
	"strings"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/repositories"

	"github.com/google/uuid"
)

// CreateUserRequest is an admin-created account.
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role" validate:"omitempty,oneof=user admin pro corporate"`
	IsAdmin     bool   `json:"isAdmin"`
	IsPro       bool   `json:"isPro"`
	IsCorporate bool   `json:"isCorporate"`
}

type SetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type UserService interface {
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, req CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error)
	SetPassword(ctx context.Context, id uuid.UUID, password string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo repositories.UserRepository
	cacheSvc caching.CacheService
}

func NewUserService(userRepo repositories.UserRepository, cacheSvc caching.CacheService) UserService {
	return &userService{userRepo: userRepo, cacheSvc: cacheSvc}
}

// revokeSessions logs the user out everywhere.
func (s *userService) revokeSessions(ctx context.Context, id uuid.UUID) error {
	if err := s.cacheSvc.RevokeUserSessions(ctx, id); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, repoError("list users", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("get user", err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	user := &models.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         role,
		IsAdmin:      req.IsAdmin || role == models.RoleAdmin,
		IsPro:        req.IsPro,
		IsCorporate:  req.IsCorporate,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, repoError("create user", err)
	}
	return user, nil
}

// Update applies only the fields present in upd.
func (s *userService) Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("get user", err)
	}
	before := user.SessionUser()
	wasLocked := user.IsLocked

	if upd.Username != nil {
		user.Username = strings.TrimSpace(*upd.Username)
	}
	if upd.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*upd.Email))
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}
	if upd.IsAdmin != nil {
		user.IsAdmin = *upd.IsAdmin
	}
	if upd.IsPro != nil {
		user.IsPro = *upd.IsPro
	}
	if upd.IsCorporate != nil {
		user.IsCorporate = *upd.IsCorporate
	}
	if upd.IsLocked != nil {
		user.IsLocked = *upd.IsLocked
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, repoError("update user", err)
	}
	if upd.Password != nil {
		if err := s.SetPassword(ctx, id, *upd.Password); err != nil {
			return nil, err
		}
		return user, nil
	}
	if user.SessionUser() != before || (user.IsLocked && !wasLocked) {
		if err := s.revokeSessions(ctx, id); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (s *userService) SetPassword(ctx context.Context, id uuid.UUID, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, id, hash); err != nil {
		return repoError("set password", err)
	}
	return s.revokeSessions(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return repoError("delete user", err)
	}
	return s.revokeSessions(ctx, id)
}
