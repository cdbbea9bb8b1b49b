package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RolePro       = "pro"
	RoleCorporate = "corporate"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role         string    `json:"role" db:"role"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin"`
	IsPro        bool      `json:"isPro" db:"is_pro"`
	IsCorporate  bool      `json:"isCorporate" db:"is_corporate"`
	IsLocked     bool      `json:"isLocked" db:"is_locked"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// SessionUser is the identity carried by the session cookie.
type SessionUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsAdmin  bool      `json:"isAdmin"`
}

func (u *User) SessionUser() SessionUser {
	return SessionUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		IsAdmin:  u.IsAdmin,
	}
}

// UserUpdate is a partial update applied by an admin.
type UserUpdate struct {
	Username    *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Role        *string `json:"role" validate:"omitempty,oneof=user admin pro corporate"`
	IsAdmin     *bool   `json:"isAdmin"`
	IsPro       *bool   `json:"isPro"`
	IsCorporate *bool   `json:"isCorporate"`
	IsLocked    *bool   `json:"isLocked"`
	Password    *string `json:"password" validate:"omitempty,min=6"`
}
