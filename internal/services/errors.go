package services

import (
	"errors"
	"fmt"

	"afterhourshvac/internal/repositories"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountLocked       = errors.New("account is locked")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
	ErrCheckoutUnavailable = errors.New("checkout unavailable")
)

// repoError translates repository sentinels into service sentinels,
// keeping the original error in the chain.
func repoError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, repositories.ErrDuplicate):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
