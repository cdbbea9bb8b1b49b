package handlers

import (
	"net/http"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/common"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles admin user management.
type UserHandlers struct {
	userService services.UserService
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// ListUsers handles GET /api/admin/users
func (h *UserHandlers) ListUsers(c echo.Context) error {
	limit, offset := common.ParsePagination(c)
	users, err := h.userService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return serviceError(err, "User")
	}
	return c.JSON(http.StatusOK, listResponse("users", users, limit, offset))
}

// GetUser handles GET /api/admin/users/:id
func (h *UserHandlers) GetUser(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "User")
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /api/admin/users
func (h *UserHandlers) CreateUser(c echo.Context) error {
	var req services.CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.userService.Create(c.Request().Context(), req)
	if err != nil {
		return serviceError(err, "User")
	}
	common.MarkInvalidated(c, caching.ResourceUsers)
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT /api/admin/users/:id. Only the fields present in
// the body change; isLocked locks or unlocks the account.
func (h *UserHandlers) UpdateUser(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var upd models.UserUpdate
	if err := bindAndValidate(c, &upd); err != nil {
		return err
	}
	user, err := h.userService.Update(c.Request().Context(), id, upd)
	if err != nil {
		return serviceError(err, "User")
	}
	common.MarkInvalidated(c, caching.ResourceUsers)
	return c.JSON(http.StatusOK, user)
}

// SetPassword handles PUT /api/admin/users/:id/password
func (h *UserHandlers) SetPassword(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req services.SetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.userService.SetPassword(c.Request().Context(), id, req.Password); err != nil {
		return serviceError(err, "User")
	}
	common.MarkInvalidated(c, caching.ResourceUsers)
	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated"})
}

// DeleteUser handles DELETE /api/admin/users/:id
func (h *UserHandlers) DeleteUser(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, "User")
	}
	common.MarkInvalidated(c, caching.ResourceUsers)
	return c.NoContent(http.StatusNoContent)
}
