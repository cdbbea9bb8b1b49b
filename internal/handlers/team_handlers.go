package handlers

import (
	"net/http"
	"strings"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/common"
	"afterhourshvac/internal/services"

	"github.com/labstack/echo/v4"
)

const maxPhotoBytes = 5 << 20

// TeamHandlers handles the public team listing and admin team management.
type TeamHandlers struct {
	teamService services.TeamService
}

// NewTeamHandlers creates a new team handlers instance
func NewTeamHandlers(teamService services.TeamService) *TeamHandlers {
	return &TeamHandlers{teamService: teamService}
}

// ListActive handles GET /api/team
func (h *TeamHandlers) ListActive(c echo.Context) error {
	members, err := h.teamService.List(c.Request().Context(), true)
	if err != nil {
		return serviceError(err, "Team member")
	}
	return c.JSON(http.StatusOK, map[string]any{"members": members})
}

// ListAll handles GET /api/admin/team, inactive members included.
func (h *TeamHandlers) ListAll(c echo.Context) error {
	members, err := h.teamService.List(c.Request().Context(), false)
	if err != nil {
		return serviceError(err, "Team member")
	}
	return c.JSON(http.StatusOK, map[string]any{"members": members})
}

// CreateMember handles POST /api/team
func (h *TeamHandlers) CreateMember(c echo.Context) error {
	var req services.TeamMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	member, err := h.teamService.Create(c.Request().Context(), req)
	if err != nil {
		return serviceError(err, "Team member")
	}
	common.MarkInvalidated(c, caching.ResourceTeam)
	return c.JSON(http.StatusCreated, member)
}

// UpdateMember handles PUT /api/team/:id
func (h *TeamHandlers) UpdateMember(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req services.TeamMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	member, err := h.teamService.Update(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(err, "Team member")
	}
	common.MarkInvalidated(c, caching.ResourceTeam)
	return c.JSON(http.StatusOK, member)
}

// DeleteMember handles DELETE /api/team/:id
func (h *TeamHandlers) DeleteMember(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.teamService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, "Team member")
	}
	common.MarkInvalidated(c, caching.ResourceTeam)
	return c.NoContent(http.StatusNoContent)
}

// UploadPhoto handles POST /api/team/:id/photo with a multipart "photo" file.
func (h *TeamHandlers) UploadPhoto(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return common.NewValidationError("photo", "is required")
	}
	if fileHeader.Size > maxPhotoBytes {
		return common.NewValidationError("photo", "must be 5 MB or smaller")
	}
	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return common.NewValidationError("photo", "must be an image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read upload")
	}
	defer file.Close()

	member, err := h.teamService.UploadPhoto(c.Request().Context(), id, file, fileHeader.Size, contentType)
	if err != nil {
		return serviceError(err, "Team member")
	}
	common.MarkInvalidated(c, caching.ResourceTeam)
	return c.JSON(http.StatusOK, member)
}

// Photo handles GET /api/team/:id/photo by redirecting to the stored image.
func (h *TeamHandlers) Photo(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	url, err := h.teamService.PhotoURL(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "Photo")
	}
	return c.Redirect(http.StatusFound, url)
}
