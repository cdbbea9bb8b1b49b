package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/common"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/services"

	"github.com/labstack/echo/v4"
)

// ApplicationHandlers handles job applications from the careers page and
// their review by admins.
type ApplicationHandlers struct {
	appService services.ApplicationService
}

// NewApplicationHandlers creates a new application handlers instance
func NewApplicationHandlers(appService services.ApplicationService) *ApplicationHandlers {
	return &ApplicationHandlers{appService: appService}
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// resumeUpload opens the optional "resume" file of a multipart form. The
// returned closer is nil when no file was sent.
func resumeUpload(c echo.Context) (*services.Upload, multipart.File, error) {
	fileHeader, err := c.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read upload")
	}
	if fileHeader.Size > services.MaxResumeBytes {
		return nil, nil, common.NewValidationError("resume", "must be 5 MB or smaller")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read upload")
	}
	return &services.Upload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Reader:   file,
	}, file, nil
}

// Submit handles POST /api/job-applications (multipart or JSON)
func (h *ApplicationHandlers) Submit(c echo.Context) error {
	var req services.ApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	upload, file, err := resumeUpload(c)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	app, err := h.appService.Submit(c.Request().Context(), req, upload)
	if err != nil {
		return serviceError(err, "Application")
	}
	common.MarkInvalidated(c, caching.ResourceApplications)
	return c.JSON(http.StatusCreated, app)
}

// List handles GET /api/admin/job-applications?status=
func (h *ApplicationHandlers) List(c echo.Context) error {
	limit, offset := common.ParsePagination(c)
	var status *models.ApplicationStatus
	if s := c.QueryParam("status"); s != "" {
		st := models.ApplicationStatus(s)
		status = &st
	}
	apps, err := h.appService.List(c.Request().Context(), status, limit, offset)
	if err != nil {
		return serviceError(err, "Application")
	}
	return c.JSON(http.StatusOK, listResponse("applications", apps, limit, offset))
}

// Get handles GET /api/admin/job-applications/:id
func (h *ApplicationHandlers) Get(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	app, err := h.appService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "Application")
	}
	return c.JSON(http.StatusOK, app)
}

// UpdateStatus handles PUT /api/admin/job-applications/:id/status
func (h *ApplicationHandlers) UpdateStatus(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.appService.UpdateStatus(c.Request().Context(), id, models.ApplicationStatus(req.Status)); err != nil {
		return serviceError(err, "Application")
	}
	common.MarkInvalidated(c, caching.ResourceApplications)
	return c.JSON(http.StatusOK, messageResponse{Message: "Status updated"})
}

// Delete handles DELETE /api/admin/job-applications/:id
func (h *ApplicationHandlers) Delete(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.appService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, "Application")
	}
	common.MarkInvalidated(c, caching.ResourceApplications)
	return c.NoContent(http.StatusNoContent)
}

// Resume handles GET /api/admin/job-applications/:id/resume
func (h *ApplicationHandlers) Resume(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	url, err := h.appService.ResumeURL(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "Resume")
	}
	return c.Redirect(http.StatusFound, url)
}
