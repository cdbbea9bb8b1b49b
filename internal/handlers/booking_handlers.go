package handlers

import (
	"fmt"
	"net/http"
	"time"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/common"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/services"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BookingHandlers handles the public booking endpoint and the admin booking
// screens.
type BookingHandlers struct {
	bookingService services.BookingService
}

// NewBookingHandlers creates a new booking handlers instance
func NewBookingHandlers(bookingService services.BookingService) *BookingHandlers {
	return &BookingHandlers{bookingService: bookingService}
}

// CreateBooking handles POST /api/bookings
// @Summary Record a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param body body services.CreateBookingRequest true "Booking"
// @Success 201 {object} models.Booking
// @Failure 400 {object} common.ErrorResponse
// @Failure 402 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Router /api/bookings [post]
func (h *BookingHandlers) CreateBooking(c echo.Context) error {
	var req services.CreateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	booking, err := h.bookingService.Create(c.Request().Context(), req)
	if err != nil {
		return serviceError(err, "Booking")
	}
	common.MarkInvalidated(c, caching.ResourceBookings)
	return c.JSON(http.StatusCreated, booking)
}

// ListBookings handles GET /api/admin/bookings?status=&limit=&offset=
func (h *BookingHandlers) ListBookings(c echo.Context) error {
	limit, offset := common.ParsePagination(c)
	filter := models.BookingFilter{Limit: limit, Offset: offset}
	if s := c.QueryParam("status"); s != "" {
		status := models.BookingStatus(s)
		filter.Status = &status
	}

	bookings, err := h.bookingService.List(c.Request().Context(), filter)
	if err != nil {
		return serviceError(err, "Booking")
	}
	return c.JSON(http.StatusOK, listResponse("bookings", bookings, limit, offset))
}

// GetBooking handles GET /api/admin/bookings/:id
func (h *BookingHandlers) GetBooking(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	booking, err := h.bookingService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "Booking")
	}
	return c.JSON(http.StatusOK, booking)
}

// UpdateBooking handles PUT /api/admin/bookings/:id
func (h *BookingHandlers) UpdateBooking(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var upd models.BookingUpdate
	if err := bindAndValidate(c, &upd); err != nil {
		return err
	}
	booking, err := h.bookingService.Update(c.Request().Context(), id, upd)
	if err != nil {
		return serviceError(err, "Booking")
	}
	common.MarkInvalidated(c, caching.ResourceBookings)
	return c.JSON(http.StatusOK, booking)
}

// DeleteBooking handles DELETE /api/admin/bookings/:id
func (h *BookingHandlers) DeleteBooking(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.bookingService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, "Booking")
	}
	common.MarkInvalidated(c, caching.ResourceBookings)
	return c.NoContent(http.StatusNoContent)
}

// ExportBookings handles GET /api/admin/bookings/export
func (h *BookingHandlers) ExportBookings(c echo.Context) error {
	bookings, err := h.bookingService.ListAll(c.Request().Context())
	if err != nil {
		return serviceError(err, "Booking")
	}
	data, err := services.ExportBookingsXLSX(bookings)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, xlsxContentType, data)
}
