package handlers

import (
	"net/http"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/common"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/services"

	"github.com/labstack/echo/v4"
)

// QuoteHandlers handles quote requests.
type QuoteHandlers struct {
	quoteService services.QuoteService
}

// NewQuoteHandlers creates a new quote handlers instance
func NewQuoteHandlers(quoteService services.QuoteService) *QuoteHandlers {
	return &QuoteHandlers{quoteService: quoteService}
}

// Submit handles POST /api/quotes
func (h *QuoteHandlers) Submit(c echo.Context) error {
	var req services.QuoteRequestInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	quote, err := h.quoteService.Submit(c.Request().Context(), req)
	if err != nil {
		return serviceError(err, "Quote")
	}
	common.MarkInvalidated(c, caching.ResourceQuotes)
	return c.JSON(http.StatusCreated, quote)
}

// List handles GET /api/admin/quotes
func (h *QuoteHandlers) List(c echo.Context) error {
	limit, offset := common.ParsePagination(c)
	quotes, err := h.quoteService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return serviceError(err, "Quote")
	}
	return c.JSON(http.StatusOK, listResponse("quotes", quotes, limit, offset))
}

// UpdateStatus handles PUT /api/admin/quotes/:id/status
func (h *QuoteHandlers) UpdateStatus(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.quoteService.UpdateStatus(c.Request().Context(), id, models.QuoteStatus(req.Status)); err != nil {
		return serviceError(err, "Quote")
	}
	common.MarkInvalidated(c, caching.ResourceQuotes)
	return c.JSON(http.StatusOK, messageResponse{Message: "Status updated"})
}
