package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/common"
	"afterhourshvac/internal/config"
	"afterhourshvac/internal/models"
	"afterhourshvac/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const homePostCount = 3

// SiteHandlers renders the public website.
type SiteHandlers struct {
	blogService     services.BlogService
	teamService     services.TeamService
	checkoutService services.CheckoutService
	appService      services.ApplicationService
	quoteService    services.QuoteService
	business        config.BusinessConfig
	logger          zerolog.Logger
}

// NewSiteHandlers creates a new site handlers instance
func NewSiteHandlers(
	blogService services.BlogService,
	teamService services.TeamService,
	checkoutService services.CheckoutService,
	appService services.ApplicationService,
	quoteService services.QuoteService,
	business config.BusinessConfig,
	logger zerolog.Logger,
) *SiteHandlers {
	return &SiteHandlers{
		blogService:     blogService,
		teamService:     teamService,
		checkoutService: checkoutService,
		appService:      appService,
		quoteService:    quoteService,
		business:        business,
		logger:          logger.With().Str("handler", "site").Logger(),
	}
}

type pageData struct {
	Title    string
	Business config.BusinessConfig
	User     *models.SessionUser
	Year     int
	Toast    string
	Services []models.Service
	Team     []*models.TeamMember
	Posts    []*models.BlogPost
	Post     *models.BlogPost
	Result   *services.ReturnResult
	Form     map[string]string
	Errors   map[string]string
}

func (h *SiteHandlers) page(c echo.Context, title string) *pageData {
	data := &pageData{
		Title:    title,
		Business: h.business,
		Year:     time.Now().Year(),
		Form:     map[string]string{},
	}
	if user, ok := common.GetSessionUser(c); ok {
		data.User = user
	}
	return data
}

// renderFailure shows the error page for unexpected failures and the
// not-found page for missing content.
func (h *SiteHandlers) renderFailure(c echo.Context, err error) error {
	if errors.Is(err, services.ErrNotFound) {
		return c.Render(http.StatusNotFound, "not_found", h.page(c, "Not found"))
	}
	h.logger.Error().Err(err).Str("path", c.Path()).Msg("page failed")
	return c.Render(http.StatusInternalServerError, "error", h.page(c, "Error"))
}

// formValues echoes submitted fields back into a re-rendered form.
func formValues(c echo.Context, fields ...string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f] = c.FormValue(f)
	}
	return out
}

func validationDetails(err error) (map[string]string, bool) {
	var validationErr *common.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Details, true
	}
	return nil, false
}

// Home handles GET /
func (h *SiteHandlers) Home(c echo.Context) error {
	ctx := c.Request().Context()
	data := h.page(c, "Home")
	data.Services = models.Catalog

	posts, err := h.blogService.ListPublished(ctx, homePostCount, 0)
	if err != nil {
		h.logger.Warn().Err(err).Msg("home page posts unavailable")
	}
	data.Posts = posts

	team, err := h.teamService.List(ctx, true)
	if err != nil {
		h.logger.Warn().Err(err).Msg("home page team unavailable")
	}
	data.Team = team
	return c.Render(http.StatusOK, "home", data)
}

// About handles GET /about
func (h *SiteHandlers) About(c echo.Context) error {
	team, err := h.teamService.List(c.Request().Context(), true)
	if err != nil {
		return h.renderFailure(c, err)
	}
	data := h.page(c, "About")
	data.Team = team
	return c.Render(http.StatusOK, "about", data)
}

// Blog handles GET /blog
func (h *SiteHandlers) Blog(c echo.Context) error {
	limit, offset := common.ParsePagination(c)
	posts, err := h.blogService.ListPublished(c.Request().Context(), limit, offset)
	if err != nil {
		return h.renderFailure(c, err)
	}
	data := h.page(c, "Blog")
	data.Posts = posts
	return c.Render(http.StatusOK, "blog", data)
}

// BlogPost handles GET /blog/:slug
func (h *SiteHandlers) BlogPost(c echo.Context) error {
	post, err := h.blogService.GetPublishedBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return h.renderFailure(c, err)
	}
	data := h.page(c, post.Title)
	data.Post = post
	return c.Render(http.StatusOK, "blog_post", data)
}

// Services handles GET /services
func (h *SiteHandlers) Services(c echo.Context) error {
	data := h.page(c, "Services")
	data.Services = models.Catalog
	return c.Render(http.StatusOK, "services", data)
}

// Book handles POST /book, the booking modal submission. On success the
// visitor is sent to the hosted checkout page.
func (h *SiteHandlers) Book(c echo.Context) error {
	var form services.BookingForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form")
	}

	rerender := func(status int, toast string, details map[string]string) error {
		data := h.page(c, "Services")
		data.Services = models.Catalog
		data.Toast = toast
		data.Errors = details
		data.Form = formValues(c, "name", "email", "phone", "address", "notes")
		return c.Render(status, "services", data)
	}

	service, ok := models.FindService(c.FormValue("service"))
	if !ok {
		return rerender(http.StatusBadRequest, "Please choose a service to book.", nil)
	}

	sess, err := h.checkoutService.BeginCheckout(c.Request().Context(), common.GetVisitorID(c), form, service)
	if err != nil {
		if details, ok := validationDetails(err); ok {
			return rerender(http.StatusBadRequest, "Please check the highlighted fields.", details)
		}
		return rerender(http.StatusBadGateway, services.CheckoutFailedMessage, nil)
	}
	return c.Redirect(http.StatusSeeOther, sess.URL)
}

// BookingSuccess handles GET /booking/success?session_id=
func (h *SiteHandlers) BookingSuccess(c echo.Context) error {
	result := h.checkoutService.CompleteCheckout(c.Request().Context(), common.GetVisitorID(c), c.QueryParam("session_id"))
	if result.State == services.ReturnSuccess {
		common.MarkInvalidated(c, caching.ResourceBookings)
	}
	data := h.page(c, "Booking")
	data.Result = result
	return c.Render(http.StatusOK, "booking_success", data)
}

// BookingCancelled handles GET /booking/cancelled. The stash is left alone.
func (h *SiteHandlers) BookingCancelled(c echo.Context) error {
	return c.Render(http.StatusOK, "booking_cancelled", h.page(c, "Payment cancelled"))
}

var careerFields = []string{"firstName", "lastName", "email", "phone", "position", "experienceYears", "coverLetter"}

// Careers handles GET /careers
func (h *SiteHandlers) Careers(c echo.Context) error {
	return c.Render(http.StatusOK, "careers", h.page(c, "Careers"))
}

// SubmitApplication handles POST /careers
func (h *SiteHandlers) SubmitApplication(c echo.Context) error {
	data := h.page(c, "Careers")
	data.Form = formValues(c, careerFields...)

	var req services.ApplicationRequest
	if err := c.Bind(&req); err != nil {
		data.Errors = map[string]string{"experienceYears": "must be a number"}
		return c.Render(http.StatusBadRequest, "careers", data)
	}

	err := c.Validate(&req)
	var (
		upload *services.Upload
		file   multipart.File
	)
	if err == nil {
		upload, file, err = resumeUpload(c)
		if file != nil {
			defer file.Close()
		}
	}
	if err == nil {
		_, err = h.appService.Submit(c.Request().Context(), req, upload)
	}
	if err != nil {
		if details, ok := validationDetails(err); ok {
			data.Errors = details
			data.Toast = "Please check the highlighted fields."
			return c.Render(http.StatusBadRequest, "careers", data)
		}
		return h.renderFailure(c, err)
	}

	common.MarkInvalidated(c, caching.ResourceApplications)
	data.Form = map[string]string{}
	data.Toast = "Thanks for applying. We will be in touch."
	return c.Render(http.StatusOK, "careers", data)
}

var quoteFields = []string{"name", "email", "phone", "address", "serviceType", "propertyType", "message"}

// Quote handles GET /quote
func (h *SiteHandlers) Quote(c echo.Context) error {
	return c.Render(http.StatusOK, "quote", h.page(c, "Get a Quote"))
}

// SubmitQuote handles POST /quote
func (h *SiteHandlers) SubmitQuote(c echo.Context) error {
	data := h.page(c, "Get a Quote")
	data.Form = formValues(c, quoteFields...)

	var req services.QuoteRequestInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form")
	}
	err := c.Validate(&req)
	if err == nil {
		_, err = h.quoteService.Submit(c.Request().Context(), req)
	}
	if err != nil {
		if details, ok := validationDetails(err); ok {
			data.Errors = details
			data.Toast = "Please check the highlighted fields."
			return c.Render(http.StatusBadRequest, "quote", data)
		}
		return h.renderFailure(c, err)
	}

	common.MarkInvalidated(c, caching.ResourceQuotes)
	data.Form = map[string]string{}
	data.Toast = "Thanks. We will call you within one business day."
	return c.Render(http.StatusOK, "quote", data)
}
