package handlers

import (
	"net/http"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/common"
	"afterhourshvac/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BlogHandlers serves published posts publicly and the post editor to admins.
type BlogHandlers struct {
	blogService services.BlogService
}

// NewBlogHandlers creates a new blog handlers instance
func NewBlogHandlers(blogService services.BlogService) *BlogHandlers {
	return &BlogHandlers{blogService: blogService}
}

// ListPublished handles GET /api/blog/posts
func (h *BlogHandlers) ListPublished(c echo.Context) error {
	limit, offset := common.ParsePagination(c)
	posts, err := h.blogService.ListPublished(c.Request().Context(), limit, offset)
	if err != nil {
		return serviceError(err, "Post")
	}
	return c.JSON(http.StatusOK, listResponse("posts", posts, limit, offset))
}

// GetBySlug handles GET /api/blog/posts/:slug. Drafts are reported as missing.
func (h *BlogHandlers) GetBySlug(c echo.Context) error {
	post, err := h.blogService.GetPublishedBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return serviceError(err, "Post")
	}
	return c.JSON(http.StatusOK, post)
}

// ListAll handles GET /api/admin/blog/posts
func (h *BlogHandlers) ListAll(c echo.Context) error {
	limit, offset := common.ParsePagination(c)
	posts, err := h.blogService.ListAll(c.Request().Context(), limit, offset)
	if err != nil {
		return serviceError(err, "Post")
	}
	return c.JSON(http.StatusOK, listResponse("posts", posts, limit, offset))
}

// CreatePost handles POST /api/admin/blog/posts
// @Summary Create a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Param body body services.CreatePostRequest true "Post"
// @Success 201 {object} models.BlogPost
// @Failure 409 {object} common.ErrorResponse "slug taken"
// @Router /api/admin/blog/posts [post]
func (h *BlogHandlers) CreatePost(c echo.Context) error {
	var req services.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var authorID *uuid.UUID
	if user, ok := common.GetSessionUser(c); ok {
		id := user.ID
		authorID = &id
	}

	post, err := h.blogService.Create(c.Request().Context(), authorID, req)
	if err != nil {
		return serviceError(err, "Post")
	}
	common.MarkInvalidated(c, caching.ResourceBlogPosts)
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost handles PUT /api/admin/blog/posts/:id
func (h *BlogHandlers) UpdatePost(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req services.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.blogService.Update(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(err, "Post")
	}
	common.MarkInvalidated(c, caching.ResourceBlogPosts)
	return c.JSON(http.StatusOK, post)
}

// DeletePost handles DELETE /api/admin/blog/posts/:id
func (h *BlogHandlers) DeletePost(c echo.Context) error {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.blogService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, "Post")
	}
	common.MarkInvalidated(c, caching.ResourceBlogPosts)
	return c.NoContent(http.StatusNoContent)
}
