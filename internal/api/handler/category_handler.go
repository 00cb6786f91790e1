package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workmania/timetrack/internal/core/domain"
	"github.com/workmania/timetrack/internal/core/ports"
)

// CategoryHandler handles category CRUD, including the archive flag.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// --- Request / Response types ---

type createCategoryRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"required,hexcolor"`
}

type updateCategoryRequest struct {
	Name       *string `json:"name"`
	Color      *string `json:"color"`
	IsArchived *bool   `json:"is_archived"`
}

type categoryResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
}

func toCategoryResponse(c *domain.Category) categoryResponse {
	return categoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		Color:      c.Color,
		IsArchived: c.IsArchived,
		CreatedAt:  c.CreatedAt,
	}
}

// List handles GET /v1/categories. Active categories come first, archived
// last, so pickers can cut the list at the first archived item.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}   categoryResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	categories, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	resp := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, toCategoryResponse(cat))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /v1/categories.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      createCategoryRequest  true  "Name and display color"
// @Success      201   {object}  categoryResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.service.Create(c.Request().Context(), ports.CreateCategoryInput{
		UserID: userID,
		Name:   req.Name,
		Color:  req.Color,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// Update handles PATCH /v1/categories/:id — rename, recolor, or archive.
//
// @Summary      Edit a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Category id"
// @Param        body  body      updateCategoryRequest  true  "Fields to change"
// @Success      200   {object}  categoryResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/categories/{id} [patch]
func (h *CategoryHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	category, err := h.service.Update(c.Request().Context(), ports.UpdateCategoryInput{
		UserID:     userID,
		CategoryID: c.Param("id"),
		Patch: ports.CategoryPatch{
			Name:       req.Name,
			Color:      req.Color,
			IsArchived: req.IsArchived,
		},
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// Delete handles DELETE /v1/categories/:id. A category still referenced by
// entries is rejected with 409; archive it instead.
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Param        id  path      string  true  "Category id"
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string  "category still in use"
// @Router       /v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
