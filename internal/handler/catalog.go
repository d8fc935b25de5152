package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Thaihung204/restx-admin-gateway/internal/repository"
)

// CrudHandler serves the standard list/get/create/update/delete
// endpoints for one catalog entity. All six catalog entities share the
// same REST shape, so the handler is generic over the model type.
type CrudHandler[T any] struct {
	Repo repository.Crud[T]
}

// NewCrudHandler constructs a CrudHandler over the given repository.
func NewCrudHandler[T any](repo repository.Crud[T]) *CrudHandler[T] {
	return &CrudHandler[T]{Repo: repo}
}

// List handles GET on the collection.
func (h *CrudHandler[T]) List(c echo.Context) error {
	items, err := h.Repo.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET on a single record.
func (h *CrudHandler[T]) Get(c echo.Context) error {
	item, err := h.Repo.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// Create handles POST on the collection.
func (h *CrudHandler[T]) Create(c echo.Context) error {
	var in T
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	item, err := h.Repo.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": item})
}

// Update handles PUT on a single record.
func (h *CrudHandler[T]) Update(c echo.Context) error {
	var in T
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	item, err := h.Repo.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// Delete handles DELETE on a single record.
func (h *CrudHandler[T]) Delete(c echo.Context) error {
	if err := h.Repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Register mounts the five routes on a group under the given prefix.
func (h *CrudHandler[T]) Register(g *echo.Group, prefix string) {
	g.GET(prefix, h.List)
	g.GET(prefix+"/:id", h.Get)
	g.POST(prefix, h.Create)
	g.PUT(prefix+"/:id", h.Update)
	g.DELETE(prefix+"/:id", h.Delete)
}
