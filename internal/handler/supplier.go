package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Thaihung204/restx-admin-gateway/internal/model"
	"github.com/Thaihung204/restx-admin-gateway/internal/service"
)

// SupplierHandler is the CrudHandler for suppliers plus the
// active-flag toggle endpoint.
type SupplierHandler struct {
	Svc *service.SupplierService
}

// NewSupplierHandler constructs a SupplierHandler.
func NewSupplierHandler(svc *service.SupplierService) *SupplierHandler {
	if svc == nil {
		panic("nil service passed to NewSupplierHandler")
	}
	return &SupplierHandler{Svc: svc}
}

// List handles GET /v1/suppliers.
func (h *SupplierHandler) List(c echo.Context) error {
	items, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	if items == nil {
		items = []model.Supplier{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/suppliers/:id.
func (h *SupplierHandler) Get(c echo.Context) error {
	item, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// Create handles POST /v1/suppliers.
func (h *SupplierHandler) Create(c echo.Context) error {
	var in model.Supplier
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	item, err := h.Svc.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": item})
}

// Update handles PUT /v1/suppliers/:id.
func (h *SupplierHandler) Update(c echo.Context) error {
	var in model.Supplier
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	item, err := h.Svc.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// Delete handles DELETE /v1/suppliers/:id.
func (h *SupplierHandler) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleActive handles POST /v1/suppliers/:id/toggle-active.
func (h *SupplierHandler) ToggleActive(c echo.Context) error {
	item, err := h.Svc.ToggleActive(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}
