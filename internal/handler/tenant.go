package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Thaihung204/restx-admin-gateway/internal/middleware"
	"github.com/Thaihung204/restx-admin-gateway/internal/model"
	"github.com/Thaihung204/restx-admin-gateway/internal/service"
)

// TenantHandler exposes tenant management plus the current-tenant
// lookup driven by the request's resolved hostname.
type TenantHandler struct {
	Svc *service.TenantService
}

// NewTenantHandler constructs a TenantHandler.
func NewTenantHandler(svc *service.TenantService) *TenantHandler {
	if svc == nil {
		panic("nil service passed to NewTenantHandler")
	}
	return &TenantHandler{Svc: svc}
}

// List handles GET /v1/tenants.
func (h *TenantHandler) List(c echo.Context) error {
	items, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	if items == nil {
		items = []model.Tenant{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get handles GET /v1/tenants/:id.
func (h *TenantHandler) Get(c echo.Context) error {
	item, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// Current handles GET /v1/tenant and returns the tenant the request's
// hostname resolves to.
func (h *TenantHandler) Current(c echo.Context) error {
	host := middleware.TenantHost(c)
	if host == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant hostname could not be resolved"})
	}
	item, err := h.Svc.GetByHostname(c.Request().Context(), host)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// Create handles POST /v1/tenants.
func (h *TenantHandler) Create(c echo.Context) error {
	var in model.Tenant
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	item, err := h.Svc.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": item})
}

// Update handles PUT /v1/tenants/:id.
func (h *TenantHandler) Update(c echo.Context) error {
	var in model.Tenant
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	item, err := h.Svc.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// Delete handles DELETE /v1/tenants/:id.
func (h *TenantHandler) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
