package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Thaihung204/restx-admin-gateway/internal/model"
	"github.com/Thaihung204/restx-admin-gateway/internal/service"
	"github.com/Thaihung204/restx-admin-gateway/internal/workflow"
)

// ReservationHandler exposes the reservation workflow endpoints.
type ReservationHandler struct {
	Svc *service.ReservationService
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Svc: svc}
}

// List handles GET /v1/reservations. Query parameters: pageNumber,
// pageSize, search, statusId, date (YYYY-MM-DD), sortBy,
// sortDescending. Each row is returned together with the actions the
// dashboard may offer for it, so the table never derives transitions
// on its own. Backend failures surface as an empty page, not a 5xx.
func (h *ReservationHandler) List(c echo.Context) error {
	f := model.ReservationFilter{
		Search: c.QueryParam("search"),
		SortBy: c.QueryParam("sortBy"),
	}
	f.PageNumber, _ = strconv.Atoi(c.QueryParam("pageNumber"))
	f.PageSize, _ = strconv.Atoi(c.QueryParam("pageSize"))
	f.SortDescending, _ = strconv.ParseBool(c.QueryParam("sortDescending"))
	if v := c.QueryParam("statusId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid statusId"})
		}
		f.StatusID = id
	}
	if v := c.QueryParam("date"); v != "" {
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		f.Date = v
	}

	page := h.Svc.List(c.Request().Context(), f)

	type row struct {
		model.ReservationSummary
		Actions service.ReservationActions `json:"offered"`
	}
	rows := make([]row, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, row{ReservationSummary: item, Actions: service.ActionsFor(item.Status)})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":      rows,
		"pagination": page.Pagination,
	})
}

// Get handles GET /v1/reservations/:id and returns the full aggregate
// plus its offered actions.
func (h *ReservationHandler) Get(c echo.Context) error {
	res, err := h.Svc.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"item":    res,
		"offered": service.ActionsFor(res.Status),
	})
}

// Actions handles GET /v1/reservations/:id/actions.
func (h *ReservationHandler) Actions(c echo.Context) error {
	acts, err := h.Svc.Actions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, acts)
}

type updateStatusReq struct {
	StatusID int `json:"statusId"`
}

// UpdateStatus handles PUT /v1/reservations/:id/status. The service
// refuses targets not offered for the current status, so nothing is
// forwarded to the backend for an illegal request.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusReq
	if err := c.Bind(&req); err != nil || req.StatusID < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "statusId is required"})
	}
	if err := h.Svc.TransitionStatus(c.Request().Context(), c.Param("id"), req.StatusID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// QuickCancel handles DELETE /v1/reservations/:id.
func (h *ReservationHandler) QuickCancel(c echo.Context) error {
	if err := h.Svc.QuickCancel(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Statuses handles GET /v1/reservation-statuses, feeding the
// dashboard's filter dropdown with the full lookup table.
func (h *ReservationHandler) Statuses(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": workflow.Statuses()})
}
