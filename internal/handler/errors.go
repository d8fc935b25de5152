// Package handler implements the gateway's HTTP endpoints. Handlers
// stay thin: parse the request, call a service or repository, map the
// error onto a status code.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Thaihung204/restx-admin-gateway/internal/repository"
	"github.com/Thaihung204/restx-admin-gateway/internal/service"
	"github.com/Thaihung204/restx-admin-gateway/internal/upstream"
)

// respondError translates an error from the lower layers into a JSON
// error response. Backend validation errors keep their per-field
// detail so the dashboard can highlight the offending inputs.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict),
		errors.Is(err, service.ErrIllegalTransition),
		errors.Is(err, service.ErrQuickCancelNotAllowed):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, upstream.ErrSessionExpired):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, upstream.ErrUnreachable):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": upstream.ErrUnreachable.Error()})
	}
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		body := echo.Map{"error": apiErr.Message}
		if len(apiErr.Fields) > 0 {
			body["fields"] = apiErr.Fields
		}
		return c.JSON(apiErr.StatusCode, body)
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
