package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health responds with a fixed payload so load balancers and
// monitoring can verify the gateway is up.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
