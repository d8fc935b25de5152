package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Thaihung204/restx-admin-gateway/internal/upstream"
)

// UploadHandler forwards dashboard image uploads (dish photos, category
// banners, tenant logos) to the backend's upload endpoints.
type UploadHandler struct {
	Client *upstream.Client
}

// NewUploadHandler constructs an UploadHandler.
func NewUploadHandler(c *upstream.Client) *UploadHandler {
	if c == nil {
		panic("nil client passed to NewUploadHandler")
	}
	return &UploadHandler{Client: c}
}

// allowed upload kinds, mapped to the backend path segment.
var uploadKinds = map[string]string{
	"dishes":     "/uploads/dishes",
	"categories": "/uploads/categories",
	"tenants":    "/uploads/tenants",
}

// Upload handles POST /v1/uploads/:kind. The file arrives in the
// "file" form field and the stored URL is returned.
func (h *UploadHandler) Upload(c echo.Context) error {
	path, ok := uploadKinds[c.Param("kind")]
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown upload kind"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file field is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read uploaded file"})
	}
	defer func() { _ = src.Close() }()

	url, err := h.Client.UploadImage(c.Request().Context(), path, "file", fh.Filename, src)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}
