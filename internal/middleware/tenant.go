// Package middleware contains the Echo middleware used by the
// gateway: tenant hostname resolution and the response cache.
package middleware

import (
	"net"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Thaihung204/restx-admin-gateway/internal/upstream"
)

// TenantHostKey is the context key the resolved tenant hostname is
// stored under.
const TenantHostKey = "tenant_host"

// ResolveTenant determines which tenant a request is for and stores
// the hostname in the context. The X-Tenant-Host header wins (set by
// the platform edge when it terminates the subdomain), then the
// request Host, then the configured default. The admin. prefix is
// stripped so handlers always see the canonical tenant hostname. The
// hostname is also placed on the request context so the upstream
// client derives this request's API root from it.
func ResolveTenant(defaultHost string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			host := c.Request().Header.Get("X-Tenant-Host")
			if host == "" {
				host = c.Request().Host
			}
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}
			if host == "" || host == "localhost" || host == "127.0.0.1" {
				host = defaultHost
			}
			host = strings.TrimPrefix(host, "admin.")
			c.Set(TenantHostKey, host)
			req := c.Request()
			c.SetRequest(req.WithContext(upstream.WithTenantHost(req.Context(), host)))
			return next(c)
		}
	}
}

// TenantHost reads the hostname stored by ResolveTenant. Empty when
// the middleware did not run.
func TenantHost(c echo.Context) string {
	if v, ok := c.Get(TenantHostKey).(string); ok {
		return v
	}
	return ""
}
