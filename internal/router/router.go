// Package router defines how HTTP routes are registered for the
// gateway.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Thaihung204/restx-admin-gateway/internal/handler"
	"github.com/Thaihung204/restx-admin-gateway/internal/middleware"
	"github.com/Thaihung204/restx-admin-gateway/internal/model"
)

// Deps bundles everything the routes need. Rdb may be nil (caching
// off); the catalog handlers are generic, so each entity arrives as
// its own ready-built handler.
type Deps struct {
	Reservations         *handler.ReservationHandler
	Tenants              *handler.TenantHandler
	Suppliers            *handler.SupplierHandler
	Categories           *handler.CrudHandler[model.Category]
	Ingredients          *handler.CrudHandler[model.Ingredient]
	IngredientCategories *handler.CrudHandler[model.IngredientCategory]
	Dishes               *handler.CrudHandler[model.Dish]
	Uploads              *handler.UploadHandler

	Rdb        *redis.Client
	CacheTTL   time.Duration
	CacheOn    bool
	TenantHost string
}

// Register mounts all routes on the Echo instance. Catalog GETs are
// served through the Redis cache; reservation routes stay live so an
// operator always sees the current status before acting on it.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")
	v1.Use(middleware.ResolveTenant(d.TenantHost))

	// Reservation workflow, uncached.
	v1.GET("/reservation-statuses", d.Reservations.Statuses)
	v1.GET("/reservations", d.Reservations.List)
	v1.GET("/reservations/:id", d.Reservations.Get)
	v1.GET("/reservations/:id/actions", d.Reservations.Actions)
	v1.PUT("/reservations/:id/status", d.Reservations.UpdateStatus)
	v1.DELETE("/reservations/:id", d.Reservations.QuickCancel)

	// Catalog, cached on GET when Redis is available.
	catalog := e.Group("/v1")
	catalog.Use(middleware.ResolveTenant(d.TenantHost))
	if d.CacheOn && d.Rdb != nil {
		catalog.Use(middleware.CacheGET(d.Rdb, d.CacheTTL))
	}
	d.Categories.Register(catalog, "/categories")
	d.IngredientCategories.Register(catalog, "/ingredients/categories")
	d.Ingredients.Register(catalog, "/ingredients")
	d.Dishes.Register(catalog, "/dishes")

	catalog.GET("/suppliers", d.Suppliers.List)
	catalog.GET("/suppliers/:id", d.Suppliers.Get)
	catalog.POST("/suppliers", d.Suppliers.Create)
	catalog.PUT("/suppliers/:id", d.Suppliers.Update)
	catalog.DELETE("/suppliers/:id", d.Suppliers.Delete)
	catalog.POST("/suppliers/:id/toggle-active", d.Suppliers.ToggleActive)

	catalog.GET("/tenant", d.Tenants.Current)
	catalog.GET("/tenants", d.Tenants.List)
	catalog.GET("/tenants/:id", d.Tenants.Get)
	catalog.POST("/tenants", d.Tenants.Create)
	catalog.PUT("/tenants/:id", d.Tenants.Update)
	catalog.DELETE("/tenants/:id", d.Tenants.Delete)

	v1.POST("/uploads/:kind", d.Uploads.Upload)
}
