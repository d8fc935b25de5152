package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Thaihung204/restx-admin-gateway/internal/config"
	"github.com/Thaihung204/restx-admin-gateway/internal/handler"
	"github.com/Thaihung204/restx-admin-gateway/internal/model"
	"github.com/Thaihung204/restx-admin-gateway/internal/queue"
	"github.com/Thaihung204/restx-admin-gateway/internal/repository"
	"github.com/Thaihung204/restx-admin-gateway/internal/router"
	"github.com/Thaihung204/restx-admin-gateway/internal/service"
	"github.com/Thaihung204/restx-admin-gateway/internal/upstream"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	rdb := config.NewRedisClient()

	// Credential pair for the remote backend: Redis-persisted when
	// available so replicas share one session, in-memory otherwise.
	var tokens upstream.TokenStore
	if rdb != nil {
		tokens = upstream.NewRedisTokenStore(rdb, "auth:token")
	} else {
		tokens = upstream.NewMemoryTokenStore()
	}
	if cfg.AccessToken != "" || cfg.RefreshSeed != "" {
		seed := upstream.Token{AccessToken: cfg.AccessToken, RefreshToken: cfg.RefreshSeed}
		if err := tokens.Save(context.Background(), seed); err != nil {
			log.Printf("token seed failed: %v", err)
		}
	}

	client := upstream.New(cfg.APIBaseURL, cfg.TenantHost, tokens)
	client.OnSessionExpired = func() {
		log.Printf("backend session expired; credentials cleared, re-seed tokens to continue")
	}

	pub := queue.NewPublisher(cfg.RabbitURL)
	if cfg.RabbitURL != "" {
		go queue.StartAuditConsumer(cfg.RabbitURL)
	}

	reservations := service.NewReservationService(repository.NewHTTPReservationRepo(client), pub)
	tenants := service.NewTenantService(repository.NewTenants(client))
	suppliers := service.NewSupplierService(repository.NewSuppliers(client))

	e := echo.New()
	router.Register(e, router.Deps{
		Reservations:         handler.NewReservationHandler(reservations),
		Tenants:              handler.NewTenantHandler(tenants),
		Suppliers:            handler.NewSupplierHandler(suppliers),
		Categories:           handler.NewCrudHandler[model.Category](repository.NewCategories(client)),
		Ingredients:          handler.NewCrudHandler[model.Ingredient](repository.NewIngredients(client)),
		IngredientCategories: handler.NewCrudHandler[model.IngredientCategory](repository.NewIngredientCategories(client)),
		Dishes:               handler.NewCrudHandler[model.Dish](repository.NewDishes(client)),
		Uploads:              handler.NewUploadHandler(client),
		Rdb:                  rdb,
		CacheTTL:             cfg.CacheTTL,
		CacheOn:              cfg.CacheOn,
		TenantHost:           cfg.TenantHost,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, api=%s)", addr, cfg.Env, client.Root(context.Background()))
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
