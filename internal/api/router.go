package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/clinivent/clinivent/internal/app"
	iauth "github.com/clinivent/clinivent/internal/auth"
	"github.com/clinivent/clinivent/internal/handlers"
	"github.com/clinivent/clinivent/internal/middleware"
	"github.com/clinivent/clinivent/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	users, err := services.NewUserService(db)
	if err != nil {
		return nil, err
	}
	clinics, err := services.NewClinicService(db)
	if err != nil {
		return nil, err
	}
	stock, err := services.NewStockService(db)
	if err != nil {
		return nil, err
	}
	categories, err := services.NewCategoryService(db)
	if err != nil {
		return nil, err
	}
	items, err := services.NewItemService(db)
	if err != nil {
		return nil, err
	}
	transactions, err := services.NewTransactionService(db,
		services.WithTransactionLocation(cfg.Export.Location()),
	)
	if err != nil {
		return nil, err
	}
	invites, err := services.NewInviteService(db,
		services.WithInviteExpiry(cfg.Invites.Expiry),
		services.WithInviteTokenLength(cfg.Invites.TokenLength),
	)
	if err != nil {
		return nil, err
	}
	exports, err := services.NewExportService(stock, transactions,
		services.WithExportLocation(cfg.Export.Location()),
	)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	r.GET("/health", handlers.Health(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(users, jwt)

	// Public auth routes
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	requireAuth := middleware.Auth(jwt)

	api := r.Group("/api")
	api.Use(requireAuth)

	api.GET("/auth/me", authHandler.Me)

	registerClinicRoutes(api, handlers.NewClinicHandler(clinics))
	registerInventoryRoutes(api,
		handlers.NewDashboardHandler(clinics, stock),
		handlers.NewCategoryHandler(clinics, categories),
		handlers.NewItemHandler(clinics, items),
		handlers.NewTransactionHandler(clinics, transactions),
	)
	registerInviteRoutes(api, handlers.NewInviteHandler(clinics, invites))
	registerExportRoutes(api, handlers.NewExportHandler(clinics, exports))

	return r, nil
}

// Server timeouts applied by cmd/server when building the http.Server.
const (
	ReadHeaderTimeout = 10 * time.Second
	ShutdownTimeout   = 15 * time.Second
)
