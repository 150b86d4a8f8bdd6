// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"millstock/internal/core/tx"
	"millstock/internal/domain/auth"
	"millstock/internal/domain/catalogs/company"
	"millstock/internal/domain/catalogs/distributor"
	"millstock/internal/domain/catalogs/factory"
	"millstock/internal/domain/catalogs/product"
	"millstock/internal/domain/catalogs/supplier"
	"millstock/internal/domain/documents/jobcard"
	"millstock/internal/domain/documents/purchase"
	"millstock/internal/domain/documents/swap"
	"millstock/internal/domain/documents/usage"
	"millstock/internal/domain/registers/boardstock"
	"millstock/internal/domain/registers/stock"
	"millstock/internal/infrastructure/http/v1/handlers"
	"millstock/internal/infrastructure/http/v1/middleware"
	"millstock/internal/infrastructure/storage/postgres"
	"millstock/pkg/logger"
)

// DocumentServices groups the per-kind document service instances.
// Board and reel documents run through separate instances of the same
// service types, mounted on separate route groups.
type DocumentServices struct {
	BoardPurchases *purchase.Service
	ReelPurchases  *purchase.Service
	BoardUsages    *usage.Service
	ReelUsages     *usage.Service
	BoardSwaps     *swap.Service
	ReelSwaps      *swap.Service
	JobCards       *jobcard.Service
}

// CatalogServices groups the catalog service instances.
type CatalogServices struct {
	Products     *product.Service
	Factories    *factory.Service
	Suppliers    *supplier.Service
	Companies    *company.Service
	Distributors *distributor.Service
}

// RouterConfig holds router configuration.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	JWTValidator middleware.JWTValidator
	AuthService  *auth.Service

	Documents DocumentServices
	Catalogs  CatalogServices

	Stocks      *stock.Service
	BoardStocks *boardstock.Service

	// ReadOnlyTx serves the stock register's read endpoints.
	ReadOnlyTx tx.ReadOnlyManager
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	healthHandler.RegisterRoutes(router.Group("/health"))

	authHandler := handlers.NewAuthHandler(cfg.AuthService)

	api := router.Group("/api/v1")

	// Login is public; everything else under /auth needs a token.
	authHandler.RegisterPublicRoutes(api.Group("/auth"))
	authHandler.RegisterUserRoutes(api.Group("/auth", middleware.Auth(cfg.JWTValidator)))

	// User management is the only admin-gated surface.
	authHandler.RegisterAdminRoutes(api.Group("/users",
		middleware.Auth(cfg.JWTValidator),
		middleware.RequireAdmin(),
	))

	// Business routes accept but do not require a token: when one is
	// supplied the audit trail carries the actor.
	business := api.Group("", middleware.OptionalAuth(cfg.JWTValidator))

	// Catalogs
	handlers.NewProductHandler(cfg.Catalogs.Products).RegisterRoutes(business.Group("/products"))
	handlers.NewFactoryHandler(cfg.Catalogs.Factories).RegisterRoutes(business.Group("/factories"))
	handlers.NewSupplierHandler(cfg.Catalogs.Suppliers).RegisterRoutes(business.Group("/suppliers"))
	handlers.NewCompanyHandler(cfg.Catalogs.Companies).RegisterRoutes(business.Group("/companies"))
	handlers.NewDistributorHandler(cfg.Catalogs.Distributors).RegisterRoutes(business.Group("/distributors"))

	// Documents, one group per kind
	handlers.NewPurchaseHandler(cfg.Documents.BoardPurchases, product.KindBoard).RegisterRoutes(business.Group("/purchases"))
	handlers.NewPurchaseHandler(cfg.Documents.ReelPurchases, product.KindReel).RegisterRoutes(business.Group("/reel-purchases"))
	handlers.NewUsageHandler(cfg.Documents.BoardUsages, product.KindBoard).RegisterRoutes(business.Group("/usages"))
	handlers.NewUsageHandler(cfg.Documents.ReelUsages, product.KindReel).RegisterRoutes(business.Group("/reel-usages"))
	handlers.NewSwapHandler(cfg.Documents.BoardSwaps, product.KindBoard).RegisterRoutes(business.Group("/swaps"))
	handlers.NewSwapHandler(cfg.Documents.ReelSwaps, product.KindReel).RegisterRoutes(business.Group("/reel-swaps"))
	handlers.NewJobCardHandler(cfg.Documents.JobCards).RegisterRoutes(business.Group("/job-cards"))

	// Stock registers
	handlers.NewStockHandler(cfg.Stocks, cfg.ReadOnlyTx).RegisterRoutes(business.Group("/stocks"))
	handlers.NewBoardStockHandler(cfg.BoardStocks).RegisterRoutes(business.Group("/board-stocks"))

	return router
}
