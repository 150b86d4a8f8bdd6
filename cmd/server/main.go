// Package main is the entry point for the millstock API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	v1 "millstock/internal/infrastructure/http/v1"
	"millstock/internal/infrastructure/storage/postgres"
	"millstock/internal/infrastructure/storage/postgres/auth_repo"
	"millstock/internal/infrastructure/storage/postgres/catalog_repo"
	"millstock/internal/infrastructure/storage/postgres/document_repo"
	"millstock/internal/infrastructure/storage/postgres/register_repo"
	"millstock/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting millstock server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Audit ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Auth ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))
	authService := auth.NewService(
		auth_repo.NewUserRepo(txManager),
		txManager,
		jwtService,
		auth.DefaultServiceConfig(),
	)

	// --- Catalogs ---
	products := product.NewService(catalog_repo.NewProductRepo(txManager), txManager)
	factories := factory.NewService(catalog_repo.NewFactoryRepo(txManager), txManager)
	suppliers := supplier.NewService(catalog_repo.NewSupplierRepo(txManager), txManager)
	companies := company.NewService(catalog_repo.NewCompanyRepo(txManager), txManager)
	distributors := distributor.NewService(catalog_repo.NewDistributorRepo(txManager), txManager)

	// --- Registers ---
	stocks := stock.NewService(register_repo.NewStockRepo(txManager))
	boardStocks := boardstock.NewService(register_repo.NewBoardStockRepo(txManager))

	// --- Documents ---
	// Board and reel documents share repos but run through separate
	// service instances scoped to their kind.
	purchaseRepo := document_repo.NewPurchaseRepo(txManager)
	usageRepo := document_repo.NewUsageRepo(txManager)
	swapRepo := document_repo.NewSwapRepo(txManager)

	newPurchases := func(kind product.Kind) *purchase.Service {
		return purchase.NewService(purchase.ServiceConfig{
			Kind:      kind,
			TxManager: txManager,
			Repo:      purchaseRepo,
			Stocks:    stocks,
			Products:  products,
			Factories: factories,
			Suppliers: suppliers,
			Audit:     auditService,
		})
	}
	newUsages := func(kind product.Kind) *usage.Service {
		return usage.NewService(usage.ServiceConfig{
			Kind:      kind,
			TxManager: txManager,
			Repo:      usageRepo,
			Stocks:    stocks,
			Products:  products,
			Factories: factories,
			Audit:     auditService,
		})
	}
	newSwaps := func(kind product.Kind) *swap.Service {
		return swap.NewService(swap.ServiceConfig{
			Kind:      kind,
			TxManager: txManager,
			Repo:      swapRepo,
			Stocks:    stocks,
			Products:  products,
			Factories: factories,
			Audit:     auditService,
		})
	}

	jobCards := jobcard.NewService(jobcard.ServiceConfig{
		TxManager:    txManager,
		Repo:         document_repo.NewJobCardRepo(txManager),
		Stocks:       boardStocks,
		Distributors: distributors,
		Audit:        auditService,
	})

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		Logger:       log,
		JWTValidator: jwtService,
		AuthService:  authService,
		Documents: v1.DocumentServices{
			BoardPurchases: newPurchases(product.KindBoard),
			ReelPurchases:  newPurchases(product.KindReel),
			BoardUsages:    newUsages(product.KindBoard),
			ReelUsages:     newUsages(product.KindReel),
			BoardSwaps:     newSwaps(product.KindBoard),
			ReelSwaps:      newSwaps(product.KindReel),
			JobCards:       jobCards,
		},
		Catalogs: v1.CatalogServices{
			Products:     products,
			Factories:    factories,
			Suppliers:    suppliers,
			Companies:    companies,
			Distributors: distributors,
		},
		Stocks:      stocks,
		BoardStocks: boardStocks,
		ReadOnlyTx:  txManager,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
