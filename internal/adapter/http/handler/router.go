package handler

import (
	"invoice-wallet-engine/internal/adapter/http/middleware"
	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	IssuanceSvc    ports.IssuanceOrchestrator
	WalletSvc      ports.WalletLifecycle
	ReserveSvc     ports.ReserveLedger
	Monitor        ports.HealthMonitor
	IssuanceRepo   ports.IssuanceRepository
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Infrastructure health (PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1 routes
	v1 := r.Group("/api/v1")

	issuanceHandler := NewIssuanceHandler(deps.IssuanceSvc, deps.IssuanceRepo)
	walletHandler := NewWalletHandler(deps.WalletSvc, deps.IssuanceRepo)
	invoiceWallets := v1.Group("/invoice-wallets")
	{
		invoiceWallets.POST("/:mode", issuanceHandler.Issue)
		invoiceWallets.GET("/:id", walletHandler.Get)
		invoiceWallets.PATCH("/:id/deactivate", walletHandler.Deactivate)
	}

	issuances := v1.Group("/issuances")
	{
		issuances.GET("/:transaction_id", issuanceHandler.GetRecord)
	}

	providerHandler := NewProviderHandler(deps.Monitor)
	providers := v1.Group("/providers")
	{
		providers.GET("/health", providerHandler.ListHealth)
		providers.POST("/health/probe", providerHandler.Probe)
	}

	reserveHandler := NewReserveHandler(deps.ReserveSvc)
	reserves := v1.Group("/reserves")
	{
		reserves.GET("/balance", reserveHandler.List)
		reserves.GET("/balance/:currency", reserveHandler.Get)
	}

	return r
}
