// Package router assembles the HTTP surface: middleware stack, probes and
// the versioned API group all handlers register under.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/retailcore/backoffice/internal/infrastructure/config"
	"github.com/retailcore/backoffice/internal/infrastructure/logger"
	"github.com/retailcore/backoffice/internal/interfaces/http/handler"
	"github.com/retailcore/backoffice/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers collects the handlers the router wires up
type Handlers struct {
	System    *handler.SystemHandler
	Inventory *handler.InventoryHandler
	Returns   *handler.ReturnsHandler
	Finance   *handler.FinanceHandler
	Report    *handler.ReportHandler
}

// New builds the gin engine with the full middleware stack and all routes
func New(cfg *config.Config, log *zap.Logger, handlers Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))

	engine.GET("/health", handlers.System.Health)
	engine.GET("/ready", handlers.System.Ready)

	api := engine.Group("/api/v1")
	{
		api.GET("/stock-items/:id/availability", handlers.Inventory.GetAvailability)
		api.POST("/stock-items/availability", handlers.Inventory.BulkAvailability)
		api.POST("/stock-items/import", handlers.Inventory.ImportStockItems)

		api.POST("/returns", handlers.Returns.CreateDraft)
		api.GET("/returns", handlers.Returns.List)
		api.GET("/returns/:id", handlers.Returns.Get)
		api.POST("/returns/:id/finalize", handlers.Returns.Finalize)
		api.POST("/returns/:id/cancel", handlers.Returns.Cancel)

		api.POST("/credits/apply", handlers.Finance.ApplyCredit)
		api.POST("/orders/:id/recompute", handlers.Finance.RecomputeInvoiceTotals)

		api.GET("/reports/valuation", handlers.Report.Valuation)
	}

	return engine
}
