package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	financeapp "github.com/retailcore/backoffice/internal/application/finance"
	inventoryapp "github.com/retailcore/backoffice/internal/application/inventory"
	reportapp "github.com/retailcore/backoffice/internal/application/report"
	tradeapp "github.com/retailcore/backoffice/internal/application/trade"
	"github.com/retailcore/backoffice/internal/domain/report"
	"github.com/retailcore/backoffice/internal/domain/shared/valueobject"
	"github.com/retailcore/backoffice/internal/infrastructure/config"
	"github.com/retailcore/backoffice/internal/infrastructure/logger"
	"github.com/retailcore/backoffice/internal/infrastructure/persistence"
	"github.com/retailcore/backoffice/internal/interfaces/http/handler"
	"github.com/retailcore/backoffice/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting back office",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	rates, err := buildRateTable(cfg.Valuation)
	if err != nil {
		log.Fatal("Invalid valuation configuration", zap.Error(err))
	}

	// Repositories and the shared transaction scope
	scope := persistence.NewGormScope(db.DB)
	stockItemRepo := persistence.NewGormStockItemRepository(db.DB)
	reservationReader := persistence.NewGormReservationReader(db.DB)

	// Application services
	ledgerService := financeapp.NewLedgerService(scope, log.Named("ledger"))
	creditService := financeapp.NewCreditService(scope, ledgerService, log.Named("credit"))
	returnService := tradeapp.NewReturnService(scope, ledgerService, log.Named("returns"))
	availabilityService := inventoryapp.NewAvailabilityService(scope, stockItemRepo, reservationReader, log.Named("availability"))
	importService := inventoryapp.NewImportService(scope, log.Named("import"))
	valuationService := reportapp.NewValuationService(stockItemRepo, rates, log.Named("valuation"))

	engine := router.New(cfg, log, router.Handlers{
		System:    handler.NewSystemHandler(db),
		Inventory: handler.NewInventoryHandler(availabilityService, importService),
		Returns:   handler.NewReturnsHandler(returnService),
		Finance:   handler.NewFinanceHandler(creditService, ledgerService),
		Report:    handler.NewReportHandler(valuationService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// buildRateTable parses the configured conversion rates into the domain
// rate table used by the valuation report
func buildRateTable(cfg config.ValuationConfig) (report.RateTable, error) {
	base := valueobject.Currency(strings.ToUpper(cfg.BaseCurrency))

	rates := make(map[valueobject.Currency]decimal.Decimal, len(cfg.Rates))
	for code, raw := range cfg.Rates {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return report.RateTable{}, err
		}
		rates[valueobject.Currency(strings.ToUpper(code))] = rate
	}

	markup, err := decimal.NewFromString(cfg.ConversionMarkupPercent)
	if err != nil {
		return report.RateTable{}, err
	}

	return report.NewRateTable(base, rates, markup)
}
