package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/api/handlers"
	custommiddleware "github.com/grahamfin/Graham-Ledger-Backend/internal/api/middleware"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/config"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(systemService *service.SystemService, ledgerService *service.LedgerService, taxService *service.TaxService, snapshotService *service.SnapshotService, cashFlowService *service.CashFlowService, importService *service.ImportService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(ledgerService)
			r.Get("/", assetHandler.AllAssets)
			r.With(custommiddleware.ValidateTickerMiddleware).
				Get("/{ticker}", assetHandler.GetAsset)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(ledgerService)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/tax", func(r chi.Router) {
			taxHandler := handlers.NewTaxHandler(taxService, snapshotService)
			r.Get("/closed-positions", taxHandler.ClosedPositions)
			r.Get("/summary", taxHandler.Summary)
			r.Get("/snapshot", taxHandler.Snapshot)
		})

		r.Route("/cashflow", func(r chi.Router) {
			cashFlowHandler := handlers.NewCashFlowHandler(cashFlowService)
			r.Get("/", cashFlowHandler.AllEntries)
		})

		r.Route("/import", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware)
			importHandler := handlers.NewImportHandler(importService)
			r.Post("/note", importHandler.ImportNote)
		})
	})

	return r
}
