package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/api"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/config"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/database"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/repository"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/scheduler"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	cashFlowRepo := repository.NewCashFlowRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	systemService := service.NewSystemService(db)
	// Create services
	cashFlowService := service.NewCashFlowService(
		cashFlowRepo,
	)
	ledgerService := service.NewLedgerService(
		assetRepo,
		transactionRepo,
		cashFlowService,
	)
	taxService := service.NewTaxService(
		transactionRepo,
		assetRepo,
	)
	snapshotService := service.NewSnapshotService(
		taxService,
		snapshotRepo,
	)
	importService := service.NewImportService(ledgerService)

	// Start the nightly snapshot job
	snapshotJob := scheduler.New(snapshotService)
	if err := snapshotJob.Start(cfg.Snapshot.Schedule); err != nil {
		log.Fatalf("Failed to start snapshot job: %v", err)
	}
	defer snapshotJob.Stop()

	// Create router
	router := api.NewRouter(systemService, ledgerService, taxService, snapshotService, cashFlowService, importService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
