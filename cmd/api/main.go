package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nearfin/near/internal/config"
	"github.com/nearfin/near/internal/database"
	"github.com/nearfin/near/internal/export"
	nearHttp "github.com/nearfin/near/internal/http"
	accountHandler "github.com/nearfin/near/internal/http/account"
	budgetHandler "github.com/nearfin/near/internal/http/budget"
	categoryHandler "github.com/nearfin/near/internal/http/category"
	exportHandler "github.com/nearfin/near/internal/http/export"
	importHandler "github.com/nearfin/near/internal/http/importfile"
	reportHandler "github.com/nearfin/near/internal/http/report"
	txHandler "github.com/nearfin/near/internal/http/transaction"
	"github.com/nearfin/near/internal/importer"
	"github.com/nearfin/near/internal/importer/csvfile"
	"github.com/nearfin/near/internal/importer/jsonfile"
	"github.com/nearfin/near/internal/ledger"
	ledgerStore "github.com/nearfin/near/internal/ledger/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.Data.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slot, err := ledgerStore.New(db)
	if err != nil {
		slog.Error("failed to prepare state store", "error", err)
		os.Exit(1)
	}

	ledgerService := ledger.NewService(slot)
	if err := ledgerService.Init(context.Background()); err != nil {
		slog.Error("failed to load state", "error", err)
		os.Exit(1)
	}

	var (
		importService = importer.NewService(csvfile.New(), jsonfile.New())
		exportService = export.NewService()
	)

	var (
		accountH  = accountHandler.NewHandler(ledgerService)
		txH       = txHandler.NewHandler(ledgerService)
		categoryH = categoryHandler.NewHandler(ledgerService)
		budgetH   = budgetHandler.NewHandler(ledgerService)
		reportH   = reportHandler.NewHandler(ledgerService)
		importH   = importHandler.NewHandler(importService, ledgerService)
		exportH   = exportHandler.NewHandler(exportService, ledgerService)
	)

	router := nearHttp.New(cfg.Server.AllowedOrigins,
		accountH, txH, categoryH, budgetH, reportH, importH, exportH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		slog.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr, "data", cfg.Data.Path)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	// Teardown save so the slot holds the latest snapshot even if an earlier
	// background write failed.
	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := ledgerService.Close(closeCtx); err != nil {
		slog.Error("failed to save state on shutdown", "error", err)
	}
}
