package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop_ledger/internal/config"
	"shop_ledger/internal/handler"
	"shop_ledger/internal/service"
	"shop_ledger/internal/store"
)

type application struct {
	config       *config.Config
	logger       *log.Logger
	shop         *service.ShopService
	server       *http.Server
	shutdownChan chan struct{}
	reporterDone chan struct{}
}

func main() {
	logger := log.New(os.Stdout, "", log.Ldate|log.Ltime|log.Lshortfile)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.StatsInterval <= 0 {
		logger.Fatalf("StatsInterval must be a positive duration. Check configuration.")
	}

	users := store.NewUsers()
	purchases := store.NewPurchases(users)
	payments := store.NewPayments(purchases)
	shop := service.NewShopService(logger, users, purchases, payments)

	app := &application{
		config:       cfg,
		logger:       logger,
		shop:         shop,
		shutdownChan: make(chan struct{}),
		reporterDone: make(chan struct{}),
	}

	go app.runStatsReporter()

	app.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      handler.NewRouter(logger, shop),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     logger,
	}

	app.serve()
}

func (app *application) serve() {
	app.logger.Printf("Starting server on %s", app.server.Addr)

	errChan := make(chan error)
	go func() {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		app.logger.Fatalf("Server error: %v", err)
	case sig := <-quit:
		app.logger.Printf("Received signal %s. Shutting down server...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app.logger.Println("Signaling stats reporter to stop...")
	close(app.shutdownChan)
	select {
	case <-app.reporterDone:
		app.logger.Println("Stats reporter stopped.")
	case <-time.After(10 * time.Second):
		app.logger.Println("Stats reporter did not stop in time.")
	}

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Printf("Graceful server shutdown failed: %v", err)
	} else {
		app.logger.Println("Server gracefully stopped.")
	}

	app.logger.Println("Application shut down complete.")
}

func (app *application) runStatsReporter() {
	defer close(app.reporterDone)

	ticker := time.NewTicker(app.config.StatsInterval)
	defer ticker.Stop()

	app.logger.Printf("Stats reporter started. Will run every %s.", app.config.StatsInterval.String())

	for {
		select {
		case <-ticker.C:
			users, purchases, payments := app.shop.Counts()
			app.logger.Printf("Stats: %d users, %d purchases, %d payments, %d paid purchases",
				users, purchases, payments, app.shop.AdminCountPaidPurchases())
		case <-app.shutdownChan:
			app.logger.Println("Stats reporter: Received shutdown signal. Stopping...")
			return
		}
	}
}
