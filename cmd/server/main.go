package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shopspring/decimal"

	"restaurant-pos/internal/billing"
	"restaurant-pos/internal/config"
	"restaurant-pos/internal/events"
	"restaurant-pos/internal/handlers"
	"restaurant-pos/internal/middleware"
	"restaurant-pos/internal/overdue"
	"restaurant-pos/internal/promo"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/status"
	"restaurant-pos/internal/store"
	"restaurant-pos/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting restaurant pos server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"tax_rate_percent", cfg.Billing.TaxRatePercent,
		"log_level", cfg.LogLevel,
	)

	// External collaborators: catalog and table registry
	catalog := repository.NewInMemoryCatalog()
	tables := repository.DefaultTables(10)

	// Domain engine
	machine := status.NewMachine(status.DefaultPolicy())
	orderStore := store.New(machine, tables, time.Now)
	calculator := billing.NewCalculator(cfg.Billing.TaxRatePercent, cfg.Billing.ServiceChargePercent)
	monitor := overdue.NewMonitor(time.Duration(cfg.Overdue.ThresholdMinutes)*time.Minute, time.Now)

	promos := promo.NewResolver()
	promos.Load(map[string]decimal.Decimal{
		"WELCOME10": decimal.NewFromInt(10),
		"FESTIVE20": decimal.NewFromInt(20),
		"LOYALTY15": decimal.NewFromInt(15),
	})

	// Optional order event publishing for out-of-process displays
	if cfg.AMQPURL != "" {
		publisher, err := events.NewPublisher(cfg.AMQPURL, log)
		if err != nil {
			log.Error("failed to connect event publisher", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		orderStore.AddListener(publisher.Listen)
		log.Info("order event publishing enabled")
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	menuHandler := handlers.NewMenuHandler(catalog, log)
	orderHandler := handlers.NewOrderHandler(orderStore, catalog, monitor, log)
	billingHandler := handlers.NewBillingHandler(orderStore, calculator, promos, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "terminal_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes; every terminal authenticates with its key
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.TerminalAuth(cfg.Auth))

		r.Get("/menu/categories", menuHandler.ListCategories)
		r.Get("/menu/items", menuHandler.ListItems)

		r.Get("/tables", orderHandler.ListTables)

		r.Post("/orders", orderHandler.Create)
		r.Get("/orders", orderHandler.List)
		r.Get("/orders/{orderID}", orderHandler.Get)
		r.Post("/orders/{orderID}/status", orderHandler.UpdateStatus)
		r.Post("/orders/{orderID}/payment", billingHandler.Pay)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
