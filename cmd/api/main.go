package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/oyvindh/bankbook/internal/bank"
	"github.com/oyvindh/bankbook/internal/config"
	"github.com/oyvindh/bankbook/internal/gradebook"
	"github.com/oyvindh/bankbook/internal/handler"
	"github.com/oyvindh/bankbook/internal/middleware"
	"github.com/oyvindh/bankbook/internal/scheduler"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration from environment
	cfg := config.Load(log)

	// Initialize the in-memory domain state
	ledger := bank.NewLedger()
	registry := gradebook.NewRegistry()

	// Initialize handlers
	bankHandler := handler.NewBankHandler(ledger, log)
	gradebookHandler := handler.NewGradebookHandler(registry, log)

	// Set up router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)    // Logs each request
	r.Use(chimiddleware.Recoverer) // Recovers from panics gracefully
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/v1", func(r chi.Router) {
		bankHandler.RegisterRoutes(r)
		gradebookHandler.RegisterRoutes(r)
	})

	// Interest scheduler: credits savings interest on each cycle
	if cfg.InterestEnabled {
		sched := scheduler.New(log)
		if err := sched.ScheduleMonthlyInterest(cfg.InterestSchedule, ledger); err != nil {
			log.Fatalf("Failed to schedule interest job: %v", err)
		}
		sched.Start()
		defer sched.Stop()
		log.WithField("schedule", cfg.InterestSchedule).Info("Interest scheduler started")
	}

	// Start server
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	// Graceful shutdown setup
	go func() {
		log.Infof("Server starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
