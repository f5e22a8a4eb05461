package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/folio/backend/internal/config"
	"github.com/folio/backend/internal/handler"
	"github.com/folio/backend/internal/logging"
	"github.com/folio/backend/internal/metrics"
	"github.com/folio/backend/internal/repository"
	"github.com/folio/backend/internal/service"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	ctx := context.Background()
	contactRepo, closeStore, err := repository.Open(ctx, cfg.Store)
	if err != nil {
		logging.Fatal("failed to open contact store", "driver", cfg.Store.Driver, "error", err)
	}
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := contactRepo.Ping(pingCtx); err != nil {
		slog.Warn("contact store unreachable, serving anyway", "driver", cfg.Store.Driver, "error", err)
	}
	cancelPing()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(reg)
	}

	contactService := service.NewContactService(contactRepo, service.Rules{
		RequireNonEmpty:  cfg.Contact.RequireNonEmpty,
		MaxMessageLength: cfg.Contact.MaxMessageLength,
	})

	router := handler.NewRouter(handler.RouterConfig{
		Handler:        handler.New(contactRepo, cfg.Health.CheckStorage),
		Contacts:       handler.NewContactHandler(contactService, m),
		Metrics:        m,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "store", cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	if err := closeStore(shutdownCtx); err != nil {
		slog.Error("closing contact store", "error", err)
	}
	slog.Info("server stopped")
}
