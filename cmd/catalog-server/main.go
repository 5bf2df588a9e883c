package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	catalog "github.com/goliatone/go-catalog"
)

func main() {
	addr := flag.String("addr", envOr("CATALOG_ADDR", ":8080"), "listen address")
	dbPath := flag.String("db", envOr("CATALOG_DB", "catalog.db"), "path to the SQLite database")
	password := flag.String("password", os.Getenv("CATALOG_PASSWORD"), "curator password; empty serves the catalog read-only")
	debug := flag.Bool("debug", cast.ToBool(os.Getenv("CATALOG_DEBUG")), "enable development logging")
	flag.Parse()

	logger, err := buildLogger(*debug)
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := catalog.Open(ctx, catalog.Options{
		DatabasePath: *dbPath,
		Password:     *password,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("open catalog", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           c.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("catalog listening", zap.String("addr", *addr), zap.String("db", *dbPath))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
