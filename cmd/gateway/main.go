// Command gateway serves the object-storage HTTP gateway consumed by the
// desktop clients. It connects to one S3-compatible endpoint configured via
// YAML file and/or environment variables.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/harborview/gateway/internal/api"
	"github.com/harborview/gateway/internal/config"
	"github.com/harborview/gateway/internal/logger"
	"github.com/harborview/gateway/internal/store/minio"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New(nil).ErrorWith("failed to load configuration", err, nil)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := minio.New(ctx, cfg.StoreConfig())
	if err != nil {
		log.ErrorWith("failed to connect to object store", err, map[string]any{
			"endpoint": cfg.Storage.Endpoint,
		})
		os.Exit(1)
	}
	defer st.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewServer(st, log).Handler(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.With().Str("addr", cfg.Server.Addr).Str("endpoint", cfg.Storage.Endpoint).Logger().
			Info("gateway listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorWith("server stopped unexpectedly", err, nil)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.ErrorWith("graceful shutdown failed", err, nil)
		}
	}
}
