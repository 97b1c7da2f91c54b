package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaminalder/codex-bridgit/internal/ai"
	"github.com/jaminalder/codex-bridgit/internal/app"
	"github.com/jaminalder/codex-bridgit/internal/config"
	"github.com/jaminalder/codex-bridgit/internal/domain"
	"github.com/jaminalder/codex-bridgit/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML or JSON config file")
	addr := flag.String("addr", "", "listen address, overrides the config")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("[bridgit] %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	mode, err := app.ParseMode(cfg.DefaultMode)
	if err != nil {
		logger.Fatalf("[bridgit] default_mode: %v", err)
	}

	svc := app.NewService(
		app.WithLayout(domain.GridLayout{Cell: cfg.Layout.Cell, OffsetX: cfg.Layout.OffsetX, OffsetY: cfg.Layout.OffsetY}),
		app.WithAIDelay(cfg.AIDelay()),
		app.WithAIOptions(ai.WithLogger(logger), ai.WithStats(cfg.LogSearchStats)),
		app.WithLogger(logger),
	)
	handler := web.NewServer(svc, web.Options{
		DefaultMode: mode,
		Heartbeat:   cfg.Heartbeat(),
		Logger:      logger,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	logger.Printf("[bridgit] listening on %s (default mode %s)", cfg.Addr, mode)
	var runErr error
	select {
	case <-sigCtx.Done():
		logger.Printf("[bridgit] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			logger.Printf("[bridgit] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Printf("[bridgit] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			logger.Printf("[bridgit] forced close failed: %v", closeErr)
		}
	}
	if runErr != nil {
		os.Exit(1)
	}
}
