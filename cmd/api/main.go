// @title       messengerio API
// @version     1.0
// @description Forwards SMS messages to Twilio.
// @BasePath    /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cyberalexander/messengerio/internal/config"
	"github.com/cyberalexander/messengerio/internal/handler"
	"github.com/cyberalexander/messengerio/internal/logger"
	routes "github.com/cyberalexander/messengerio/internal/router"
	"github.com/cyberalexander/messengerio/internal/server"
	"github.com/cyberalexander/messengerio/internal/sms"
)

func main() {
	// Base context for the whole application lifetime.
	rootCtx := context.Background()

	// Load configuration from environment/.env.
	cfg := config.New()

	log, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log = log.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	// Init SMS provider client.
	smsClient := sms.NewTwilioSender(sms.TwilioConfig{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		FromNumber: cfg.Twilio.FromNumber,
	}, log)

	if cfg.SMS.VerifyOnStart {
		if err := smsClient.Health(rootCtx); err != nil {
			log.Fatal("failed to verify SMS provider credentials", zap.Error(err))
		}
		log.Info("SMS provider credentials verified")
	}

	// Handlers
	deps := routes.AppDeps{
		Home:    handler.NewHomeHandler(cfg.App.Name),
		Message: handler.NewMessageHandler(smsClient, log),
	}

	// Init Server
	addr := cfg.Addr()
	srv := server.New(addr, deps, log)

	// Create a context that is cancelled on SIGINT/SIGTERM (Ctrl+C, docker stop etc.).
	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the HTTP server in a separate goroutine so we can listen for signals.
	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Block until we receive a shutdown signal.
	<-ctx.Done()
	log.Info("shutdown signal received, starting graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server graceful shutdown failed", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("shutdown complete")
}
