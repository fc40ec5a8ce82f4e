package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/communityeye/auth-service/internal/config"
	"github.com/communityeye/auth-service/internal/logger"
	"github.com/communityeye/auth-service/internal/server"
	"github.com/communityeye/auth-service/internal/server/handlers"
	"github.com/communityeye/auth-service/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logg := logger.New(cfg.LogLevel)

	store, err := sqlite.New(ctx, cfg.Database.Path)
	if err != nil {
		logg.Fatal("failed to initialize storage", "error", err)
	}
	defer store.Close()

	srv := server.New(server.Options{
		Logger:       logg.Logger,
		UserStorage:  store,
		TokenStorage: store,
		Pinger:       store,
		JWTConfig: handlers.JWTConfig{
			Secret:         []byte(cfg.JWT.Secret),
			AccessTokenTTL: cfg.JWT.AccessTokenTTL,
		},
		Address:          cfg.HTTP.Address,
		RateLimitEnabled: cfg.Limits.Enabled,
		RateLimit:        cfg.Limits.Rate,
		RateLimitWindow:  cfg.Limits.Window,
	})

	errC := make(chan error, 1)
	go func() {
		errC <- srv.Run()
	}()

	select {
	case err := <-errC:
		if err != nil {
			logg.Fatal("server failed", "error", err)
		}
	case <-ctx.Done():
		logg.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logg.Error("graceful shutdown failed", "error", err)
		}
	}
}

func printVersion() {
	fmt.Printf("auth-service\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
