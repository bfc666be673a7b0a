package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/guardianforge/loadout-api/internal/calculator"
	"github.com/guardianforge/loadout-api/internal/config"
	v1 "github.com/guardianforge/loadout-api/internal/handlers/loadout/v1"
	"github.com/guardianforge/loadout-api/internal/inventory"
	"github.com/guardianforge/loadout-api/internal/optimizer"
	"github.com/guardianforge/loadout-api/internal/orchestrators/armory"
	"github.com/guardianforge/loadout-api/internal/orchestrators/loadout"
	"github.com/guardianforge/loadout-api/internal/pkg/clock"
	"github.com/guardianforge/loadout-api/internal/pkg/idgen"
	"github.com/guardianforge/loadout-api/internal/redis"
	buildrepo "github.com/guardianforge/loadout-api/internal/repositories/build"
	equipmentrepo "github.com/guardianforge/loadout-api/internal/repositories/equipment"
)

var configPath string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the loadout API HTTP server with all configured services.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&configPath, "config", "", "path to YAML config file (optional)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	setupLogging(cfg.Logging)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	redisClient, err := redis.NewClient(cfg.Redis.Address, &redis.Options{
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}()

	router, err := buildRouter(ctx, cfg, redisClient)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down http server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed, forcing close", "error", err)
			return srv.Close()
		}
		slog.Info("server stopped")
		return nil
	case err := <-errChan:
		return err
	}
}

// buildRouter wires repositories, orchestrators, and the HTTP handler.
func buildRouter(ctx context.Context, cfg config.Config, redisClient redis.Client) (*mux.Router, error) {
	eqRepo, err := equipmentrepo.NewRedis(&equipmentrepo.RedisConfig{Client: redisClient})
	if err != nil {
		return nil, fmt.Errorf("failed to create equipment repository: %w", err)
	}
	bRepo, err := buildrepo.NewRedis(&buildrepo.RedisConfig{Client: redisClient})
	if err != nil {
		return nil, fmt.Errorf("failed to create build repository: %w", err)
	}

	inv := inventory.NewManager()
	calc, err := calculator.New(&calculator.Config{Inventory: inv})
	if err != nil {
		return nil, fmt.Errorf("failed to create calculator: %w", err)
	}
	opt, err := optimizer.New(&optimizer.Config{
		Calculator:     calc,
		Inventory:      inv,
		MaxItems:       cfg.Search.MaxItems,
		MaxLockedItems: cfg.Search.MaxLockedItems,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create optimizer: %w", err)
	}

	armorySvc, err := armory.NewOrchestrator(&armory.Config{
		EquipmentRepo: eqRepo,
		Inventory:     inv,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create armory orchestrator: %w", err)
	}
	if err := armorySvc.Hydrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to hydrate armory: %w", err)
	}

	buildSvc, err := loadout.NewOrchestrator(&loadout.Config{
		Optimizer:   opt,
		BuildRepo:   bRepo,
		IDGenerator: idgen.NewUUID("build"),
		Clock:       clock.New(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create build orchestrator: %w", err)
	}

	handler, err := v1.NewHandler(&v1.Config{
		ArmoryService: armorySvc,
		BuildService:  buildSvc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create handler: %w", err)
	}

	router := mux.NewRouter()
	handler.Register(router)
	return router, nil
}

func setupLogging(cfg config.LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
