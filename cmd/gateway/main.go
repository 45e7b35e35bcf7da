package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fystack/kv-gateway/internal/gateway"
	"github.com/fystack/kv-gateway/pkg/common/config"
	"github.com/fystack/kv-gateway/pkg/common/logger"
	"github.com/fystack/kv-gateway/pkg/events"
	"github.com/fystack/kv-gateway/pkg/infra"
	"github.com/fystack/kv-gateway/pkg/kvstore"
	"github.com/fystack/kv-gateway/pkg/retry"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kv-gateway",
		Short: "HTTP facade over a networked key-value store",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	serveCmd.Flags().StringVar(&configPath, "config", "configs/config.yaml", "Path to config file")
	serveCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logs")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe() error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger.Init(&logger.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	})

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("Load config failed", "path", configPath, "err", err)
		return err
	}
	logger.Info("Config loaded", "environment", cfg.Environment, "store", cfg.KVStore.Type)

	store, err := kvstore.NewFromConfig(cfg.KVStore, cfg.Environment)
	if err != nil {
		logger.Error("Create key-value store failed", "type", cfg.KVStore.Type, "err", err)
		return err
	}
	defer store.Close()

	emitter := newEmitter(cfg)
	defer emitter.Close()

	handler := gateway.NewGatewayHTTPHandler(
		store,
		emitter,
		cfg.ServiceName,
		cfg.Server.RequestTimeout,
	)
	server := gateway.StartHTTPServer(cfg.Server, handler)

	logger.Info("Gateway is running... Press Ctrl+C to stop")
	waitForShutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "err", err)
	}
	logger.Info("Gateway stopped")
	return nil
}

// newEmitter returns the NATS emitter when a URL is configured and a no-op
// otherwise; event delivery is optional and never blocks startup.
func newEmitter(cfg *config.Config) events.Emitter {
	if cfg.NATS.URL == "" {
		return events.NoopEmitter{}
	}

	var nc *nats.Conn
	err := retry.Constant(func() error {
		var err error
		nc, err = infra.GetNATSConnection(cfg.NATS, cfg.Environment)
		return err
	}, retry.DefaultInterval, retry.DefaultMaxAttempts)
	if err != nil {
		logger.Warn("NATS connect failed, key events disabled", "url", cfg.NATS.URL, "err", err)
		return events.NoopEmitter{}
	}
	logger.Info("Connected to NATS", "url", nc.ConnectedUrl())
	return events.NewNATSEmitter(nc, cfg.NATS.SubjectPrefix)
}

func waitForShutdown() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}
