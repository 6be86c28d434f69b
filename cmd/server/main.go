package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kibshh/component-tracker/backend/internal/audit"
	"github.com/kibshh/component-tracker/backend/internal/config"
	"github.com/kibshh/component-tracker/backend/internal/registry"
	"github.com/kibshh/component-tracker/backend/internal/server"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "component-tracker",
		Short:         "Serve the component lifecycle registry over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return errors.Wrap(err, "loading configuration")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to an HCL config file")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return errors.Wrap(err, "building logger")
	}
	defer logger.Sync()

	reg := registry.New(
		registry.Identity(cfg.Registry.AdminIdentity),
		registry.WithNullIdentity(registry.Identity(cfg.Registry.NullIdentity)),
		registry.WithMaxBatchSize(cfg.Registry.MaxBatchSize),
		registry.WithClock(newClock(cfg.Registry.Clock)),
		registry.WithLogger(logger),
	)

	sink := audit.MultiSink{audit.NewMemorySink(), audit.NewLogSink(logger)}

	srv := server.New(server.Config{
		Host:         cfg.ServerHost,
		Port:         cfg.ServerPort,
		ReadTimeout:  time.Duration(cfg.ServerReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.ServerWriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.ServerIdleTimeoutSec) * time.Second,
		TLSCertFile:  tlsFile(cfg.TLS, cfg.TLS.CertFile),
		TLSKeyFile:   tlsFile(cfg.TLS, cfg.TLS.KeyFile),
	}, reg, sink, logger)

	logger.Info("registry ready",
		zap.String("admin", cfg.Registry.AdminIdentity),
		zap.Int("max_batch_size", cfg.Registry.MaxBatchSize),
		zap.String("clock", cfg.Registry.Clock),
	)

	// Blocks until ctx is cancelled
	return srv.Start(ctx)
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Format == config.LogFormatConsole {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level
	return zcfg.Build()
}

func newClock(kind string) registry.Clock {
	if kind == config.ClockBlock {
		return &registry.BlockClock{}
	}
	return registry.UnixClock{}
}

func tlsFile(tls config.TLSConfig, path string) string {
	if !tls.Enabled {
		return ""
	}
	return path
}
