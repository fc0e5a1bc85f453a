package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/woxQAQ/boundary-probe/internal/config"
	"github.com/woxQAQ/boundary-probe/internal/wasm"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := newApp(os.Stdout, os.Stderr, nil)
	if err := app.RunContext(ctx, os.Args); err != nil {
		reportError(os.Stderr, err)
		cancel()
		os.Exit(exitCode(err))
	}
}

// probe carries state shared by every subcommand.
type probe struct {
	cfg    *config.Config
	logger *zap.Logger
}

// newApp builds the CLI. A nil logger is built from the configured log level.
func newApp(out, errOut io.Writer, logger *zap.Logger) *cli.App {
	p := &probe{logger: logger}

	return &cli.App{
		Name:      "probe",
		Usage:     "inspect the code unit layout of text and the host/guest boundary",
		Version:   fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		Before: p.setup,
		After:  p.teardown,
		Commands: []*cli.Command{
			inspectCommand(p),
			greetCommand(p),
			recordCommand(p),
		},
		// Errors are reported by main with their exit code.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func (p *probe) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	p.cfg = cfg

	if p.logger != nil {
		return nil
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	p.logger = logger

	p.logger.Debug("Starting boundary-probe",
		zap.String("version", version),
		zap.String("commit", commit),
		zap.String("date", date),
	)
	return nil
}

func (p *probe) teardown(*cli.Context) error {
	if p.logger != nil {
		_ = p.logger.Sync()
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

// runtimeConfig maps the wasm config section onto the runtime's settings.
func runtimeConfig(cfg config.WasmConfig) *wasm.RuntimeConfig {
	return &wasm.RuntimeConfig{
		MemoryPages:      cfg.MemoryPages,
		DebugEnabled:     cfg.Debug,
		CacheDir:         cfg.CacheDir,
		MaxInstances:     cfg.MaxInstances,
		ExecutionTimeout: time.Duration(cfg.ExecutionTimeout) * time.Second,
	}
}
