package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"lci-gateway/config"
	"lci-gateway/pkg/lci"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "lcictl:", err)
		os.Exit(1)
	}
}

// env holds what every command needs, filled in by the app's Before hook.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	client *lci.Client
}

func newApp() *cli.App {
	e := &env{}

	return &cli.App{
		Name:  "lcictl",
		Usage: "inspect and control devices behind an LCI OneControl gateway",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				EnvVars: []string{"LCI_CONFIG"},
				Value:   "config.yaml",
				Usage:   "path to config file; missing is fine",
			},
			&cli.StringFlag{
				Name:  "gateway-url",
				Usage: "gateway base URL (overrides config and LCI_GATEWAY_URL)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "text or json",
			},
		},
		Before: func(c *cli.Context) error {
			return e.init(c)
		},
		Commands: []*cli.Command{
			thingsCommand(e),
			statusCommand(e),
			dimmerCommand(e),
			switchCommand(e),
			tankCommand(e),
			generatorCommand(e),
			hvacCommand(e),
			watchCommand(e),
		},
	}
}

func (e *env) init(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if v := c.String("gateway-url"); v != "" {
		cfg.Gateway.URL = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v := c.String("log-format"); v != "" {
		cfg.Log.Format = v
	}

	e.cfg = cfg
	e.logger = setupLogger(cfg.Log, c.App.ErrWriter)
	e.client = lci.NewClient(cfg.Gateway.URL,
		lci.WithHTTPClient(&http.Client{Timeout: cfg.GatewayTimeout()}),
		lci.WithLogger(e.logger.With("component", "lci")),
	)
	return nil
}

func setupLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Level
	switch cfg.Level {
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
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
