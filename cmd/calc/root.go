package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"go-chi-calculator/internal/client"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/controller"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/tui"
)

const serviceName = "calculator-ui"

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	v        *viper.Viper
	opts     config.Options
	cfg      config.Config
	shutdown func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "calc",
		Short: "Terminal calculator backed by a remote arithmetic service",
		Long: `calc is a keypad calculator for the terminal. Every calculation is sent
to the arithmetic service configured by --endpoint (or CALC_ENDPOINT).

Run without a subcommand to open the interactive calculator.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
		RunE: a.runTUI,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.opts.File, "config", "", "config file (default is .calc.yaml in . or $HOME)")
	pf.StringVar(&a.opts.EnvFile, "env-file", ".env", "environment file path")
	pf.String("endpoint", config.DefaultAPIPath, "arithmetic service URL")
	pf.Duration("timeout", 0, "per-request timeout, 0 for none")
	pf.Duration("banner-ttl", config.DefaultBanner, "how long errors stay on screen")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-file", "", "write logs to this file")
	pf.Bool("telemetry", false, "export traces, metrics and logs over OTLP")

	bindings := map[string]string{
		"endpoint":   "endpoint",
		"timeout":    "request_timeout",
		"banner-ttl": "error_banner_ttl",
		"log-level":  "log.level",
		"log-file":   "log.file",
		"telemetry":  "telemetry.enabled",
	}
	for flag, key := range bindings {
		cobra.CheckErr(a.v.BindPFlag(key, pf.Lookup(flag)))
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Open the interactive calculator",
			Args:  cobra.NoArgs,
			RunE:  a.runTUI,
		},
		newEvalCmd(a),
		newKeysCmd(),
		newConfigCmd(a),
	)

	return root
}

// setup loads configuration and starts logging and telemetry.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.opts)
	if err != nil {
		return err
	}
	a.cfg = cfg

	// Without a log file the process logger stays a no-op so nothing is
	// written over the terminal UI or the eval output.
	if cfg.Log.File != "" {
		if err := observability.InitLogger(observability.LogOptions{
			Level:       cfg.Log.Level,
			OutputPaths: cfg.LogOutputPaths(),
		}); err != nil {
			return err
		}
	}

	if cfg.Telemetry.Enabled {
		observability.SetServiceName(serviceName)
		if cfg.ServiceName != "" {
			observability.SetServiceName(cfg.ServiceName)
		}
		shutdown, err := observability.StartTelemetry(cmd.Context())
		if err != nil {
			return fmt.Errorf("start telemetry: %w", err)
		}
		a.shutdown = shutdown
	}

	observability.Logger.Debug("configuration loaded",
		zap.String("endpoint", cfg.Endpoint),
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.Bool("telemetry", cfg.Telemetry.Enabled),
	)
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	defer observability.SyncLogger()

	if a.shutdown == nil {
		return nil
	}
	return a.shutdown(context.WithoutCancel(ctx))
}

func (a *app) newClient() (*client.Client, error) {
	return client.New(a.cfg.Endpoint,
		client.WithTimeout(a.cfg.RequestTimeout),
		client.WithLogger(observability.Logger),
	)
}

// newController builds a Controller that talks to the configured service.
func (a *app) newController(display controller.Display, banner controller.ErrorBanner) (*controller.Controller, error) {
	c, err := a.newClient()
	if err != nil {
		return nil, err
	}
	return controller.New(c, display, banner,
		controller.WithLogger(observability.Logger),
		controller.WithBannerTTL(a.cfg.ErrorBannerTTL),
	), nil
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	c, err := a.newClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	m := tui.NewModel(ctx, c, observability.Logger, controller.WithBannerTTL(a.cfg.ErrorBannerTTL))
	return tui.Run(ctx, m)
}

func writeLine(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, s)
}
