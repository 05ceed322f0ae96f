// Package main provides the fuzzyheater binary entry point.
// fuzzyheater computes water heater usage from the current and the desired
// water temperature with a Mamdani fuzzy controller.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrhapile/fuzzy-heater/internal/config"
	"github.com/mrhapile/fuzzy-heater/internal/render"
	"github.com/mrhapile/fuzzy-heater/pkg/engine"
	"github.com/mrhapile/fuzzy-heater/pkg/fuzzy"
	"github.com/mrhapile/fuzzy-heater/pkg/rules"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "fuzzyheater"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	preset     string
	logLevel   string
	noColor    bool
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Fuzzy control of a water heater",
		Long: `fuzzyheater computes the heater usage percentage from the current and the
desired water temperature using Mamdani inference (min AND, min implication,
max aggregation, centroid defuzzification) over a compiled-in rule base.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVarP(&g.preset, "preset", "p", "", "Rule base preset ("+strings.Join(rules.Names(), ", ")+")")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(
		evalCmd(g),
		promptCmd(g),
		plotCmd(g),
		presetsCmd(g),
		watchCmd(g),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

// app is the resolved runtime of one command invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	printer *render.Printer
	rb      *fuzzy.RuleBase
	engine  *engine.Engine
}

func setup(g *globalFlags) (*app, error) {
	// Bootstrap logger until the config says otherwise
	logger := newLogger(g.logLevel, "info")

	cfg, err := config.NewLoader(logger).Load(g.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if g.preset != "" {
		cfg.Engine.Preset = g.preset
	}
	if g.noColor {
		cfg.Output.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger = newLogger(g.logLevel, cfg.Log.Level)
	slog.SetDefault(logger)

	eng, rb, err := buildEngine(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		printer: render.NewPrinter(cfg.Output.Color),
		rb:      rb,
		engine:  eng,
	}, nil
}

func buildEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, *fuzzy.RuleBase, error) {
	rb, err := rules.Build(cfg.Engine.Preset)
	if err != nil {
		return nil, nil, err
	}
	eng := engine.New(rb,
		engine.WithEpsilon(cfg.Engine.Epsilon),
		engine.WithLogger(logger.With(slog.String("preset", cfg.Engine.Preset))),
	)
	logger.Debug("rule base loaded",
		slog.String("preset", cfg.Engine.Preset),
		slog.Int("rules", rb.Len()),
		slog.String("method", eng.Method()),
	)
	return eng, rb, nil
}

func newLogger(flagLevel, cfgLevel string) *slog.Logger {
	name := cfgLevel
	if flagLevel != "" {
		name = flagLevel
	}
	level := slog.LevelInfo
	switch strings.ToLower(name) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
