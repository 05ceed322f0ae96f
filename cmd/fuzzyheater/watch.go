package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/mrhapile/fuzzy-heater/internal/config"
	"github.com/mrhapile/fuzzy-heater/pkg/engine"
	"github.com/mrhapile/fuzzy-heater/pkg/metrics"
	"github.com/mrhapile/fuzzy-heater/pkg/rules"
)

func watchCmd(g *globalFlags) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Evaluate readings from stdin, reloading the rule base when the config changes",
		Long: `watch reads one "current desired" pair per line from stdin and prints the
heater usage for each. When --config is given the file is watched and the
rule base is swapped atomically on change; evaluations in flight finish on
the rule base they started with.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(g)
			if err != nil {
				return err
			}
			holder := engine.NewHolder(a.cfg.Engine.Preset, a.engine)
			var limits atomic.Pointer[config.Config]
			limits.Store(a.cfg)

			if g.configPath != "" {
				w, err := config.Watch(g.configPath, a.reloadHandler(g, holder, &limits),
					config.WithWatchLogger(a.logger),
					config.WithLoader(config.NewLoader(a.logger)),
				)
				if err != nil {
					return err
				}
				defer w.Close()
			}

			if metricsAddr != "" {
				srv := &http.Server{Addr: metricsAddr, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						a.logger.Error("metrics server failed", slog.String("error", err.Error()))
					}
				}()
				defer func() {
					ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					_ = srv.Shutdown(ctx)
				}()
				a.logger.Info("serving metrics", slog.String("addr", metricsAddr))
			}

			return a.readLoop(cmd, holder, &limits)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	return cmd
}

// reloadHandler rebuilds the engine from a reloaded config and publishes both.
// The --preset flag keeps precedence over the file.
func (a *app) reloadHandler(g *globalFlags, holder *engine.Holder, limits *atomic.Pointer[config.Config]) config.ChangeHandler {
	return func(cfg *config.Config) {
		if g.preset != "" {
			cfg.Engine.Preset = g.preset
		}
		eng, _, err := buildEngine(cfg, a.logger)
		if err != nil {
			a.logger.Warn("rule base reload failed", slog.String("error", err.Error()))
			return
		}
		limits.Store(cfg)
		prev := holder.Swap(cfg.Engine.Preset, eng)
		a.logger.Info("rule base swapped",
			slog.String("from", prev.Name),
			slog.String("to", cfg.Engine.Preset),
		)
	}
}

func (a *app) readLoop(cmd *cobra.Command, holder *engine.Holder, limits *atomic.Pointer[config.Config]) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			a.printer.Error(out, fmt.Sprintf("expected \"current desired\", got %q", line))
			continue
		}
		current, err1 := parseNumber(fields[0])
		desired, err2 := parseNumber(fields[1])
		if err1 != nil || err2 != nil {
			a.printer.Error(out, fmt.Sprintf("not a number in %q", line))
			continue
		}
		if err := limits.Load().CheckReading(current, desired); err != nil {
			a.printer.Error(out, err.Error())
			continue
		}

		snap := holder.Load()
		res, err := metrics.Wrap(snap.Name, snap.Engine).Evaluate(rules.Inputs(current, desired))
		a.printer.Result(out, res, err)
	}
	return scanner.Err()
}
