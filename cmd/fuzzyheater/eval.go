package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrhapile/fuzzy-heater/internal/render"
	"github.com/mrhapile/fuzzy-heater/pkg/engine"
	"github.com/mrhapile/fuzzy-heater/pkg/metrics"
	"github.com/mrhapile/fuzzy-heater/pkg/rules"
	"github.com/mrhapile/fuzzy-heater/pkg/types"
)

type evalFlags struct {
	current float64
	desired float64
	state   bool
	plot    bool
	json    bool
}

func evalCmd(g *globalFlags) *cobra.Command {
	f := &evalFlags{}
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Compute heater usage for one pair of temperatures",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("current") || !cmd.Flags().Changed("desired") {
				return errors.New("both --current and --desired are required")
			}
			a, err := setup(g)
			if err != nil {
				return err
			}
			return a.evaluate(cmd, f)
		},
	}
	cmd.Flags().Float64Var(&f.current, "current", 0, "Current water temperature")
	cmd.Flags().Float64Var(&f.desired, "desired", 0, "Desired water temperature")
	cmd.Flags().BoolVar(&f.state, "state", false, "Print fuzzified inputs and rule activations")
	cmd.Flags().BoolVar(&f.plot, "plot", false, "Write membership plots to the configured plot directory")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print the full result as JSON")
	return cmd
}

func (a *app) evaluate(cmd *cobra.Command, f *evalFlags) error {
	out := cmd.OutOrStdout()
	if err := a.cfg.CheckReading(f.current, f.desired); err != nil {
		a.printer.Error(out, err.Error())
		return err
	}

	res, err := metrics.Wrap(a.cfg.Engine.Preset, a.engine).Evaluate(rules.Inputs(f.current, f.desired))
	if f.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(jsonResult{Result: res, Error: errString(err)}); encErr != nil {
			return encErr
		}
	} else {
		if f.state {
			a.printer.State(out, a.rb, res)
		}
		a.printer.Result(out, res, err)
	}

	if f.plot {
		paths, plotErr := render.PlotAll(a.cfg.Output.PlotDir, a.rb, res)
		for _, p := range paths {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", p)
		}
		if plotErr != nil {
			return plotErr
		}
	}

	if err != nil && !errors.Is(err, engine.ErrNoRuleFired) {
		return err
	}
	return nil
}

type jsonResult struct {
	Result types.InferenceResult `json:"result"`
	Error  string                `json:"error,omitempty"`
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
