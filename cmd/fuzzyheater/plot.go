package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrhapile/fuzzy-heater/internal/render"
	"github.com/mrhapile/fuzzy-heater/pkg/engine"
	"github.com/mrhapile/fuzzy-heater/pkg/rules"
)

func plotCmd(g *globalFlags) *cobra.Command {
	var (
		current, desired float64
		outDir           string
	)
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Write membership curves of the rule base as PNG files",
		Long: `plot writes one PNG per antecedent with its term curves and one for the
heater usage. With --current and --desired the inputs are marked and the
aggregated output curve and centroid are drawn.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(g)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = a.cfg.Output.PlotDir
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("create plot directory: %w", err)
			}

			if !cmd.Flags().Changed("current") || !cmd.Flags().Changed("desired") {
				for _, v := range a.rb.Antecedents() {
					if err := render.PlotVariable(filepath.Join(outDir, v.Name()+".png"), v, nil); err != nil {
						return err
					}
				}
				out := a.rb.Consequent()
				path := filepath.Join(outDir, out.Name()+".png")
				if err := render.PlotVariable(path, out, nil); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote plots for preset %s to %s\n", a.cfg.Engine.Preset, outDir)
				return nil
			}

			if err := a.cfg.CheckReading(current, desired); err != nil {
				a.printer.Error(cmd.OutOrStdout(), err.Error())
				return err
			}
			res, err := a.engine.Evaluate(rules.Inputs(current, desired))
			if err != nil && !errors.Is(err, engine.ErrNoRuleFired) {
				return err
			}
			a.printer.Result(cmd.OutOrStdout(), res, err)
			paths, err := render.PlotAll(outDir, a.rb, res)
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
			}
			return err
		},
	}
	cmd.Flags().Float64Var(&current, "current", 0, "Current water temperature to mark")
	cmd.Flags().Float64Var(&desired, "desired", 0, "Desired water temperature to mark")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default from config)")
	return cmd
}
