package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mrhapile/fuzzy-heater/internal/config"
)

func promptCmd(g *globalFlags) *cobra.Command {
	f := &evalFlags{}
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Ask for the temperatures interactively, then evaluate",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(g)
			if err != nil {
				return err
			}
			a.printer.Banner(cmd.OutOrStdout())

			for {
				current, desired, err := askReading(a.cfg)
				if err != nil {
					return err
				}
				if err := a.cfg.CheckReading(current, desired); err != nil {
					a.printer.Error(cmd.OutOrStdout(), err.Error())
					continue
				}
				f.current, f.desired = current, desired
				return a.evaluate(cmd, f)
			}
		},
	}
	cmd.Flags().BoolVar(&f.state, "state", true, "Print fuzzified inputs and rule activations")
	cmd.Flags().BoolVar(&f.plot, "plot", false, "Write membership plots to the configured plot directory")
	return cmd
}

// askReading runs one form for the current and desired temperature.
// Malformed numbers are rejected inside the form; range checks happen after.
func askReading(cfg *config.Config) (current, desired float64, err error) {
	var currentText, desiredText string
	rangeText := fmt.Sprintf("between %.0f and %.0f degrees", cfg.Input.Min, cfg.Input.Max)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current temperature").
				Description(rangeText).
				Value(&currentText).
				Validate(validateNumber),
			huh.NewInput().
				Title("Desired temperature").
				Description(rangeText).
				Value(&desiredText).
				Validate(validateNumber),
		),
	)
	if err := form.Run(); err != nil {
		return 0, 0, fmt.Errorf("read temperatures: %w", err)
	}

	current, _ = parseNumber(currentText)
	desired, _ = parseNumber(desiredText)
	return current, desired, nil
}

func validateNumber(s string) error {
	v, err := parseNumber(s)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("please enter a number")
	}
	return nil
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
