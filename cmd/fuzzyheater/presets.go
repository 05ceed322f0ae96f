package main

import (
	"github.com/spf13/cobra"

	"github.com/mrhapile/fuzzy-heater/pkg/rules"
)

func presetsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the compiled-in rule bases",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(g)
			if err != nil {
				return err
			}
			a.printer.Presets(cmd.OutOrStdout(), rules.Presets(), a.cfg.Engine.Preset)
			return nil
		},
	}
}
