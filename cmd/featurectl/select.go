package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select [selectable...]",
		Short: "Resolve a requested selectable set and print the enabled ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, e, err := loadEngine()
			if err != nil {
				return err
			}
			fc, err := e.GetFeatureConfiguration(args)
			if err != nil {
				return err
			}
			for _, sel := range g.Selectables {
				if fc.IsEnabled(sel.Name) {
					fmt.Fprintln(cmd.OutOrStdout(), sel.Name)
				}
			}
			return nil
		},
	}
}
