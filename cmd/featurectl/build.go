package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Validate that the configuration record builds a graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := loadEngine()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d selectables\n", len(g.Selectables))
			return nil
		},
	}
}
