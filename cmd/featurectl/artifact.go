package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newArtifactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifact <category> <output-name>",
		Short: "Print the resolved artifact name for a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, outputName := args[0], args[1]
			_, e, err := loadEngine()
			if err != nil {
				return err
			}
			if !e.HasPattern(category) {
				return fmt.Errorf("no artifact name pattern for category %q", category)
			}
			name, err := e.GetArtifactName(category, outputName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
	return cmd
}
