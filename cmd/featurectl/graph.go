package main

import (
	"github.com/spf13/cobra"

	"github.com/forgebld/tcfeatures/internal/deps"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Inspect the selectable graph",
	}
	cmd.AddCommand(newGraphShowCmd())
	return cmd
}

func newGraphShowCmd() *cobra.Command {
	var requested []string
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "show <selectable>",
		Short: "Print a selectable's implication tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, e, err := loadEngine()
			if err != nil {
				return err
			}

			fc, err := e.GetFeatureConfiguration(requested)
			if err != nil {
				return err
			}

			renderer := deps.NewTreeRenderer(maxDepth)
			return renderer.Render(cmd.OutOrStdout(), g, fc, args[0])
		},
	}
	cmd.Flags().StringArrayVar(&requested, "select", nil, "selectable name to request (repeatable)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum tree depth (0 for unbounded)")
	return cmd
}
