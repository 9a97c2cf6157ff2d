package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgebld/tcfeatures/internal/resolver"
)

func newToolCmd() *cobra.Command {
	var requested []string
	var explain bool

	cmd := &cobra.Command{
		Use:   "tool <action>",
		Short: "Print the resolved tool for an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := args[0]
			g, e, err := loadEngine()
			if err != nil {
				return err
			}
			fc, err := e.GetFeatureConfiguration(requested)
			if err != nil {
				return err
			}

			if explain {
				acIdx, ok := g.ActionConfigFor(action)
				if !ok {
					return fmt.Errorf("no action config for action %q", action)
				}
				candidates := resolver.ResolveAll(g.Selectables[acIdx].Tools, fc.IsEnabled)
				for _, c := range candidates {
					status := "no match"
					if c.Satisfied {
						status = "match"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "[%d] %s: %s (%s)\n", c.Index, c.Tool.Path, status, c.Reason)
				}
				return nil
			}

			tool, err := fc.GetToolForAction(action)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tool.Path)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&requested, "select", nil, "selectable name to request (repeatable)")
	cmd.Flags().BoolVar(&explain, "explain", false, "show every candidate tool and why it did or didn't match")
	return cmd
}
