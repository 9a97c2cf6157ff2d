package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEnvCmd() *cobra.Command {
	var flags scopeFlags
	var requested []string

	cmd := &cobra.Command{
		Use:   "env <action>",
		Short: "Print the expanded environment for an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := args[0]
			_, e, err := loadEngine()
			if err != nil {
				return err
			}
			scope, err := flags.scope()
			if err != nil {
				return err
			}
			fc, err := e.GetFeatureConfiguration(requested)
			if err != nil {
				return err
			}
			entries, err := fc.GetEnvironment(action, scope)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", entry.Key, entry.Value)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringArrayVar(&requested, "select", nil, "selectable name to request (repeatable)")
	return cmd
}
