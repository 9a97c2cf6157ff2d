package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCmdlineCmd() *cobra.Command {
	var flags scopeFlags
	var requested []string

	cmd := &cobra.Command{
		Use:   "cmdline <action>",
		Short: "Print the expanded command line for an action",
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
			cmdArgs, err := fc.GetCommandLine(action, scope, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(cmdArgs, " "))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringArrayVar(&requested, "select", nil, "selectable name to request (repeatable)")
	return cmd
}
