package main

import (
	"fmt"

	"github.com/spf13/cobra"

	capi "github.com/coregx/coregex-capi"
)

var escapeCmd = &cobra.Command{
	Use:   "escape STRING...",
	Short: "Quote strings for literal use in a pattern",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEscape,
}

func runEscape(cmd *cobra.Command, args []string) error {
	for _, s := range args {
		fmt.Fprintln(cmd.OutOrStdout(), capi.Escape(s))
	}
	return nil
}
