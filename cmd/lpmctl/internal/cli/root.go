// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

// Package cli wires lpmctl's subcommands. Flags are bound with pflag
// through cobra's command tree, and progress/diagnostics are logged with
// logrus -- the same flag/log stack cilium's own command-line tools use.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the lpmctl command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "lpmctl",
		Short: "Inspect a longest-prefix-match table built from a CIDR list",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newLookupCmd(),
		newStatsCmd(),
		newDumpCmd(),
		newCompressCmd(),
	)
	return root
}
