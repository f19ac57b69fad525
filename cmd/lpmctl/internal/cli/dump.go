// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <cidr-file>",
		Short: "Dump the Patricia trie as graphviz DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMap4(args[0])
			if err != nil {
				return err
			}
			return m.DumpDOT(cmd.OutOrStdout())
		},
	}
	return cmd
}
