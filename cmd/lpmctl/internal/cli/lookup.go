// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"net/netip"

	"github.com/spf13/cobra"
)

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <cidr-file> <address>",
		Short: "Print the longest prefix covering an address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMap4(args[0])
			if err != nil {
				return err
			}
			a, err := netip.ParseAddr(args[1])
			if err != nil {
				return fmt.Errorf("parse address %q: %w", args[1], err)
			}
			pfx, line, ok := m.Lookup(a)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no covering prefix")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (from line %d)\n", pfx, line)
			return nil
		},
	}
	return cmd
}
