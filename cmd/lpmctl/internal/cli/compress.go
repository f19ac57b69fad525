// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"math/rand"
	"net/netip"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/patriciaroute/lpm/internal/lctrie"
)

func newCompressCmd() *cobra.Command {
	var fill float64
	var kMax int
	var samples int

	cmd := &cobra.Command{
		Use:   "compress <cidr-file>",
		Short: "Compress the table to an LC-trie and check lookup parity against random queries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMap4(args[0])
			if err != nil {
				return err
			}

			cfg := lctrie.Config{Fill: fill, KMax: kMax}
			c := m.Compress(cfg)
			fmt.Fprintf(cmd.OutOrStdout(), "compressed %d prefixes into %d nodes\n", c.Size(), c.NodeCount())

			mismatches := 0
			for i := 0; i < samples; i++ {
				bits := rand.Uint32()
				a := netip.AddrFrom4([4]byte{byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits)})

				wantPfx, wantVal, wantOK := m.Lookup(a)
				gotPfx, gotVal, gotOK := c.Lookup(a)
				if wantOK != gotOK || wantPfx != gotPfx || wantVal != gotVal {
					mismatches++
					logrus.WithFields(logrus.Fields{
						"addr": a, "want": wantPfx, "got": gotPfx,
					}).Warn("lookup parity mismatch")
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "checked %d random queries, %d mismatches\n", samples, mismatches)
			return nil
		},
	}
	cmd.Flags().Float64Var(&fill, "fill", lctrie.DefaultConfig().Fill, "minimum subtree fill factor")
	cmd.Flags().IntVar(&kMax, "k-max", lctrie.DefaultConfig().KMax, "maximum branching bits per subtree")
	cmd.Flags().IntVar(&samples, "samples", 100000, "number of random addresses to check for parity")
	return cmd
}
