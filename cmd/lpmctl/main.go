// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

// Command lpmctl builds an IPv4 longest-prefix-match table from a file of
// newline-separated CIDRs, then looks up an address, prints table stats,
// dumps the trie as DOT, and optionally compresses it to an LC-trie and
// checks lookup parity -- exercising Map4's insert, lookup, size, DOT dump
// and compression end to end.
package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/patriciaroute/lpm/cmd/lpmctl/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		logrus.WithError(err).Fatal("lpmctl failed")
		os.Exit(1)
	}
}
