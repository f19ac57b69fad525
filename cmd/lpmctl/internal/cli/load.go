// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

package cli

import (
	"bufio"
	"fmt"
	"net/netip"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	lpm "github.com/patriciaroute/lpm"
)

// loadMap4 reads a newline-separated CIDR file into a Map4 whose payload
// is the source line number, skipping blank lines and comments.
func loadMap4(path string) (*lpm.Map4[int], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	m := lpm.NewMap4[int]()
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := netip.ParsePrefix(line)
		if err != nil {
			logrus.WithField("line", lineNo).WithError(err).Warn("skipping malformed CIDR")
			continue
		}
		if !p.Addr().Is4() {
			logrus.WithField("line", lineNo).WithField("cidr", line).Warn("skipping non-IPv4 CIDR")
			continue
		}
		if _, _, err := m.Insert(p, lineNo); err != nil {
			logrus.WithField("line", lineNo).WithError(err).Warn("insert failed")
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return m, nil
}
