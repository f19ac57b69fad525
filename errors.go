// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

package lpm

import "errors"

// ErrFamilyMismatch is returned when a prefix's address family does not
// match the facade it was passed to, e.g. a v6 prefix into Set4. Lookup
// misses are never an error -- they are reported with the ok bool every
// lookup method already returns, the same as a Go map access.
var ErrFamilyMismatch = errors.New("lpm: address family mismatch")
