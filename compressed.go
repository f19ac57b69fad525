// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

package lpm

import (
	"net/netip"

	"github.com/patriciaroute/lpm/bitkey"
	"github.com/patriciaroute/lpm/internal/lctrie"
)

// CompressedMap4 is a frozen, LC-trie-compressed IPv4 lookup table.
// Construct one with Map4.Compress; there is no mutation API.
type CompressedMap4[V any] struct {
	lc *lctrie.LCTrie[bitkey.Key4, V]
}

// Lookup returns the longest prefix covering addr.
func (c *CompressedMap4[V]) Lookup(addr netip.Addr) (pfx netip.Prefix, val V, ok bool) {
	return c.LookupPrefixLPM(netip.PrefixFrom(addr, 32))
}

// LookupPrefixLPM returns the longest compressed prefix covering pfx
// itself, not just a full-length address.
func (c *CompressedMap4[V]) LookupPrefixLPM(pfx netip.Prefix) (lpm netip.Prefix, val V, ok bool) {
	k, err := key4FromPrefix(pfx)
	if err != nil {
		return lpm, val, false
	}
	key, val, ok := c.lc.Lookup(k)
	if !ok {
		return lpm, val, false
	}
	return prefixFromKey4(key), val, true
}

// Contains reports whether any compressed prefix covers addr.
func (c *CompressedMap4[V]) Contains(addr netip.Addr) bool {
	_, _, ok := c.Lookup(addr)
	return ok
}

// Size returns the number of prefixes compressed into the trie.
func (c *CompressedMap4[V]) Size() int { return c.lc.Len() }

// NodeCount returns the size of the compressed node table, for diagnostics.
func (c *CompressedMap4[V]) NodeCount() int { return c.lc.NodeCount() }

// CompressedSet4 is the set-shaped counterpart of CompressedMap4.
type CompressedSet4 struct {
	c *CompressedMap4[struct{}]
}

// Lookup returns the longest prefix covering addr.
func (s *CompressedSet4) Lookup(addr netip.Addr) (pfx netip.Prefix, ok bool) {
	pfx, _, ok = s.c.Lookup(addr)
	return pfx, ok
}

// LookupPrefix returns the longest compressed prefix covering pfx itself,
// not just a full-length address.
func (s *CompressedSet4) LookupPrefix(pfx netip.Prefix) (lpm netip.Prefix, ok bool) {
	lpm, _, ok = s.c.LookupPrefixLPM(pfx)
	return lpm, ok
}

// Contains reports whether any compressed prefix covers addr.
func (s *CompressedSet4) Contains(addr netip.Addr) bool { return s.c.Contains(addr) }

// Size returns the number of prefixes compressed into the trie.
func (s *CompressedSet4) Size() int { return s.c.Size() }

// CompressedMap6 is a frozen, LC-trie-compressed IPv6 lookup table.
type CompressedMap6[V any] struct {
	lc *lctrie.LCTrie[bitkey.Key6, V]
}

// Lookup returns the longest prefix covering addr.
func (c *CompressedMap6[V]) Lookup(addr netip.Addr) (pfx netip.Prefix, val V, ok bool) {
	return c.LookupPrefixLPM(netip.PrefixFrom(addr, 128))
}

// LookupPrefixLPM returns the longest compressed prefix covering pfx
// itself, not just a full-length address.
func (c *CompressedMap6[V]) LookupPrefixLPM(pfx netip.Prefix) (lpm netip.Prefix, val V, ok bool) {
	k, err := key6FromPrefix(pfx)
	if err != nil {
		return lpm, val, false
	}
	key, val, ok := c.lc.Lookup(k)
	if !ok {
		return lpm, val, false
	}
	return prefixFromKey6(key), val, true
}

// Contains reports whether any compressed prefix covers addr.
func (c *CompressedMap6[V]) Contains(addr netip.Addr) bool {
	_, _, ok := c.Lookup(addr)
	return ok
}

// Size returns the number of prefixes compressed into the trie.
func (c *CompressedMap6[V]) Size() int { return c.lc.Len() }

// NodeCount returns the size of the compressed node table, for diagnostics.
func (c *CompressedMap6[V]) NodeCount() int { return c.lc.NodeCount() }

// CompressedSet6 is the set-shaped counterpart of CompressedMap6.
type CompressedSet6 struct {
	c *CompressedMap6[struct{}]
}

// Lookup returns the longest prefix covering addr.
func (s *CompressedSet6) Lookup(addr netip.Addr) (pfx netip.Prefix, ok bool) {
	pfx, _, ok = s.c.Lookup(addr)
	return pfx, ok
}

// LookupPrefix returns the longest compressed prefix covering pfx itself,
// not just a full-length address.
func (s *CompressedSet6) LookupPrefix(pfx netip.Prefix) (lpm netip.Prefix, ok bool) {
	lpm, _, ok = s.c.LookupPrefixLPM(pfx)
	return lpm, ok
}

// Contains reports whether any compressed prefix covers addr.
func (s *CompressedSet6) Contains(addr netip.Addr) bool { return s.c.Contains(addr) }

// Size returns the number of prefixes compressed into the trie.
func (s *CompressedSet6) Size() int { return s.c.Size() }

// CompressedMixedMap is a frozen, LC-trie-compressed mixed v4/v6 lookup
// table, preserving MixedMap's single-default embedding semantics.
type CompressedMixedMap[V any] struct {
	lc *lctrie.LCTrie[bitkey.Key6, V]
}

// LookupV4 returns the longest inserted IPv4 prefix covering addr.
func (c *CompressedMixedMap[V]) LookupV4(addr netip.Addr) (pfx netip.Prefix, val V, ok bool) {
	if !addr.Is4() && !addr.Is4In6() {
		return pfx, val, false
	}
	return c.LookupV4PrefixLPM(netip.PrefixFrom(addr.Unmap(), 32))
}

// LookupV4PrefixLPM returns the longest inserted IPv4 prefix covering pfx
// itself, not just a full-length address, preserving the single-default
// embedding semantics of MixedMap.LookupV4PrefixLPM.
func (c *CompressedMixedMap[V]) LookupV4PrefixLPM(pfx netip.Prefix) (lpm netip.Prefix, val V, ok bool) {
	k4, err := key4FromPrefix(pfx)
	if err != nil {
		return lpm, val, false
	}
	key, val, ok := c.lc.Lookup(embedKey4(k4))
	if !ok || key.Len() < v4EmbedLen {
		var zero V
		return lpm, zero, false
	}
	k4m, isV4 := isEmbeddedV4(key)
	if !isV4 {
		var zero V
		return lpm, zero, false
	}
	return prefixFromKey4(k4m), val, true
}

// LookupV6 returns the longest inserted IPv6 prefix covering addr.
func (c *CompressedMixedMap[V]) LookupV6(addr netip.Addr) (pfx netip.Prefix, val V, ok bool) {
	if addr.Is4() {
		return pfx, val, false
	}
	return c.LookupV6PrefixLPM(netip.PrefixFrom(addr, 128))
}

// LookupV6PrefixLPM returns the longest inserted IPv6 prefix covering pfx
// itself, not just a full-length address.
func (c *CompressedMixedMap[V]) LookupV6PrefixLPM(pfx netip.Prefix) (lpm netip.Prefix, val V, ok bool) {
	k6, err := key6FromPrefix(pfx)
	if err != nil {
		return lpm, val, false
	}
	key, val, ok := c.lc.Lookup(k6)
	if !ok {
		return lpm, val, false
	}
	return prefixFromKey6(key), val, true
}

// Lookup dispatches to LookupV4 or LookupV6 by addr's family.
func (c *CompressedMixedMap[V]) Lookup(addr netip.Addr) (pfx netip.Prefix, val V, ok bool) {
	if addr.Is4() || addr.Is4In6() {
		return c.LookupV4(addr)
	}
	return c.LookupV6(addr)
}

// Size returns the total number of prefixes compressed into the trie.
func (c *CompressedMixedMap[V]) Size() int { return c.lc.Len() }

// CompressedMixedSet is the set-shaped counterpart of CompressedMixedMap.
type CompressedMixedSet struct {
	c *CompressedMixedMap[struct{}]
}

// Lookup dispatches to the v4 or v6 branch by addr's family.
func (s *CompressedMixedSet) Lookup(addr netip.Addr) (pfx netip.Prefix, ok bool) {
	pfx, _, ok = s.c.Lookup(addr)
	return pfx, ok
}

// LookupV4Prefix returns the longest compressed IPv4 prefix covering pfx
// itself, not just a full-length address.
func (s *CompressedMixedSet) LookupV4Prefix(pfx netip.Prefix) (lpm netip.Prefix, ok bool) {
	lpm, _, ok = s.c.LookupV4PrefixLPM(pfx)
	return lpm, ok
}

// LookupV6Prefix returns the longest compressed IPv6 prefix covering pfx
// itself, not just a full-length address.
func (s *CompressedMixedSet) LookupV6Prefix(pfx netip.Prefix) (lpm netip.Prefix, ok bool) {
	lpm, _, ok = s.c.LookupV6PrefixLPM(pfx)
	return lpm, ok
}

// Size returns the total number of prefixes compressed into the trie.
func (s *CompressedMixedSet) Size() int { return s.c.Size() }
