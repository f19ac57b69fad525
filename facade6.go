// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

package lpm

import (
	"net/netip"

	"github.com/patriciaroute/lpm/bitkey"
	"github.com/patriciaroute/lpm/internal/lctrie"
	"github.com/patriciaroute/lpm/internal/patricia"
)

// Map6 is a mutable IPv6 longest-prefix-match table carrying payload V.
// The zero value is not ready to use; construct with NewMap6.
type Map6[V any] struct {
	trie *patricia.Trie[bitkey.Key6, V]
}

// NewMap6 returns an empty Map6.
func NewMap6[V any]() *Map6[V] {
	return &Map6[V]{trie: patricia.New[bitkey.Key6, V]()}
}

// Insert adds pfx with value val, reporting the displaced value if pfx was
// already present. err is ErrFamilyMismatch if pfx is not an IPv6 prefix.
func (m *Map6[V]) Insert(pfx netip.Prefix, val V) (prev V, replaced bool, err error) {
	k, err := key6FromPrefix(pfx)
	if err != nil {
		return prev, false, err
	}
	prev, replaced = m.trie.Insert(k, val)
	return prev, replaced, nil
}

// Delete removes pfx, reporting whether it had been present.
func (m *Map6[V]) Delete(pfx netip.Prefix) (prev V, ok bool, err error) {
	k, err := key6FromPrefix(pfx)
	if err != nil {
		return prev, false, err
	}
	prev, ok = m.trie.Delete(k)
	return prev, ok, nil
}

// Get performs an exact-match lookup of pfx.
func (m *Map6[V]) Get(pfx netip.Prefix) (val V, ok bool, err error) {
	k, err := key6FromPrefix(pfx)
	if err != nil {
		return val, false, err
	}
	val, ok = m.trie.Get(k)
	return val, ok, nil
}

// Lookup returns the longest inserted prefix covering addr.
func (m *Map6[V]) Lookup(addr netip.Addr) (pfx netip.Prefix, val V, ok bool) {
	return m.LookupPrefixLPM(netip.PrefixFrom(addr, 128))
}

// LookupPrefixLPM returns the longest inserted prefix covering pfx itself,
// not just a full-length address -- e.g. looking up 2001:db8::/48 can
// match a shorter inserted prefix such as 2001:db8::/32.
func (m *Map6[V]) LookupPrefixLPM(pfx netip.Prefix) (lpm netip.Prefix, val V, ok bool) {
	k, err := key6FromPrefix(pfx)
	if err != nil {
		return lpm, val, false
	}
	key, val, ok := m.trie.LPM(k)
	if !ok {
		return lpm, val, false
	}
	return prefixFromKey6(key), val, true
}

// Contains reports whether any inserted prefix covers addr.
func (m *Map6[V]) Contains(addr netip.Addr) bool {
	_, _, ok := m.Lookup(addr)
	return ok
}

// Size returns the number of inserted prefixes.
func (m *Map6[V]) Size() int { return m.trie.Len() }

// All iterates every (prefix, value) pair.
func (m *Map6[V]) All(yield func(netip.Prefix, V) bool) {
	m.trie.All(func(k bitkey.Key6, v V) bool {
		return yield(prefixFromKey6(k), v)
	})
}

// Compress freezes the current contents into an LC-trie for
// cache-friendly repeated lookups.
func (m *Map6[V]) Compress(cfg lctrie.Config) *CompressedMap6[V] {
	return &CompressedMap6[V]{lc: lctrie.Build(m.trie, 128, cfg)}
}

// Set6 is the set-shaped counterpart of Map6.
type Set6 struct {
	m *Map6[struct{}]
}

// NewSet6 returns an empty Set6.
func NewSet6() *Set6 { return &Set6{m: NewMap6[struct{}]()} }

// Insert adds pfx, reporting whether it was newly inserted.
func (s *Set6) Insert(pfx netip.Prefix) (inserted bool, err error) {
	_, replaced, err := s.m.Insert(pfx, struct{}{})
	if err != nil {
		return false, err
	}
	return !replaced, nil
}

// Delete removes pfx, reporting whether it had been present.
func (s *Set6) Delete(pfx netip.Prefix) (ok bool, err error) {
	_, ok, err = s.m.Delete(pfx)
	return ok, err
}

// Contains reports whether pfx was inserted verbatim (exact match).
func (s *Set6) Contains(pfx netip.Prefix) (ok bool, err error) {
	_, ok, err = s.m.Get(pfx)
	return ok, err
}

// Lookup returns the longest inserted prefix covering addr.
func (s *Set6) Lookup(addr netip.Addr) (pfx netip.Prefix, ok bool) {
	pfx, _, ok = s.m.Lookup(addr)
	return pfx, ok
}

// LookupPrefix returns the longest inserted prefix covering pfx itself,
// not just a full-length address.
func (s *Set6) LookupPrefix(pfx netip.Prefix) (lpm netip.Prefix, ok bool) {
	lpm, _, ok = s.m.LookupPrefixLPM(pfx)
	return lpm, ok
}

// Size returns the number of inserted prefixes.
func (s *Set6) Size() int { return s.m.Size() }

// All iterates every inserted prefix.
func (s *Set6) All(yield func(netip.Prefix) bool) {
	s.m.All(func(p netip.Prefix, _ struct{}) bool { return yield(p) })
}

// Compress freezes the current contents into an LC-trie.
func (s *Set6) Compress(cfg lctrie.Config) *CompressedSet6 {
	return &CompressedSet6{c: s.m.Compress(cfg)}
}
