// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

package lpm

import (
	"net/netip"

	"github.com/patriciaroute/lpm/bitkey"
	"github.com/patriciaroute/lpm/internal/lctrie"
	"github.com/patriciaroute/lpm/internal/patricia"
)

// Map4 is a mutable IPv4 longest-prefix-match table carrying payload V.
// The zero value is not ready to use; construct with NewMap4.
type Map4[V any] struct {
	trie *patricia.Trie[bitkey.Key4, V]
}

// NewMap4 returns an empty Map4.
func NewMap4[V any]() *Map4[V] {
	return &Map4[V]{trie: patricia.New[bitkey.Key4, V]()}
}

// Insert adds pfx with value val, reporting the displaced value if pfx was
// already present. err is ErrFamilyMismatch if pfx is not an IPv4 prefix.
func (m *Map4[V]) Insert(pfx netip.Prefix, val V) (prev V, replaced bool, err error) {
	k, err := key4FromPrefix(pfx)
	if err != nil {
		return prev, false, err
	}
	prev, replaced = m.trie.Insert(k, val)
	return prev, replaced, nil
}

// Delete removes pfx, reporting whether it had been present.
func (m *Map4[V]) Delete(pfx netip.Prefix) (prev V, ok bool, err error) {
	k, err := key4FromPrefix(pfx)
	if err != nil {
		return prev, false, err
	}
	prev, ok = m.trie.Delete(k)
	return prev, ok, nil
}

// Get performs an exact-match lookup of pfx.
func (m *Map4[V]) Get(pfx netip.Prefix) (val V, ok bool, err error) {
	k, err := key4FromPrefix(pfx)
	if err != nil {
		return val, false, err
	}
	val, ok = m.trie.Get(k)
	return val, ok, nil
}

// Lookup returns the longest inserted prefix covering addr.
func (m *Map4[V]) Lookup(addr netip.Addr) (pfx netip.Prefix, val V, ok bool) {
	return m.LookupPrefixLPM(netip.PrefixFrom(addr, 32))
}

// LookupPrefixLPM returns the longest inserted prefix covering pfx itself,
// not just a full-length address -- e.g. looking up 1.1.0.0/25 can match
// a shorter inserted prefix such as 1.1.0.0/24.
func (m *Map4[V]) LookupPrefixLPM(pfx netip.Prefix) (lpm netip.Prefix, val V, ok bool) {
	k, err := key4FromPrefix(pfx)
	if err != nil {
		return lpm, val, false
	}
	key, val, ok := m.trie.LPM(k)
	if !ok {
		return lpm, val, false
	}
	return prefixFromKey4(key), val, true
}

// Contains reports whether any inserted prefix covers addr.
func (m *Map4[V]) Contains(addr netip.Addr) bool {
	_, _, ok := m.Lookup(addr)
	return ok
}

// Size returns the number of inserted prefixes.
func (m *Map4[V]) Size() int { return m.trie.Len() }

// All iterates every (prefix, value) pair.
func (m *Map4[V]) All(yield func(netip.Prefix, V) bool) {
	m.trie.All(func(k bitkey.Key4, v V) bool {
		return yield(prefixFromKey4(k), v)
	})
}

// Compress freezes the current contents into an LC-trie for
// cache-friendly repeated lookups.
func (m *Map4[V]) Compress(cfg lctrie.Config) *CompressedMap4[V] {
	return &CompressedMap4[V]{lc: lctrie.Build(m.trie, 32, cfg)}
}

// Set4 is the set-shaped counterpart of Map4.
type Set4 struct {
	m *Map4[struct{}]
}

// NewSet4 returns an empty Set4.
func NewSet4() *Set4 { return &Set4{m: NewMap4[struct{}]()} }

// Insert adds pfx, reporting whether it was newly inserted.
func (s *Set4) Insert(pfx netip.Prefix) (inserted bool, err error) {
	_, replaced, err := s.m.Insert(pfx, struct{}{})
	if err != nil {
		return false, err
	}
	return !replaced, nil
}

// Delete removes pfx, reporting whether it had been present.
func (s *Set4) Delete(pfx netip.Prefix) (ok bool, err error) {
	_, ok, err = s.m.Delete(pfx)
	return ok, err
}

// Contains reports whether pfx was inserted verbatim (exact match).
func (s *Set4) Contains(pfx netip.Prefix) (ok bool, err error) {
	_, ok, err = s.m.Get(pfx)
	return ok, err
}

// Lookup returns the longest inserted prefix covering addr.
func (s *Set4) Lookup(addr netip.Addr) (pfx netip.Prefix, ok bool) {
	pfx, _, ok = s.m.Lookup(addr)
	return pfx, ok
}

// LookupPrefix returns the longest inserted prefix covering pfx itself,
// not just a full-length address.
func (s *Set4) LookupPrefix(pfx netip.Prefix) (lpm netip.Prefix, ok bool) {
	lpm, _, ok = s.m.LookupPrefixLPM(pfx)
	return lpm, ok
}

// Size returns the number of inserted prefixes.
func (s *Set4) Size() int { return s.m.Size() }

// All iterates every inserted prefix.
func (s *Set4) All(yield func(netip.Prefix) bool) {
	s.m.All(func(p netip.Prefix, _ struct{}) bool { return yield(p) })
}

// Compress freezes the current contents into an LC-trie.
func (s *Set4) Compress(cfg lctrie.Config) *CompressedSet4 {
	return &CompressedSet4{c: s.m.Compress(cfg)}
}
