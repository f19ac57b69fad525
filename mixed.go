// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

package lpm

import (
	"net/netip"

	"github.com/patriciaroute/lpm/bitkey"
	"github.com/patriciaroute/lpm/internal/lctrie"
	"github.com/patriciaroute/lpm/internal/patricia"
)

// v4EmbedLen is the fixed 96-bit prefix ::ffff:0:0/96 that IPv4 entries
// are embedded under inside the shared v6 trie.
const v4EmbedLen = 96

func embedKey4(k bitkey.Key4) bitkey.Key6 {
	lo := uint64(0xffff)<<32 | uint64(k.Bits())
	k6, _ := bitkey.NewKey6(0, lo, v4EmbedLen+k.Len())
	return k6
}

// isEmbeddedV4 reports whether k lies within the ::ffff:0:0/96 subtree
// and, if so, returns the IPv4 key it embeds.
func isEmbeddedV4(k bitkey.Key6) (bitkey.Key4, bool) {
	if k.Len() < v4EmbedLen {
		return bitkey.Key4{}, false
	}
	hi, lo := k.Limbs()
	if hi != 0 || lo>>32 != 0xffff {
		return bitkey.Key4{}, false
	}
	k4, _ := bitkey.NewKey4(uint32(lo), k.Len()-v4EmbedLen)
	return k4, true
}

// MixedMap stores IPv4 and IPv6 prefixes together in a single IPv6 trie,
// with IPv4 embedded under ::ffff:0:0/96. Per the single-default reading
// of the embedding, a v4-mapped address lookup only ever considers the
// v4-embedded branch: a separately inserted ::/0 never acts as its
// fallback (see DESIGN.md).
type MixedMap[V any] struct {
	trie *patricia.Trie[bitkey.Key6, V]
}

// NewMixedMap returns an empty MixedMap.
func NewMixedMap[V any]() *MixedMap[V] {
	return &MixedMap[V]{trie: patricia.New[bitkey.Key6, V]()}
}

// InsertV4 embeds and adds an IPv4 prefix.
func (m *MixedMap[V]) InsertV4(pfx netip.Prefix, val V) (prev V, replaced bool, err error) {
	k4, err := key4FromPrefix(pfx)
	if err != nil {
		return prev, false, err
	}
	prev, replaced = m.trie.Insert(embedKey4(k4), val)
	return prev, replaced, nil
}

// InsertV6 adds an IPv6 prefix directly.
func (m *MixedMap[V]) InsertV6(pfx netip.Prefix, val V) (prev V, replaced bool, err error) {
	k6, err := key6FromPrefix(pfx)
	if err != nil {
		return prev, false, err
	}
	prev, replaced = m.trie.Insert(k6, val)
	return prev, replaced, nil
}

// DeleteV4 removes an embedded IPv4 prefix.
func (m *MixedMap[V]) DeleteV4(pfx netip.Prefix) (prev V, ok bool, err error) {
	k4, err := key4FromPrefix(pfx)
	if err != nil {
		return prev, false, err
	}
	prev, ok = m.trie.Delete(embedKey4(k4))
	return prev, ok, nil
}

// DeleteV6 removes an IPv6 prefix.
func (m *MixedMap[V]) DeleteV6(pfx netip.Prefix) (prev V, ok bool, err error) {
	k6, err := key6FromPrefix(pfx)
	if err != nil {
		return prev, false, err
	}
	prev, ok = m.trie.Delete(k6)
	return prev, ok, nil
}

// LookupV4 returns the longest inserted IPv4 prefix covering addr, which
// may be a pure IPv4 address or its v4-mapped-in-v6 form.
func (m *MixedMap[V]) LookupV4(addr netip.Addr) (pfx netip.Prefix, val V, ok bool) {
	if !addr.Is4() && !addr.Is4In6() {
		return pfx, val, false
	}
	return m.LookupV4PrefixLPM(netip.PrefixFrom(addr.Unmap(), 32))
}

// LookupV4PrefixLPM returns the longest inserted IPv4 prefix covering pfx
// itself, not just a full-length address. Per the single-default reading
// of the embedding, this only ever considers the v4-embedded branch: a
// separately inserted IPv6 ::/0 never answers it.
func (m *MixedMap[V]) LookupV4PrefixLPM(pfx netip.Prefix) (lpm netip.Prefix, val V, ok bool) {
	k4, err := key4FromPrefix(pfx)
	if err != nil {
		return lpm, val, false
	}
	key, val, ok := m.trie.LPM(embedKey4(k4))
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
func (m *MixedMap[V]) LookupV6(addr netip.Addr) (pfx netip.Prefix, val V, ok bool) {
	if addr.Is4() {
		return pfx, val, false
	}
	return m.LookupV6PrefixLPM(netip.PrefixFrom(addr, 128))
}

// LookupV6PrefixLPM returns the longest inserted IPv6 prefix covering pfx
// itself, not just a full-length address.
func (m *MixedMap[V]) LookupV6PrefixLPM(pfx netip.Prefix) (lpm netip.Prefix, val V, ok bool) {
	k6, err := key6FromPrefix(pfx)
	if err != nil {
		return lpm, val, false
	}
	key, val, ok := m.trie.LPM(k6)
	if !ok {
		return lpm, val, false
	}
	return prefixFromKey6(key), val, true
}

// Lookup dispatches to LookupV4 or LookupV6 by addr's family, treating a
// v4-mapped-in-v6 address as v4.
func (m *MixedMap[V]) Lookup(addr netip.Addr) (pfx netip.Prefix, val V, ok bool) {
	if addr.Is4() || addr.Is4In6() {
		return m.LookupV4(addr)
	}
	return m.LookupV6(addr)
}

// Size returns the total number of inserted prefixes across both families.
func (m *MixedMap[V]) Size() int { return m.trie.Len() }

// All iterates every (prefix, value) pair, decoding embedded IPv4 entries
// back to their dotted form.
func (m *MixedMap[V]) All(yield func(netip.Prefix, V) bool) {
	m.trie.All(func(k bitkey.Key6, v V) bool {
		if k4, isV4 := isEmbeddedV4(k); isV4 {
			return yield(prefixFromKey4(k4), v)
		}
		return yield(prefixFromKey6(k), v)
	})
}

// Compress freezes the current contents into an LC-trie.
func (m *MixedMap[V]) Compress(cfg lctrie.Config) *CompressedMixedMap[V] {
	return &CompressedMixedMap[V]{lc: lctrie.Build(m.trie, 128, cfg)}
}

// MixedSet is the set-shaped counterpart of MixedMap.
type MixedSet struct {
	m *MixedMap[struct{}]
}

// NewMixedSet returns an empty MixedSet.
func NewMixedSet() *MixedSet { return &MixedSet{m: NewMixedMap[struct{}]()} }

// InsertV4 embeds and adds an IPv4 prefix.
func (s *MixedSet) InsertV4(pfx netip.Prefix) (inserted bool, err error) {
	_, replaced, err := s.m.InsertV4(pfx, struct{}{})
	if err != nil {
		return false, err
	}
	return !replaced, nil
}

// InsertV6 adds an IPv6 prefix.
func (s *MixedSet) InsertV6(pfx netip.Prefix) (inserted bool, err error) {
	_, replaced, err := s.m.InsertV6(pfx, struct{}{})
	if err != nil {
		return false, err
	}
	return !replaced, nil
}

// DeleteV4 removes an embedded IPv4 prefix.
func (s *MixedSet) DeleteV4(pfx netip.Prefix) (ok bool, err error) {
	_, ok, err = s.m.DeleteV4(pfx)
	return ok, err
}

// DeleteV6 removes an IPv6 prefix.
func (s *MixedSet) DeleteV6(pfx netip.Prefix) (ok bool, err error) {
	_, ok, err = s.m.DeleteV6(pfx)
	return ok, err
}

// Lookup dispatches by addr's family.
func (s *MixedSet) Lookup(addr netip.Addr) (pfx netip.Prefix, ok bool) {
	pfx, _, ok = s.m.Lookup(addr)
	return pfx, ok
}

// LookupV4Prefix returns the longest inserted IPv4 prefix covering pfx
// itself, not just a full-length address.
func (s *MixedSet) LookupV4Prefix(pfx netip.Prefix) (lpm netip.Prefix, ok bool) {
	lpm, _, ok = s.m.LookupV4PrefixLPM(pfx)
	return lpm, ok
}

// LookupV6Prefix returns the longest inserted IPv6 prefix covering pfx
// itself, not just a full-length address.
func (s *MixedSet) LookupV6Prefix(pfx netip.Prefix) (lpm netip.Prefix, ok bool) {
	lpm, _, ok = s.m.LookupV6PrefixLPM(pfx)
	return lpm, ok
}

// Size returns the total number of inserted prefixes.
func (s *MixedSet) Size() int { return s.m.Size() }

// All iterates every inserted prefix.
func (s *MixedSet) All(yield func(netip.Prefix) bool) {
	s.m.All(func(p netip.Prefix, _ struct{}) bool { return yield(p) })
}

// Compress freezes the current contents into an LC-trie.
func (s *MixedSet) Compress(cfg lctrie.Config) *CompressedMixedSet {
	return &CompressedMixedSet{c: s.m.Compress(cfg)}
}
