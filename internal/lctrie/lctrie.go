// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

// Package lctrie implements the level-compressed trie: a one-shot
// compression of a frozen internal/patricia.Trie into two flat arrays for
// cache-friendly lookup, following Nilsson & Karlsson's LC-trie
// construction. The node array holds internal nodes (which consume k bits
// at offset s and branch 2^k ways, children stored contiguously from a
// base offset) and leaves (which reference a slot in the prefix table,
// plus a precomputed escape index used when the leaf's own prefix doesn't
// actually cover the query).
package lctrie

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/patriciaroute/lpm/internal/patricia"
)

// Config tunes the fill-factor heuristic used to pick each subtree's
// branching factor. The zero value is not meant to be used directly; call
// DefaultConfig or let Build apply its defaults to an ad-hoc zero Config.
type Config struct {
	// Fill is the minimum average bucket occupancy, in (0,1], required to
	// accept a candidate branching factor k.
	Fill float64
	// KMax bounds the branching factor tried at any single subtree.
	KMax int
}

// DefaultConfig returns the fill/k-max pair recommended for realistic BGP
// tables.
func DefaultConfig() Config {
	return Config{Fill: 0.5, KMax: 16}
}

func (c Config) withDefaults() Config {
	if c.Fill <= 0 || c.Fill > 1 {
		c.Fill = 0.5
	}
	if c.KMax < 1 {
		c.KMax = 16
	}
	return c
}

type kind uint8

const (
	kindLeaf kind = iota
	kindInternal
)

type tnode struct {
	kind kind

	// internal only
	s    uint8
	k    uint8
	base int

	// leaf only: index into prefixKeys/prefixVals, or -1 if this slot is
	// a pure escape placeholder (an empty bucket with no prefix of its
	// own, only inheriting the nearest covering ancestor).
	prefixIdx int
	// escape is the nearest covering-ancestor prefix index for this leaf,
	// or -1 if no ancestor prefix covers this subtree at all.
	escape int
}

// LCTrie is a frozen, compressed lookup table over keys K carrying
// payload V. Build it from a populated patricia.Trie; there is no mutation
// API, matching spec's FrozenMutation non-goal.
type LCTrie[K patricia.Key[K], V any] struct {
	nodes      []tnode
	prefixKeys []K
	prefixVals []V
}

// Build compresses p into an LCTrie. width is the bit-width W of K (32 for
// bitkey.Key4, 128 for bitkey.Key6) -- the trie core has no way to learn
// this from K alone, so callers (the typed facades) supply it.
func Build[K patricia.Key[K], V any](p *patricia.Trie[K, V], width uint8, cfg Config) *LCTrie[K, V] {
	cfg = cfg.withDefaults()

	type entry struct {
		key K
		val V
	}
	var items []entry
	p.All(func(k K, v V) bool {
		items = append(items, entry{k, v})
		return true
	})
	sort.Slice(items, func(i, j int) bool { return keyLess(items[i].key, items[j].key) })

	lc := &LCTrie[K, V]{
		prefixKeys: make([]K, len(items)),
		prefixVals: make([]V, len(items)),
	}
	idxs := make([]int, len(items))
	for i, e := range items {
		lc.prefixKeys[i] = e.key
		lc.prefixVals[i] = e.val
		idxs[i] = i
	}

	if len(idxs) == 0 {
		lc.nodes = []tnode{{kind: kindLeaf, prefixIdx: -1, escape: -1}}
		return lc
	}

	lc.nodes = []tnode{{}}
	lc.nodes[0] = lc.build(idxs, 0, width, -1, cfg)
	return lc
}

// build produces the tnode covering idxs (all sharing a common prefix up
// to bit s, minus those pulled out as the subtree's covering default),
// recursing with escape updated to the nearest covering ancestor seen so
// far.
func (lc *LCTrie[K, V]) build(idxs []int, s, width uint8, escape int, cfg Config) tnode {
	localEscape := escape
	var rest []int
	for _, i := range idxs {
		if lc.prefixKeys[i].Len() <= s {
			// An item with length <= s covers this whole subrange. Such
			// items are nested prefixes of one another, and idxs is sorted
			// shorter-first, so the last (longest) one becomes this
			// subtree's default.
			localEscape = i
		} else {
			rest = append(rest, i)
		}
	}

	if len(rest) == 0 {
		return tnode{kind: kindLeaf, prefixIdx: localEscape, escape: localEscape}
	}
	if len(rest) == 1 {
		return tnode{kind: kindLeaf, prefixIdx: rest[0], escape: localEscape}
	}

	k := lc.chooseK(rest, s, width, cfg)
	nbuckets := 1 << k
	buckets := make([][]int, nbuckets)
	for _, i := range rest {
		// A prefix ending before bit s+k covers a run of 2^(s+k-len)
		// buckets, starting at its zero-padded nibble; it goes into each.
		nib := int(lc.prefixKeys[i].Nibble(s, k))
		span := 1
		if l := lc.prefixKeys[i].Len(); l < s+k {
			span = 1 << (s + k - l)
		}
		for b := nib; b < nib+span; b++ {
			buckets[b] = append(buckets[b], i)
		}
	}

	base := len(lc.nodes)
	lc.nodes = append(lc.nodes, make([]tnode, nbuckets)...)
	for b, bucket := range buckets {
		if len(bucket) == 0 {
			lc.nodes[base+b] = tnode{kind: kindLeaf, prefixIdx: -1, escape: localEscape}
			continue
		}
		lc.nodes[base+b] = lc.build(bucket, s+k, width, localEscape, cfg)
	}

	return tnode{kind: kindInternal, s: s, k: k, base: base}
}

// chooseK picks the largest branching factor in [1, KMax] whose resulting
// bucket occupancy meets the fill factor, falling back to 1. Occupancy is
// tracked with a bitset rather than a map.
func (lc *LCTrie[K, V]) chooseK(rest []int, s, width uint8, cfg Config) uint8 {
	maxAvail := int(width - s)
	maxK := cfg.KMax
	if maxAvail < maxK {
		maxK = maxAvail
	}
	if maxK < 1 {
		maxK = 1
	}

	for k := maxK; k >= 1; k-- {
		nbuckets := uint(1) << uint(k)
		occ := bitset.New(nbuckets)
		for _, i := range rest {
			nib := lc.prefixKeys[i].Nibble(s, uint8(k))
			occ.Set(uint(nib))
		}
		if float64(occ.Count()) >= cfg.Fill*float64(nbuckets) {
			return uint8(k)
		}
	}
	return 1
}

// keyLess orders keys lexicographically by bits, shorter keys before
// longer ones when the bits agree (the order Build's prefix table and the
// end-to-end scenarios in spec.md assume).
func keyLess[K patricia.Key[K]](a, b K) bool {
	max := a.Len()
	if b.Len() < max {
		max = b.Len()
	}
	for i := uint8(1); i <= max; i++ {
		ai, bi := a.Bit(i), b.Bit(i)
		if ai != bi {
			return ai < bi
		}
	}
	return a.Len() < b.Len()
}

func isPrefixOf[K patricia.Key[K]](p, q K) bool {
	return p.Len() <= q.Len() && p.CommonPrefixLen(q) >= p.Len()
}

// Lookup returns the longest prefix covering q: the leaf's own prefix if
// it actually covers q, else the precomputed escape (the nearest covering
// ancestor along the path taken), matching spec's LPM semantics.
func (lc *LCTrie[K, V]) Lookup(q K) (key K, val V, ok bool) {
	idx := 0
	for lc.nodes[idx].kind == kindInternal {
		n := lc.nodes[idx]
		nib := q.Nibble(n.s, n.k)
		idx = n.base + int(nib)
	}

	leaf := lc.nodes[idx]
	if leaf.prefixIdx >= 0 {
		p := lc.prefixKeys[leaf.prefixIdx]
		if isPrefixOf(p, q) {
			return p, lc.prefixVals[leaf.prefixIdx], true
		}
	}
	if leaf.escape >= 0 {
		return lc.prefixKeys[leaf.escape], lc.prefixVals[leaf.escape], true
	}
	return key, val, false
}

// Len returns the number of prefixes compressed into the trie.
func (lc *LCTrie[K, V]) Len() int { return len(lc.prefixKeys) }

// NodeCount returns the size of the internal node table, for diagnostics.
func (lc *LCTrie[K, V]) NodeCount() int { return len(lc.nodes) }

// Edge describes one LC-trie edge for the graphviz dumper (spec.md
// section 6): Dir is the nibble value selecting this child, not a binary
// direction as in the Patricia core's Edge.
type Edge struct {
	Parent, Child int
	Dir           int
	ChildIsLeaf   bool
}

// Edges yields every edge in the compressed node table, depth-first from
// the root.
func (lc *LCTrie[K, V]) Edges(yield func(Edge) bool) {
	var walk func(idx int) bool
	walk = func(idx int) bool {
		n := lc.nodes[idx]
		if n.kind != kindInternal {
			return true
		}
		nbuckets := 1 << n.k
		for d := 0; d < nbuckets; d++ {
			child := n.base + d
			e := Edge{Parent: idx, Child: child, Dir: d, ChildIsLeaf: lc.nodes[child].kind == kindLeaf}
			if !yield(e) {
				return false
			}
			if !walk(child) {
				return false
			}
		}
		return true
	}
	walk(0)
}
