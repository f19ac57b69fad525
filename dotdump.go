// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

package lpm

import (
	"fmt"
	"io"
	"strings"

	"github.com/patriciaroute/lpm/bitkey"
	"github.com/patriciaroute/lpm/internal/lctrie"
	"github.com/patriciaroute/lpm/internal/patricia"
)

// dumpPatriciaDOT renders a Patricia trie's edge set to w as DOT text.
// Back edges (the "stop here, the target itself is the match" loops) are
// drawn dashed so the graph stays readable at a glance.
func dumpPatriciaDOT[K patricia.Key[K], V any](w io.Writer, t *patricia.Trie[K, V]) error {
	if _, err := fmt.Fprintln(w, "digraph patricia {"); err != nil {
		return err
	}

	var ferr error
	t.Edges(func(e patricia.Edge) bool {
		style := "solid"
		if e.IsBackEdge {
			style = "dashed"
		}
		if _, err := fmt.Fprintf(w, "  n%d -> n%d [label=%q style=%s];\n", e.Parent, e.Child, dirLabel(e.Dir), style); err != nil {
			ferr = err
			return false
		}
		return true
	})
	if ferr != nil {
		return ferr
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

// dumpLCTrieDOT renders a compressed LC-trie's edge set to w as DOT text.
// Each edge's child is drawn as an ellipse if it is a leaf and as a box if
// it is internal; the root n0 is never a child and gets no shape attribute.
func dumpLCTrieDOT[K patricia.Key[K], V any](w io.Writer, lc *lctrie.LCTrie[K, V]) error {
	if _, err := fmt.Fprintln(w, "digraph lctrie {"); err != nil {
		return err
	}

	var ferr error
	lc.Edges(func(e lctrie.Edge) bool {
		shape := "box"
		if e.ChildIsLeaf {
			shape = "ellipse"
		}
		if _, err := fmt.Fprintf(w, "  n%d -> n%d [label=%q];\n  n%d [shape=%s];\n", e.Parent, e.Child, fmt.Sprint(e.Dir), e.Child, shape); err != nil {
			ferr = err
			return false
		}
		return true
	})
	if ferr != nil {
		return ferr
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

func dirLabel(d uint8) string {
	if d == 0 {
		return "0"
	}
	return "1"
}

// DumpDOT writes the underlying Patricia trie as DOT text.
func (m *Map4[V]) DumpDOT(w io.Writer) error { return dumpPatriciaDOT[bitkey.Key4, V](w, m.trie) }

// DumpDOTString is DumpDOT rendered to a string.
func (m *Map4[V]) DumpDOTString() string { return mustDumpString(m.DumpDOT) }

// DumpDOT writes the underlying Patricia trie as DOT text.
func (s *Set4) DumpDOT(w io.Writer) error { return s.m.DumpDOT(w) }

// DumpDOTString is DumpDOT rendered to a string.
func (s *Set4) DumpDOTString() string { return mustDumpString(s.DumpDOT) }

// DumpDOT writes the underlying Patricia trie as DOT text.
func (m *Map6[V]) DumpDOT(w io.Writer) error { return dumpPatriciaDOT[bitkey.Key6, V](w, m.trie) }

// DumpDOTString is DumpDOT rendered to a string.
func (m *Map6[V]) DumpDOTString() string { return mustDumpString(m.DumpDOT) }

// DumpDOT writes the underlying Patricia trie as DOT text.
func (s *Set6) DumpDOT(w io.Writer) error { return s.m.DumpDOT(w) }

// DumpDOTString is DumpDOT rendered to a string.
func (s *Set6) DumpDOTString() string { return mustDumpString(s.DumpDOT) }

// DumpDOT writes the underlying Patricia trie as DOT text.
func (m *MixedMap[V]) DumpDOT(w io.Writer) error { return dumpPatriciaDOT[bitkey.Key6, V](w, m.trie) }

// DumpDOTString is DumpDOT rendered to a string.
func (m *MixedMap[V]) DumpDOTString() string { return mustDumpString(m.DumpDOT) }

// DumpDOT writes the underlying Patricia trie as DOT text.
func (s *MixedSet) DumpDOT(w io.Writer) error { return s.m.DumpDOT(w) }

// DumpDOTString is DumpDOT rendered to a string.
func (s *MixedSet) DumpDOTString() string { return mustDumpString(s.DumpDOT) }

// DumpDOT writes the compressed LC-trie as DOT text.
func (c *CompressedMap4[V]) DumpDOT(w io.Writer) error { return dumpLCTrieDOT[bitkey.Key4, V](w, c.lc) }

// DumpDOTString is DumpDOT rendered to a string.
func (c *CompressedMap4[V]) DumpDOTString() string { return mustDumpString(c.DumpDOT) }

// DumpDOT writes the compressed LC-trie as DOT text.
func (s *CompressedSet4) DumpDOT(w io.Writer) error { return s.c.DumpDOT(w) }

// DumpDOTString is DumpDOT rendered to a string.
func (s *CompressedSet4) DumpDOTString() string { return mustDumpString(s.DumpDOT) }

// DumpDOT writes the compressed LC-trie as DOT text.
func (c *CompressedMap6[V]) DumpDOT(w io.Writer) error { return dumpLCTrieDOT[bitkey.Key6, V](w, c.lc) }

// DumpDOTString is DumpDOT rendered to a string.
func (c *CompressedMap6[V]) DumpDOTString() string { return mustDumpString(c.DumpDOT) }

// DumpDOT writes the compressed LC-trie as DOT text.
func (s *CompressedSet6) DumpDOT(w io.Writer) error { return s.c.DumpDOT(w) }

// DumpDOTString is DumpDOT rendered to a string.
func (s *CompressedSet6) DumpDOTString() string { return mustDumpString(s.DumpDOT) }

// DumpDOT writes the compressed LC-trie as DOT text.
func (c *CompressedMixedMap[V]) DumpDOT(w io.Writer) error {
	return dumpLCTrieDOT[bitkey.Key6, V](w, c.lc)
}

// DumpDOTString is DumpDOT rendered to a string.
func (c *CompressedMixedMap[V]) DumpDOTString() string { return mustDumpString(c.DumpDOT) }

// DumpDOT writes the compressed LC-trie as DOT text.
func (s *CompressedMixedSet) DumpDOT(w io.Writer) error { return s.c.DumpDOT(w) }

// DumpDOTString is DumpDOT rendered to a string.
func (s *CompressedMixedSet) DumpDOTString() string { return mustDumpString(s.DumpDOT) }

// mustDumpString is just a wrapper for dump, mirroring the teacher's
// dumpString helper: a strings.Builder fed to an io.Writer-taking core.
func mustDumpString(dump func(io.Writer) error) string {
	b := new(strings.Builder)
	if err := dump(b); err != nil {
		panic(err)
	}
	return b.String()
}
