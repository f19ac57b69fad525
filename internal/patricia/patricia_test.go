// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

package patricia

import (
	"testing"

	"github.com/patriciaroute/lpm/bitkey"
)

func mustKey4(t *testing.T, a, b, c, d byte, l uint8) bitkey.Key4 {
	t.Helper()
	bits := uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d)
	k, err := bitkey.NewKey4(bits, l)
	if err != nil {
		t.Fatalf("NewKey4(%d.%d.%d.%d/%d): %v", a, b, c, d, l, err)
	}
	return k
}

func TestInsertGetExact(t *testing.T) {
	tr := New[bitkey.Key4, string]()

	tests := []struct {
		name string
		k    bitkey.Key4
		v    string
	}{
		{"default", mustKey4(t, 0, 0, 0, 0, 0), "default"},
		{"ten-8", mustKey4(t, 10, 0, 0, 0, 8), "ten-8"},
		{"ten-16", mustKey4(t, 10, 0, 0, 0, 16), "ten-16"},
		{"host", mustKey4(t, 10, 0, 5, 5, 32), "host"},
	}

	for _, tc := range tests {
		if _, replaced := tr.Insert(tc.k, tc.v); replaced {
			t.Fatalf("Insert(%v) unexpectedly replaced an existing value", tc.k)
		}
	}

	if got := tr.Len(); got != len(tests) {
		t.Fatalf("Len() = %d, want %d", got, len(tests))
	}

	for _, tc := range tests {
		v, ok := tr.Get(tc.k)
		if !ok {
			t.Errorf("Get(%v) ok = false, want true", tc.k)
			continue
		}
		if v != tc.v {
			t.Errorf("Get(%v) = %q, want %q", tc.k, v, tc.v)
		}
	}

	miss := mustKey4(t, 10, 0, 0, 0, 24)
	if _, ok := tr.Get(miss); ok {
		t.Errorf("Get(%v) ok = true for a prefix never inserted", miss)
	}
}

func TestInsertReplace(t *testing.T) {
	tr := New[bitkey.Key4, int]()
	k := mustKey4(t, 192, 168, 0, 0, 16)

	if _, replaced := tr.Insert(k, 1); replaced {
		t.Fatalf("first Insert reported replaced = true")
	}
	prev, replaced := tr.Insert(k, 2)
	if !replaced {
		t.Fatalf("second Insert reported replaced = false")
	}
	if prev != 1 {
		t.Fatalf("second Insert prev = %d, want 1", prev)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after a replace", tr.Len())
	}
	if v, ok := tr.Get(k); !ok || v != 2 {
		t.Fatalf("Get(%v) = (%d, %v), want (2, true)", k, v, ok)
	}
}

func TestLPMAncestorFallback(t *testing.T) {
	tr := New[bitkey.Key4, string]()

	ten8 := mustKey4(t, 10, 0, 0, 0, 8)
	ten16 := mustKey4(t, 10, 0, 0, 0, 16)
	tr.Insert(ten8, "ten-8")
	tr.Insert(ten16, "ten-16")

	// The /8 node branches on bit 9 with the /16 below it. An address under a
	// different /16 follows the same path down to the /16, which does not
	// cover it, so the search must fall back to the present /8 ancestor.
	addr := mustKey4(t, 10, 1, 2, 3, 32)
	k, v, ok := tr.LPM(addr)
	if !ok {
		t.Fatalf("LPM(%v) ok = false, want true", addr)
	}
	if k != ten8 || v != "ten-8" {
		t.Fatalf("LPM(%v) = (%v, %q), want (%v, %q)", addr, k, v, ten8, "ten-8")
	}

	addr2 := mustKey4(t, 10, 0, 0, 5, 32)
	k, v, ok = tr.LPM(addr2)
	if !ok || k != ten16 || v != "ten-16" {
		t.Fatalf("LPM(%v) = (%v, %q, %v), want (%v, %q, true)", addr2, k, v, ok, ten16, "ten-16")
	}
}

func TestLPMDefaultRoute(t *testing.T) {
	tr := New[bitkey.Key4, string]()
	def := mustKey4(t, 0, 0, 0, 0, 0)
	tr.Insert(def, "default")

	addr := mustKey4(t, 8, 8, 8, 8, 32)
	k, v, ok := tr.LPM(addr)
	if !ok || k != def || v != "default" {
		t.Fatalf("LPM(%v) = (%v, %q, %v), want (%v, %q, true)", addr, k, v, ok, def, "default")
	}
}

func TestLPMNoMatch(t *testing.T) {
	tr := New[bitkey.Key4, string]()
	tr.Insert(mustKey4(t, 10, 0, 0, 0, 8), "ten")

	addr := mustKey4(t, 192, 168, 1, 1, 32)
	if _, _, ok := tr.LPM(addr); ok {
		t.Fatalf("LPM(%v) ok = true, want false (no covering prefix)", addr)
	}
}

func TestDeleteLeaf(t *testing.T) {
	tr := New[bitkey.Key4, int]()
	a := mustKey4(t, 10, 0, 0, 0, 8)
	b := mustKey4(t, 192, 168, 0, 0, 16)
	tr.Insert(a, 1)
	tr.Insert(b, 2)

	prev, ok := tr.Delete(b)
	if !ok || prev != 2 {
		t.Fatalf("Delete(%v) = (%d, %v), want (2, true)", b, prev, ok)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after delete", tr.Len())
	}
	if _, ok := tr.Get(b); ok {
		t.Fatalf("Get(%v) ok = true after delete", b)
	}
	if v, ok := tr.Get(a); !ok || v != 1 {
		t.Fatalf("Get(%v) = (%d, %v), want (1, true) (unrelated key disturbed)", a, v, ok)
	}
}

func TestDeleteBranchingAncestor(t *testing.T) {
	tr := New[bitkey.Key4, string]()
	ten8 := mustKey4(t, 10, 0, 0, 0, 8)
	ten16 := mustKey4(t, 10, 0, 0, 0, 16)
	tr.Insert(ten8, "ten-8")
	tr.Insert(ten16, "ten-16")

	if _, ok := tr.Delete(ten8); !ok {
		t.Fatalf("Delete(%v) ok = false", ten8)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
	// ten8 still branches structurally (ten16 descends from it) so it must
	// no longer be present, but lookups for addresses only covered by it
	// must fail while ten16 keeps working.
	if _, ok := tr.Get(ten8); ok {
		t.Fatalf("Get(%v) ok = true after delete of a still-branching node", ten8)
	}
	if v, ok := tr.Get(ten16); !ok || v != "ten-16" {
		t.Fatalf("Get(%v) = (%q, %v), want (\"ten-16\", true)", ten16, v, ok)
	}

	addr := mustKey4(t, 10, 1, 0, 0, 32) // covered by ten8 only
	if _, _, ok := tr.LPM(addr); ok {
		t.Fatalf("LPM(%v) ok = true, want false after ten-8 deleted", addr)
	}
}

func TestDeleteThenReinsert(t *testing.T) {
	tr := New[bitkey.Key4, int]()
	a := mustKey4(t, 10, 0, 0, 0, 8)
	b := mustKey4(t, 20, 0, 0, 0, 8)
	c := mustKey4(t, 30, 0, 0, 0, 8)

	tr.Insert(a, 1)
	tr.Insert(b, 2)
	tr.Insert(c, 3)

	tr.Delete(b)
	if tr.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tr.Len())
	}

	if _, replaced := tr.Insert(b, 20); replaced {
		t.Fatalf("Insert(%v) after delete reported replaced = true", b)
	}
	if tr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 after reinsert", tr.Len())
	}
	for _, tc := range []struct {
		k bitkey.Key4
		v int
	}{{a, 1}, {b, 20}, {c, 3}} {
		if v, ok := tr.Get(tc.k); !ok || v != tc.v {
			t.Errorf("Get(%v) = (%d, %v), want (%d, true)", tc.k, v, ok, tc.v)
		}
	}
}

func TestDeleteEmptyRoot(t *testing.T) {
	tr := New[bitkey.Key4, int]()
	k := mustKey4(t, 1, 2, 3, 4, 32)
	if _, ok := tr.Delete(k); ok {
		t.Fatalf("Delete(%v) on empty trie ok = true", k)
	}
}

func TestDeleteOnlyKey(t *testing.T) {
	tr := New[bitkey.Key4, int]()
	k := mustKey4(t, 1, 2, 3, 4, 32)
	tr.Insert(k, 42)

	prev, ok := tr.Delete(k)
	if !ok || prev != 42 {
		t.Fatalf("Delete(%v) = (%d, %v), want (42, true)", k, prev, ok)
	}
	if tr.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tr.Len())
	}
	if _, ok := tr.Get(k); ok {
		t.Fatalf("Get(%v) ok = true after deleting the only key", k)
	}

	// The trie must still be usable after emptying out.
	if _, replaced := tr.Insert(k, 7); replaced {
		t.Fatalf("Insert(%v) after emptying reported replaced = true", k)
	}
	if v, ok := tr.Get(k); !ok || v != 7 {
		t.Fatalf("Get(%v) = (%d, %v), want (7, true)", k, v, ok)
	}
}

func TestAllVisitsEveryPresentKey(t *testing.T) {
	tr := New[bitkey.Key4, int]()
	want := map[bitkey.Key4]int{
		mustKey4(t, 0, 0, 0, 0, 0):    0,
		mustKey4(t, 10, 0, 0, 0, 8):   1,
		mustKey4(t, 10, 0, 0, 0, 16):  2,
		mustKey4(t, 192, 168, 0, 0, 24): 3,
	}
	for k, v := range want {
		tr.Insert(k, v)
	}

	got := map[bitkey.Key4]int{}
	tr.All(func(k bitkey.Key4, v int) bool {
		got[k] = v
		return true
	})

	if len(got) != len(want) {
		t.Fatalf("All() visited %d keys, want %d", len(got), len(want))
	}
	for k, v := range want {
		gv, ok := got[k]
		if !ok || gv != v {
			t.Errorf("All() missing or wrong value for %v: got (%d, %v), want %d", k, gv, ok, v)
		}
	}
}

func TestAllEarlyStop(t *testing.T) {
	tr := New[bitkey.Key4, int]()
	tr.Insert(mustKey4(t, 1, 0, 0, 0, 8), 1)
	tr.Insert(mustKey4(t, 2, 0, 0, 0, 8), 2)
	tr.Insert(mustKey4(t, 3, 0, 0, 0, 8), 3)

	count := 0
	tr.All(func(bitkey.Key4, int) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("All() visited %d entries after yield returned false, want 1", count)
	}
}

func TestEdgesCoverAllPresentKeys(t *testing.T) {
	tr := New[bitkey.Key4, int]()
	ten8 := mustKey4(t, 10, 0, 0, 0, 8)
	ten16 := mustKey4(t, 10, 0, 0, 0, 16)
	tr.Insert(ten8, 1)
	tr.Insert(ten16, 2)

	edgeCount := 0
	tr.Edges(func(e Edge) bool {
		edgeCount++
		return true
	})
	if edgeCount == 0 {
		t.Fatalf("Edges() produced no edges for a two-node trie")
	}
}
