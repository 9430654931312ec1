// Package pfg holds the points-to-set representation shared by both
// pointer-analysis variants (context-insensitive, package pta/ci, and
// context-sensitive, package pta/cs): arena-owned nodes with integer
// indices, where points-to sets are bitsets keyed by Obj index for fast
// difference and union. golang.org/x/tools's container/intsets.Sparse is
// exactly that bitset, and is the same type o2lab-go2's Go pointer
// analysis uses for pt(n).
//
// Both PTA variants instantiate PointsToSet over their own element type
// (heap.Obj for CI, *cs.CSObj for CS) — the only requirement is that the
// element carries a dense, arena-assigned Index.
package pfg

import (
	"sort"

	"golang.org/x/tools/container/intsets"
)

// Elem is anything a PointsToSet can hold: a dense, arena-assigned index
// identifies it uniquely for the bitset's purposes.
type Elem interface {
	Index() int
}

// PointsToSet is a monotonically growing set of objects: elements are
// only ever added, never removed.
type PointsToSet[E Elem] struct {
	bits    intsets.Sparse
	byIndex map[int]E
}

// New returns an empty PointsToSet.
func New[E Elem]() *PointsToSet[E] {
	return &PointsToSet[E]{byIndex: map[int]E{}}
}

// Singleton returns a PointsToSet containing exactly e.
func Singleton[E Elem](e E) *PointsToSet[E] {
	s := New[E]()
	s.AddObject(e)
	return s
}

// AddObject inserts e if not already present; returns true iff it was
// newly added — the "difference" signal propagate() needs.
func (s *PointsToSet[E]) AddObject(e E) bool {
	if s.bits.Insert(e.Index()) {
		s.byIndex[e.Index()] = e
		return true
	}
	return false
}

// Contains reports whether e is already in the set.
func (s *PointsToSet[E]) Contains(e E) bool { return s.bits.Has(e.Index()) }

// IsEmpty reports whether the set has no elements.
func (s *PointsToSet[E]) IsEmpty() bool { return s.bits.IsEmpty() }

// Len returns the number of elements.
func (s *PointsToSet[E]) Len() int { return s.bits.Len() }

// Objects returns the set's elements, sorted by index for deterministic,
// reproducible output.
func (s *PointsToSet[E]) Objects() []E {
	out := make([]E, 0, len(s.byIndex))
	idxs := make([]int, 0, len(s.byIndex))
	for i := range s.byIndex {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	for _, i := range idxs {
		out = append(out, s.byIndex[i])
	}
	return out
}

// UnionInto adds every element of s into tgt, returning the set of
// elements that were newly added to tgt — the difference set propagate()
// needs to forward along PFG edges.
func UnionInto[E Elem](s *PointsToSet[E], tgt *PointsToSet[E]) *PointsToSet[E] {
	diff := New[E]()
	for _, o := range s.Objects() {
		if tgt.AddObject(o) {
			diff.AddObject(o)
		}
	}
	return diff
}
