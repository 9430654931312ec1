// Package heap implements the heap-model external collaborator: it turns
// allocation sites into abstract objects (Obj) and hands out the dense,
// arena-owned integer indices points-to sets need to be represented as
// bitsets.
package heap

import (
	"fmt"

	"git.amazon.com/pkg/tai-analyzer/ir"
)

// Obj is an abstract heap object. Every Obj — whether it models a `new`
// allocation site or (package taint) a synthesized taint marker — is
// minted through an Index so that pfg.PointsToSet can key on a dense
// integer instead of pointer identity.
type Obj interface {
	fmt.Stringer
	// Index is this object's position in the shared arena; unique for the
	// lifetime of the Manager that minted it.
	Index() int
	// Type is the static type new code sees the object as.
	Type() ir.Type
}

// AllocObj is the ordinary "one object per allocation site" abstraction.
type AllocObj struct {
	idx  int
	Site *ir.New
}

func (o *AllocObj) Index() int    { return o.idx }
func (o *AllocObj) Type() ir.Type { return o.Site.Type }
func (o *AllocObj) String() string {
	return fmt.Sprintf("New@%d:%s", o.Site.Index(), o.Site.Type)
}

// TaintObj is a synthetic object standing in for a value tainted by a
// source call, minted by TaintManager instead of a Model. It is an
// ordinary Obj as far as pfg.PointsToSet and the pointer-analysis
// propagation rules are concerned; only package pta/cs's taint hooks ever
// type-assert down to *TaintObj to check whether a points-to element is a
// mark rather than a real allocation.
type TaintObj struct {
	idx    int
	Source *ir.Invoke // the source call that produced this mark
	typ    ir.Type    // the mark's currently-carried type, retyped by transfers
}

func (o *TaintObj) Index() int    { return o.idx }
func (o *TaintObj) Type() ir.Type { return o.typ }
func (o *TaintObj) String() string {
	return fmt.Sprintf("Taint@%d:%s", o.Source.Index(), o.typ)
}

// Manager mints and interns Objs, handing out monotonically increasing
// indices. It is the shared arena: TaintManager mints its own Obj kind
// through the same Manager so every Obj in the program, allocation-site
// or taint marker, lives in one dense index space and can share a
// pfg.PointsToSet bitset universe.
type Manager struct {
	next int
}

// NewManager returns an empty object arena.
func NewManager() *Manager { return &Manager{} }

// NextIndex reserves and returns the next free dense index.
func (m *Manager) NextIndex() int {
	i := m.next
	m.next++
	return i
}

// TaintManager interns one TaintObj per (source call, carried type) pair:
// a source hook mints the initial mark, and a transfer hook mints a
// fresh, still-linked mark for the same source under its retyped To slot.
type TaintManager struct {
	mgr   *Manager
	byKey map[*ir.Invoke]map[ir.Type]*TaintObj
}

// NewTaintManager returns a taint-mark interner sharing mgr's index
// space.
func NewTaintManager(mgr *Manager) *TaintManager {
	return &TaintManager{mgr: mgr, byKey: map[*ir.Invoke]map[ir.Type]*TaintObj{}}
}

// Obj returns the (interned) taint mark for source carrying typ.
func (t *TaintManager) Obj(source *ir.Invoke, typ ir.Type) *TaintObj {
	byType := t.byKey[source]
	if byType == nil {
		byType = map[ir.Type]*TaintObj{}
		t.byKey[source] = byType
	}
	if o, ok := byType[typ]; ok {
		return o
	}
	o := &TaintObj{idx: t.mgr.NextIndex(), Source: source, typ: typ}
	byType[typ] = o
	return o
}

// Size returns the number of indices minted so far — the bitset universe
// size once the arena is frozen, after solve() completes and the
// worklist empties.
func (m *Manager) Size() int { return m.next }
