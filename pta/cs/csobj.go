// Package cs implements context-sensitive pointer analysis: the same
// inclusion-based worklist algorithm as package pta/ci, but every
// variable and heap object is additionally tagged with a ctx.Context, and
// method/heap contexts are derived through a pluggable ctx.Selector
// (call-site- or object-sensitive). Grounded on Tai-e's
// pascal.taie.analysis.pta.cs.Solver.
package cs

import (
	"fmt"

	"git.amazon.com/pkg/tai-analyzer/ctx"
	"git.amazon.com/pkg/tai-analyzer/heap"
)

// CSObj is a heap object tagged with the context it was allocated under.
type CSObj struct {
	idx     int
	Context ctx.Context
	Obj     heap.Obj
}

func (o *CSObj) Index() int      { return o.idx }
func (o *CSObj) String() string  { return fmt.Sprintf("%s:%s", o.Context, o.Obj) }

// ObjManager interns one CSObj per (Context, Obj) pair and hands out
// dense indices so pfg.PointsToSet can bitset over CSObjs just as it does
// over plain heap.Objs in package pta/ci.
type ObjManager struct {
	next int
	byKey map[ctx.Context]map[heap.Obj]*CSObj
}

// NewObjManager returns an empty CSObj interner.
func NewObjManager() *ObjManager {
	return &ObjManager{byKey: map[ctx.Context]map[heap.Obj]*CSObj{}}
}

// Intern returns the canonical CSObj for (c, o), minting one if needed.
func (m *ObjManager) Intern(c ctx.Context, o heap.Obj) *CSObj {
	byObj := m.byKey[c]
	if byObj == nil {
		byObj = map[heap.Obj]*CSObj{}
		m.byKey[c] = byObj
	}
	if cso, ok := byObj[o]; ok {
		return cso
	}
	cso := &CSObj{idx: m.next, Context: c, Obj: o}
	m.next++
	byObj[o] = cso
	return cso
}
