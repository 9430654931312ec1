// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ci

import (
	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/classhierarchy"
	"git.amazon.com/pkg/tai-analyzer/heap"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/pfg"
	"git.amazon.com/pkg/tai-analyzer/result"
)

// Solver runs the context-insensitive pointer analysis described by spec
// §4.D, grounded step-for-step on Tai-e's ci.Solver: a worklist of
// (Pointer, PointsToSet-delta) entries, PFG edges that propagate deltas,
// and call/field edges that the solver adds lazily as new objects reach a
// call receiver or a field base.
type Solver struct {
	hierarchy *classhierarchy.Hierarchy
	heapModel heap.Model
	mgr       *Manager
	pfg       *graph
	cg        *callgraph.Graph
	reachable map[*ir.Method]bool
	worklist  []workEntry
}

type workEntry struct {
	n   Pointer
	pts *pfg.PointsToSet[heap.Obj]
}

// New returns a Solver ready to have entry points queued via Solve.
func New(hierarchy *classhierarchy.Hierarchy, heapModel heap.Model) *Solver {
	return &Solver{
		hierarchy: hierarchy,
		heapModel: heapModel,
		mgr:       NewManager(),
		pfg:       newGraph(),
		cg:        callgraph.New(),
		reachable: map[*ir.Method]bool{},
	}
}

// Solve runs the analysis to a fixpoint starting from entries and returns
// the frozen result.
func (s *Solver) Solve(entries []*ir.Method) *Result {
	for _, e := range entries {
		if e != nil {
			s.cg.AddEntry(e)
			s.addReachable(e)
		}
	}
	for len(s.worklist) > 0 {
		e := s.worklist[0]
		s.worklist = s.worklist[1:]
		s.propagate(e.n, e.pts)
	}
	return &Result{mgr: s.mgr, cg: s.cg}
}

func (s *Solver) addReachable(m *ir.Method) {
	if s.reachable[m] {
		return
	}
	s.reachable[m] = true
	s.cg.AddReachable(m)
	if m.IR == nil {
		return
	}
	for _, stmt := range m.IR.Stmts {
		switch st := stmt.(type) {
		case *ir.New:
			obj := s.heapModel.Obj(st)
			ptr := s.mgr.VarPtr(st.LValue)
			s.enqueue(ptr, pfg.Singleton(obj))
		case *ir.Copy:
			s.addPFGEdge(s.mgr.VarPtr(st.Src), s.mgr.VarPtr(st.LValue))
		case *ir.LoadField:
			if a, ok := st.Access.(ir.StaticFieldAccess); ok {
				s.addPFGEdge(s.mgr.StaticField(a.Field), s.mgr.VarPtr(st.LValue))
			}
		case *ir.StoreField:
			if a, ok := st.Access.(ir.StaticFieldAccess); ok {
				s.addPFGEdge(s.mgr.VarPtr(st.RValue), s.mgr.StaticField(a.Field))
			}
		case *ir.Invoke:
			if st.Exp.Receiver == nil {
				s.processCallEdge(m, st, nil)
			}
		}
	}
}

// addPFGEdge adds a PFG edge and, if it is new, immediately propagates the
// source's current points-to set along it: if the edge is new and source
// already has a non-empty points-to set, that set propagates too.
func (s *Solver) addPFGEdge(from, to Pointer) {
	if !s.pfg.addEdge(from, to) {
		return
	}
	if !from.pts().IsEmpty() {
		s.enqueue(to, from.pts())
	}
}

func (s *Solver) enqueue(n Pointer, pts *pfg.PointsToSet[heap.Obj]) {
	s.worklist = append(s.worklist, workEntry{n: n, pts: pts})
}

// propagate folds pts into n's points-to set, propagates the actually-new
// objects along n's PFG successors, and — if n is a variable pointer —
// triggers field/array/call processing for each newly-arrived object.
func (s *Solver) propagate(n Pointer, pts *pfg.PointsToSet[heap.Obj]) {
	delta := pfg.UnionInto(pts, n.pts())
	if delta.IsEmpty() {
		return
	}
	for _, succ := range s.pfg.succsOf(n) {
		s.enqueue(succ, delta)
	}
	vp, ok := n.(*varPtr)
	if !ok {
		return
	}
	for _, obj := range delta.Objects() {
		s.processInstanceAccesses(vp.v, obj)
		s.processArrayAccesses(vp.v, obj)
		s.processCallsOn(vp.v, obj)
	}
}

func (s *Solver) processInstanceAccesses(base *ir.Var, obj heap.Obj) {
	for _, ld := range base.LoadFields {
		a := ld.Access.(ir.InstanceFieldAccess)
		s.addPFGEdge(s.mgr.InstanceField(obj, a.Field), s.mgr.VarPtr(ld.LValue))
	}
	for _, st := range base.StoreFields {
		a := st.Access.(ir.InstanceFieldAccess)
		s.addPFGEdge(s.mgr.VarPtr(st.RValue), s.mgr.InstanceField(obj, a.Field))
	}
}

func (s *Solver) processArrayAccesses(base *ir.Var, obj heap.Obj) {
	for _, ld := range base.LoadArrays {
		s.addPFGEdge(s.mgr.ArrayIndex(obj), s.mgr.VarPtr(ld.LValue))
	}
	for _, st := range base.StoreArrays {
		s.addPFGEdge(s.mgr.VarPtr(st.RValue), s.mgr.ArrayIndex(obj))
	}
}

func (s *Solver) processCallsOn(recv *ir.Var, obj heap.Obj) {
	for _, site := range recv.Invokes {
		s.processCallEdge(site.Exp.Receiver.Method, site, obj)
	}
}

// processCallEdge resolves one call site to a callee (dispatching on obj's
// runtime type for virtual/interface calls) and links the call: adds the
// call-graph edge, connects args -> params and this -> receiver, connects
// callee's return variables -> the call's result variable, and makes the
// callee reachable.
func (s *Solver) processCallEdge(caller *ir.Method, site *ir.Invoke, obj heap.Obj) {
	var callee *ir.Method
	switch site.Kind {
	case ir.Static, ir.Special:
		callee = classhierarchy.Dispatch(site.Exp.Ref.DeclaringClass, site.Exp.Ref.Subsignature)
	default:
		if obj == nil {
			return
		}
		class := s.classOf(obj)
		callee = classhierarchy.Dispatch(class, site.Exp.Ref.Subsignature)
	}
	if callee == nil {
		return
	}
	// addPFGEdge/enqueue/addReachable below are all idempotent, so it is
	// harmless to re-run this wiring whenever a new object reaches the
	// receiver even though the call-graph edge itself is only recorded once.
	s.cg.AddEdge(callgraph.Edge{Caller: caller, Site: site, Callee: callee})
	if obj != nil && callee.IR != nil && callee.IR.This() != nil {
		s.enqueue(s.mgr.VarPtr(callee.IR.This()), pfg.Singleton(obj))
	}
	if callee.IR != nil {
		params := callee.IR.Params()
		if len(site.Exp.Args) != len(params) {
			result.Invariant("pta/ci", "call to %s passes %d args, wants %d", callee, len(site.Exp.Args), len(params))
		}
		for i, arg := range site.Exp.Args {
			if i < len(params) {
				s.addPFGEdge(s.mgr.VarPtr(arg), s.mgr.VarPtr(params[i]))
			}
		}
		if site.LValue != nil {
			for _, rv := range callee.IR.ReturnVars() {
				s.addPFGEdge(s.mgr.VarPtr(rv), s.mgr.VarPtr(site.LValue))
			}
		}
	}
	s.addReachable(callee)
}

func (s *Solver) classOf(obj heap.Obj) *ir.Class {
	ct, ok := obj.Type().(ir.ClassType)
	if !ok {
		return nil
	}
	return s.hierarchy.Lookup(ct.Name)
}
