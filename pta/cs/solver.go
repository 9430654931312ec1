package cs

import (
	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/classhierarchy"
	"git.amazon.com/pkg/tai-analyzer/ctx"
	"git.amazon.com/pkg/tai-analyzer/heap"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/pfg"
	"git.amazon.com/pkg/tai-analyzer/result"
	"git.amazon.com/pkg/tai-analyzer/taint"
)

// Solver runs the context-sensitive pointer analysis: pta/ci's algorithm,
// generalized so a method may be analyzed once per distinct Context it is
// reached under and every heap object carries the context it was
// allocated in.
type Solver struct {
	hierarchy *classhierarchy.Hierarchy
	heapModel heap.Model
	selector  ctx.Selector

	mgr    *Manager
	objMgr *ObjManager
	pfg    *graph
	cg     *callgraph.Graph

	reachable map[csMethod]bool
	worklist  []workEntry

	siteIDs  map[any]ctx.Elem
	nextSite int

	// taint-analysis state, populated only when WithTaint is called;
	// taintCfg == nil means taint tracking is off.
	taintCfg       *taint.Config
	taintMgr       *heap.TaintManager
	taintTransfers map[Pointer][]taintEdge
	taintSinkSites []taintSite
	taintFlows     map[taint.Flow]bool
}

type csMethod struct {
	c ctx.Context
	m *ir.Method
}

type workEntry struct {
	n   Pointer
	pts *pfg.PointsToSet[*CSObj]
}

// New returns a Solver configured with sel as its context-selection
// strategy (a pluggable k-CFA/object-sensitivity variant).
func New(hierarchy *classhierarchy.Hierarchy, heapModel heap.Model, sel ctx.Selector) *Solver {
	return &Solver{
		hierarchy: hierarchy,
		heapModel: heapModel,
		selector:  sel,
		mgr:       NewManager(),
		objMgr:    NewObjManager(),
		pfg:       newGraph(),
		cg:        callgraph.New(),
		reachable: map[csMethod]bool{},
		siteIDs:   map[any]ctx.Elem{},
	}
}

// Solve runs the analysis to a fixpoint with every entry method started
// in the empty context, and returns the frozen result.
func (s *Solver) Solve(entries []*ir.Method) *Result {
	for _, e := range entries {
		if e == nil {
			continue
		}
		s.cg.AddEntry(e)
		s.addReachable(ctx.Empty, e)
	}
	for len(s.worklist) > 0 {
		e := s.worklist[0]
		s.worklist = s.worklist[1:]
		s.propagate(e.n, e.pts)
	}
	if s.taintCfg != nil {
		s.checkTaintSinks()
	}
	return &Result{mgr: s.mgr, cg: s.cg, flows: s.taintFlows}
}

func (s *Solver) elemFor(site any) ctx.Elem {
	if id, ok := s.siteIDs[site]; ok {
		return id
	}
	id := ctx.Elem(s.nextSite)
	s.nextSite++
	s.siteIDs[site] = id
	return id
}

// allocElem returns the context element a *ir.New contributes: its own
// site identity under object-sensitivity, or its declared type under
// type-sensitivity, per ctx.Selector.TypeAbstracted.
func (s *Solver) allocElem(st *ir.New) ctx.Elem {
	if s.selector.TypeAbstracted() {
		return s.elemFor(st.Type)
	}
	return s.elemFor(st)
}

func (s *Solver) addReachable(c ctx.Context, m *ir.Method) {
	key := csMethod{c: c, m: m}
	if s.reachable[key] {
		return
	}
	s.reachable[key] = true
	s.cg.AddReachable(m)
	if m.IR == nil {
		return
	}
	for _, stmt := range m.IR.Stmts {
		switch st := stmt.(type) {
		case *ir.New:
			heapCtx := s.selector.SelectHeap(c, s.allocElem(st))
			cso := s.objMgr.Intern(heapCtx, s.heapModel.Obj(st))
			s.enqueue(s.mgr.VarPtr(c, st.LValue), pfg.Singleton(cso))
		case *ir.Copy:
			s.addPFGEdge(s.mgr.VarPtr(c, st.Src), s.mgr.VarPtr(c, st.LValue))
		case *ir.LoadField:
			if a, ok := st.Access.(ir.StaticFieldAccess); ok {
				s.addPFGEdge(s.mgr.StaticField(a.Field), s.mgr.VarPtr(c, st.LValue))
			}
		case *ir.StoreField:
			if a, ok := st.Access.(ir.StaticFieldAccess); ok {
				s.addPFGEdge(s.mgr.VarPtr(c, st.RValue), s.mgr.StaticField(a.Field))
			}
		case *ir.Invoke:
			s.applyTaintHooks(c, st)
			if st.Exp.Receiver == nil {
				s.processCallEdge(c, m, st, nil)
			}
		}
	}
}

func (s *Solver) addPFGEdge(from, to Pointer) {
	if !s.pfg.addEdge(from, to) {
		return
	}
	if !from.pts().IsEmpty() {
		s.enqueue(to, from.pts())
	}
}

func (s *Solver) enqueue(n Pointer, pts *pfg.PointsToSet[*CSObj]) {
	s.worklist = append(s.worklist, workEntry{n: n, pts: pts})
}

func (s *Solver) propagate(n Pointer, pts *pfg.PointsToSet[*CSObj]) {
	delta := pfg.UnionInto(pts, n.pts())
	if delta.IsEmpty() {
		return
	}
	for _, succ := range s.pfg.succsOf(n) {
		s.enqueue(succ, delta)
	}
	if s.taintCfg != nil {
		s.propagateTaintTransfer(n, delta)
	}
	vp, ok := n.(*csVar)
	if !ok {
		return
	}
	for _, obj := range delta.Objects() {
		s.processInstanceAccesses(vp.c, vp.v, obj)
		s.processArrayAccesses(vp.c, vp.v, obj)
		s.processCallsOn(vp.c, vp.v, obj)
	}
}

func (s *Solver) processInstanceAccesses(c ctx.Context, base *ir.Var, obj *CSObj) {
	for _, ld := range base.LoadFields {
		a := ld.Access.(ir.InstanceFieldAccess)
		s.addPFGEdge(s.mgr.InstanceField(obj, a.Field), s.mgr.VarPtr(c, ld.LValue))
	}
	for _, st := range base.StoreFields {
		a := st.Access.(ir.InstanceFieldAccess)
		s.addPFGEdge(s.mgr.VarPtr(c, st.RValue), s.mgr.InstanceField(obj, a.Field))
	}
}

func (s *Solver) processArrayAccesses(c ctx.Context, base *ir.Var, obj *CSObj) {
	for _, ld := range base.LoadArrays {
		s.addPFGEdge(s.mgr.ArrayIndex(obj), s.mgr.VarPtr(c, ld.LValue))
	}
	for _, st := range base.StoreArrays {
		s.addPFGEdge(s.mgr.VarPtr(c, st.RValue), s.mgr.ArrayIndex(obj))
	}
}

func (s *Solver) processCallsOn(c ctx.Context, recv *ir.Var, obj *CSObj) {
	for _, site := range recv.Invokes {
		s.processCallEdge(c, site.Exp.Receiver.Method, site, obj)
	}
}

func (s *Solver) processCallEdge(c ctx.Context, caller *ir.Method, site *ir.Invoke, obj *CSObj) {
	var callee *ir.Method
	switch site.Kind {
	case ir.Static, ir.Special:
		callee = classhierarchy.Dispatch(site.Exp.Ref.DeclaringClass, site.Exp.Ref.Subsignature)
	default:
		if obj == nil {
			return
		}
		ct, ok := obj.Obj.Type().(ir.ClassType)
		if !ok {
			return
		}
		callee = classhierarchy.Dispatch(s.hierarchy.Lookup(ct.Name), site.Exp.Ref.Subsignature)
	}
	if callee == nil {
		return
	}
	recvHeapCtx := c
	if obj != nil {
		recvHeapCtx = obj.Context
	}
	calleeCtx := s.selector.SelectMethod(c, s.elemFor(site), recvHeapCtx)

	// The call-graph edge is recorded once per (caller, site, callee)
	// regardless of context; points-to precision still comes from calleeCtx
	// below, which is per-context even when the edge itself is shared.
	s.cg.AddEdge(callgraph.Edge{Caller: caller, Site: site, Callee: callee})
	if obj != nil && callee.IR != nil && callee.IR.This() != nil {
		s.enqueue(s.mgr.VarPtr(calleeCtx, callee.IR.This()), pfg.Singleton(obj))
	}
	if callee.IR != nil {
		params := callee.IR.Params()
		if len(site.Exp.Args) != len(params) {
			result.Invariant("pta/cs", "call to %s passes %d args, wants %d", callee, len(site.Exp.Args), len(params))
		}
		for i, arg := range site.Exp.Args {
			if i < len(params) {
				s.addPFGEdge(s.mgr.VarPtr(c, arg), s.mgr.VarPtr(calleeCtx, params[i]))
			}
		}
		if site.LValue != nil {
			for _, rv := range callee.IR.ReturnVars() {
				s.addPFGEdge(s.mgr.VarPtr(calleeCtx, rv), s.mgr.VarPtr(c, site.LValue))
			}
		}
	}
	s.addReachable(calleeCtx, callee)
}
