// Package interproc implements inter-procedural constant
// propagation: the intra-procedural lattice and transfer rules of package
// dataflow, run over an icfg.Graph instead of a single CFG, with
// points-to-resolved heap accesses routed through a HeapFactStore.
// Grounded on Tai-e's InterConstantPropagation/InterSolver.
package interproc

import (
	"git.amazon.com/pkg/tai-analyzer/heap"
	"git.amazon.com/pkg/tai-analyzer/icfg"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/lattice"
)

// PointerInfo is the points-to query this analysis needs; package pta/ci's
// Result satisfies it directly.
type PointerInfo interface {
	PointsToSetOf(v *ir.Var) []heap.Obj
}

// Result holds, for every statement, the fixpoint local-variable fact in
// effect immediately after that statement executes.
type Result struct {
	out map[ir.Stmt]*lattice.CPFact
}

// OutFact returns the fact in effect immediately after s executes.
func (r *Result) OutFact(s ir.Stmt) *lattice.CPFact { return r.out[s] }

// Solve runs inter-procedural constant propagation to a fixpoint over g,
// using pts to resolve field/array accesses.
func Solve(g *icfg.Graph, pts PointerInfo, entries []*ir.Method) *Result {
	r := &Result{out: map[ir.Stmt]*lattice.CPFact{}}
	heapStore := NewHeapFactStore()

	loadsByField := map[*ir.Field][]*ir.LoadField{}
	var allArrayLoads []*ir.LoadArray

	var allStmts []ir.Stmt
	for _, m := range methodsOf(entries, g) {
		if m.IR == nil {
			continue
		}
		for _, s := range m.IR.Stmts {
			allStmts = append(allStmts, s)
			r.out[s] = lattice.NewCPFact()
			switch st := s.(type) {
			case *ir.LoadField:
				if f := st.Field(); f != nil {
					loadsByField[f] = append(loadsByField[f], st)
				}
			case *ir.LoadArray:
				allArrayLoads = append(allArrayLoads, st)
			}
		}
		if m.IR.CFG.Entry != nil {
			r.out[m.IR.CFG.Entry] = lattice.NewCPFact()
		}
		if m.IR.CFG.Exit != nil {
			r.out[m.IR.CFG.Exit] = lattice.NewCPFact()
		}
	}

	entrySet := map[ir.Stmt]bool{}
	for _, m := range entries {
		if m != nil && m.IR != nil {
			entrySet[m.IR.CFG.Entry] = true
			r.out[m.IR.CFG.Entry] = boundaryFact(m)
		}
	}

	var worklist []ir.Stmt
	queued := map[ir.Stmt]bool{}
	enqueue := func(s ir.Stmt) {
		if s == nil || queued[s] {
			return
		}
		worklist = append(worklist, s)
		queued[s] = true
	}
	for _, s := range allStmts {
		enqueue(s)
	}

	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]
		queued[s] = false

		merged := lattice.NewCPFact()
		if entrySet[s] {
			merged = r.out[s].Copy()
		}
		for _, e := range g.PredsOf(s) {
			lattice.MeetInto(edgeFact(g, e, r), merged)
		}

		heapChanged := applyHeapEffects(s, merged, heapStore, pts)
		changed := !merged.Equal(r.out[s])
		r.out[s] = merged

		if changed || heapChanged {
			for _, e := range g.SuccsOf(s) {
				enqueue(e.To)
			}
			if heapChanged {
				for _, other := range loadsByField[fieldOf(s)] {
					enqueue(other)
				}
				for _, other := range allArrayLoads {
					enqueue(other)
				}
			}
		}
	}
	return r
}

// edgeFact computes the fact e carries into e.To: a Normal
// edge passes its source's OUT fact through unchanged; a Call edge binds
// the callee's formals to the actuals evaluated in the caller's OUT fact
// at the call site; a Return edge binds the call's own result var to the
// meet of the callee's return vars; a CallToReturn edge passes the
// caller's OUT fact through with the call's own result var killed, so it
// does not clobber (or get clobbered by) the value the Return edge binds
// for that same var.
func edgeFact(g *icfg.Graph, e icfg.Edge, r *Result) *lattice.CPFact {
	switch e.Kind {
	case icfg.Call:
		return callEdgeFact(g, e, r)
	case icfg.Return:
		return returnEdgeFact(g, e, r)
	case icfg.CallToReturn:
		return callToReturnEdgeFact(e, r)
	default:
		return r.out[e.From]
	}
}

func callEdgeFact(g *icfg.Graph, e icfg.Edge, r *Result) *lattice.CPFact {
	fact := lattice.NewCPFact()
	if e.Call == nil {
		return fact
	}
	callee := g.MethodOf(e.To)
	if callee == nil || callee.IR == nil {
		return fact
	}
	out := r.out[e.From]
	params := callee.IR.Params()
	args := e.Call.Exp.Args
	for i, p := range params {
		if i >= len(args) || !ir.CanHoldInt(p) {
			continue
		}
		fact.Update(p, lattice.Evaluate(args[i], out))
	}
	return fact
}

func returnEdgeFact(g *icfg.Graph, e icfg.Edge, r *Result) *lattice.CPFact {
	fact := lattice.NewCPFact()
	if e.Call == nil || e.Call.LValue == nil || !ir.CanHoldInt(e.Call.LValue) {
		return fact
	}
	callee := g.MethodOf(e.From)
	if callee == nil || callee.IR == nil {
		return fact
	}
	out := r.out[e.From]
	val := lattice.UndefValue()
	for _, rv := range callee.IR.ReturnVars() {
		val = lattice.Meet(val, out.Get(rv))
	}
	fact.Update(e.Call.LValue, val)
	return fact
}

func callToReturnEdgeFact(e icfg.Edge, r *Result) *lattice.CPFact {
	fact := r.out[e.From].Copy()
	if e.Call != nil && e.Call.LValue != nil {
		fact.Remove(e.Call.LValue)
	}
	return fact
}

func fieldOf(s ir.Stmt) *ir.Field {
	switch st := s.(type) {
	case *ir.StoreField:
		return st.Field()
	}
	return nil
}

// applyHeapEffects folds any heap write in at s into heapStore, and binds
// s's own defined Var (if it reads a field/array) from the store. It
// returns whether the heap store itself changed, which the caller uses to
// decide whether to re-enqueue every other load of the same shape.
func applyHeapEffects(s ir.Stmt, in *lattice.CPFact, heapStore *HeapFactStore, pts PointerInfo) bool {
	changed := false
	switch st := s.(type) {
	case *ir.StoreField:
		if !ir.CanHoldInt(st.RValue) {
			break
		}
		val := lattice.Evaluate(st.RValue, in)
		if a, ok := st.Access.(ir.InstanceFieldAccess); ok {
			for _, obj := range pts.PointsToSetOf(a.Base) {
				if heapStore.MergeInstance(obj, a.Field, val) {
					changed = true
				}
			}
		} else if a, ok := st.Access.(ir.StaticFieldAccess); ok {
			if heapStore.MergeStatic(a.Field, val) {
				changed = true
			}
		}
	case *ir.StoreArray:
		if !ir.CanHoldInt(st.RValue) {
			break
		}
		val := lattice.Evaluate(st.RValue, in)
		idx := lattice.Evaluate(st.Access.Index, in)
		for _, obj := range pts.PointsToSetOf(st.Access.Base) {
			if heapStore.MergeArray(obj, idx, val) {
				changed = true
			}
		}
	case *ir.LoadField:
		if !ir.CanHoldInt(st.LValue) {
			break
		}
		if a, ok := st.Access.(ir.InstanceFieldAccess); ok {
			result := lattice.UndefValue()
			for _, obj := range pts.PointsToSetOf(a.Base) {
				result = lattice.Meet(result, heapStore.GetInstance(obj, a.Field))
			}
			in.Update(st.LValue, result)
		} else if a, ok := st.Access.(ir.StaticFieldAccess); ok {
			in.Update(st.LValue, heapStore.GetStatic(a.Field))
		}
	case *ir.LoadArray:
		if !ir.CanHoldInt(st.LValue) {
			break
		}
		idx := lattice.Evaluate(st.Access.Index, in)
		result := lattice.UndefValue()
		for _, obj := range pts.PointsToSetOf(st.Access.Base) {
			result = lattice.Meet(result, heapStore.GetArray(obj, idx))
		}
		in.Update(st.LValue, result)
	case ir.AssignStmt:
		if def, ok := st.Def(); ok && ir.CanHoldInt(def) {
			in.Update(def, lattice.Evaluate(st.RValue(), in))
		}
	}
	return changed
}

func boundaryFact(m *ir.Method) *lattice.CPFact {
	fact := lattice.NewCPFact()
	for _, p := range m.Params {
		if ir.CanHoldInt(p) {
			fact.Update(p, lattice.NACValue())
		}
	}
	return fact
}

func methodsOf(entries []*ir.Method, g *icfg.Graph) []*ir.Method {
	seen := map[*ir.Method]bool{}
	var out []*ir.Method
	var walk func(m *ir.Method)
	walk = func(m *ir.Method) {
		if m == nil || seen[m] {
			return
		}
		seen[m] = true
		out = append(out, m)
		if m.IR == nil {
			return
		}
		for _, s := range m.IR.Stmts {
			if inv, ok := s.(*ir.Invoke); ok {
				for _, callee := range g.CalleesOf(inv) {
					walk(callee)
				}
			}
		}
	}
	for _, e := range entries {
		walk(e)
	}
	return out
}
