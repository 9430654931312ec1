package cs

import (
	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/ctx"
	"git.amazon.com/pkg/tai-analyzer/internal/graphutil"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/taint"
)

// Result is the frozen output of a context-sensitive Solve.
type Result struct {
	mgr   *Manager
	cg    *callgraph.Graph
	flows map[taint.Flow]bool
}

// TaintFlows returns every confirmed source-to-sink flow found while
// solving, sorted for reproducible output. Empty (never nil) if WithTaint
// was never called.
func (r *Result) TaintFlows() []taint.Flow {
	flows := make([]taint.Flow, 0, len(r.flows))
	for f := range r.flows {
		flows = append(flows, f)
	}
	taint.SortFlows(flows)
	return flows
}

// PointsToSetOf returns the objects v may point to when reached in
// context c.
func (r *Result) PointsToSetOf(c ctx.Context, v *ir.Var) []*CSObj {
	return r.mgr.VarPtr(c, v).pts().Objects()
}

// CallGraph returns the (context-insensitively deduplicated) call graph
// this analysis built.
func (r *Result) CallGraph() *callgraph.Graph { return r.cg }

// RecursionCycles reports every concrete recursive dispatch circuit in
// the resolved call graph, a context-selector diagnostic: an allocation
// site inside a deep recursion is where k-object-sensitivity's context
// truncation matters most, since the same site otherwise mints
// unboundedly many distinct contexts.
func (r *Result) RecursionCycles() [][]*ir.Method {
	return graphutil.ElementaryCycleMethods(r.cg)
}
