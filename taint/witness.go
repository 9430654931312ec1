package taint

import (
	"gonum.org/v1/gonum/graph/path"

	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/internal/graphutil"
	"git.amazon.com/pkg/tai-analyzer/ir"
)

// Witness returns a shortest call-graph path of methods from wherever
// f.Source was called to wherever f.Sink was called, computed with
// gonum's Dijkstra over the resolved call graph. It is a call-graph-level
// approximation of how the tainted value traveled, not an exact
// statement-level trace; nil if either call site was never resolved into
// a call-graph edge or no path connects them.
func Witness(cg *callgraph.Graph, f Flow) []*ir.Method {
	from := containingMethod(cg, f.Source)
	to := containingMethod(cg, f.Sink)
	if from == nil || to == nil {
		return nil
	}

	g := graphutil.NewCallgraphIterator(cg)
	fromID, toID, found := int64(-1), int64(-1), 0
	for _, id := range g.Keys {
		switch g.Node(id).(graphutil.MethodNode).Method {
		case from:
			fromID = id
			found++
		case to:
			toID = id
			found++
		}
	}
	if found < 2 {
		return nil
	}

	shortest := path.DijkstraFrom(g.Node(fromID), g)
	nodes, _ := shortest.To(toID)
	if len(nodes) == 0 {
		return nil
	}
	methods := make([]*ir.Method, len(nodes))
	for i, n := range nodes {
		methods[i] = n.(graphutil.MethodNode).Method
	}
	return methods
}

func containingMethod(cg *callgraph.Graph, site *ir.Invoke) *ir.Method {
	edges := cg.EdgesAt(site)
	if len(edges) == 0 {
		return nil
	}
	return edges[0].Caller
}
