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

// Package callgraph implements a class-hierarchy-analysis call graph: a
// static, context-insensitive over-approximation built purely
// from declared types and virtual-dispatch resolution, with no pointer
// information. Package pta/cs builds a second, more precise, call graph as
// a side effect of context-sensitive points-to propagation; this package's
// Graph and Edge types are reused there so callers see one call-graph
// shape regardless of which analysis produced it.
package callgraph

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"git.amazon.com/pkg/tai-analyzer/ir"
)

// Edge is one call-graph edge: a call site (identified by the Invoke
// statement and its enclosing method) resolved to a callee.
type Edge struct {
	Caller *ir.Method
	Site   *ir.Invoke
	Callee *ir.Method
}

func (e Edge) String() string {
	return fmt.Sprintf("%s -> %s @ %s:%d", e.Caller.Ref(), e.Callee.Ref(), e.Caller.Name, e.Site.Index())
}

// Graph is a call graph: reachable methods plus the edges between them.
// Edges are only ever added, never removed, so it is built up
// monotonically and is safe to read once construction finishes.
type Graph struct {
	entries   []*ir.Method
	reachable map[*ir.Method]bool
	edgesOut  map[*ir.Method][]Edge
	edgesIn   map[*ir.Method][]Edge
	callSite  map[*ir.Invoke][]Edge
}

// New returns an empty call graph.
func New() *Graph {
	return &Graph{
		reachable: map[*ir.Method]bool{},
		edgesOut:  map[*ir.Method][]Edge{},
		edgesIn:   map[*ir.Method][]Edge{},
		callSite:  map[*ir.Invoke][]Edge{},
	}
}

// AddReachable marks m reachable, returning true iff it was not already.
func (g *Graph) AddReachable(m *ir.Method) bool {
	if g.reachable[m] {
		return false
	}
	g.reachable[m] = true
	return true
}

// AddEntry records m as one of the graph's entry points.
func (g *Graph) AddEntry(m *ir.Method) {
	g.entries = append(g.entries, m)
	g.AddReachable(m)
}

// Entries returns the graph's entry methods.
func (g *Graph) Entries() []*ir.Method { return g.entries }

// AddEdge adds a call-graph edge, deduplicating by (caller, site, callee).
func (g *Graph) AddEdge(e Edge) bool {
	for _, existing := range g.callSite[e.Site] {
		if existing.Callee == e.Callee {
			return false
		}
	}
	g.edgesOut[e.Caller] = append(g.edgesOut[e.Caller], e)
	g.edgesIn[e.Callee] = append(g.edgesIn[e.Callee], e)
	g.callSite[e.Site] = append(g.callSite[e.Site], e)
	return true
}

// IsReachable reports whether m has been reached from an entry point.
func (g *Graph) IsReachable(m *ir.Method) bool { return g.reachable[m] }

// ReachableMethods returns every reachable method, sorted by qualified
// name for deterministic iteration.
func (g *Graph) ReachableMethods() []*ir.Method {
	out := maps.Keys(g.reachable)
	slices.SortFunc(out, func(a, b *ir.Method) bool { return methodKey(a) < methodKey(b) })
	return out
}

// CalleesOf returns the methods m calls, sorted for determinism.
func (g *Graph) CalleesOf(m *ir.Method) []*ir.Method {
	seen := map[*ir.Method]bool{}
	for _, e := range g.edgesOut[m] {
		seen[e.Callee] = true
	}
	out := maps.Keys(seen)
	slices.SortFunc(out, func(a, b *ir.Method) bool { return methodKey(a) < methodKey(b) })
	return out
}

// CallersOf returns the methods that call m, sorted for determinism.
func (g *Graph) CallersOf(m *ir.Method) []*ir.Method {
	seen := map[*ir.Method]bool{}
	for _, e := range g.edgesIn[m] {
		seen[e.Caller] = true
	}
	out := maps.Keys(seen)
	slices.SortFunc(out, func(a, b *ir.Method) bool { return methodKey(a) < methodKey(b) })
	return out
}

// EdgesAt returns the edges resolved at call site site.
func (g *Graph) EdgesAt(site *ir.Invoke) []Edge { return g.callSite[site] }

// Edges returns every edge in the graph, sorted by (caller, site index,
// callee) for reproducible rendering and diffing.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, es := range g.edgesOut {
		out = append(out, es...)
	}
	slices.SortFunc(out, func(a, b Edge) bool {
		if a.Caller != b.Caller {
			return methodKey(a.Caller) < methodKey(b.Caller)
		}
		if a.Site.Index() != b.Site.Index() {
			return a.Site.Index() < b.Site.Index()
		}
		return methodKey(a.Callee) < methodKey(b.Callee)
	})
	return out
}

func methodKey(m *ir.Method) string { return m.Ref().String() }
