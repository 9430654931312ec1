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

// Package icfg builds the inter-procedural control-flow graph the
// inter-procedural constant-propagation analysis runs over: every
// reachable method's CFG,
// linked at call sites by call edges (call -> callee entry), return edges
// (callee exit -> the statement after the call), and call-to-return edges
// (call -> the statement after the call, carrying whatever does not flow
// through the call). Grounded on Tai-e's pascal.taie.ir.graph.ICFG /
// ICFGBuilder.
package icfg

import (
	"sort"

	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/ir"
)

// EdgeKind classifies an ICFG edge.
type EdgeKind int

const (
	// Normal is an ordinary intra-procedural CFG edge.
	Normal EdgeKind = iota
	// Call goes from a call statement to the entry of a resolved callee.
	Call
	// Return goes from a callee's exit back to the statement after a call.
	Return
	// CallToReturn skips over a call, for facts that bypass the callee
	// entirely (e.g. the call statement's own local effects).
	CallToReturn
)

// Edge is one inter-procedural edge. Call carries the call site this edge
// is associated with for the Call/Return/CallToReturn kinds (nil for
// Normal) — package interproc's transfer functions need it to bind
// formals to actuals (Call), the call's result var to the callee's return
// value (Return), and to know which var a CallToReturn edge must kill.
type Edge struct {
	From, To ir.Stmt
	Kind     EdgeKind
	Call     *ir.Invoke
}

// Graph is the inter-procedural CFG over every method in a call graph.
type Graph struct {
	cg        *callgraph.Graph
	succs     map[ir.Stmt][]Edge
	preds     map[ir.Stmt][]Edge
	succAfter map[*ir.Invoke]ir.Stmt // the statement immediately after a call
	ownerOf   map[ir.Stmt]*ir.Method
}

// Build constructs the ICFG over every method reachable in cg.
func Build(cg *callgraph.Graph) *Graph {
	g := &Graph{
		cg:        cg,
		succs:     map[ir.Stmt][]Edge{},
		preds:     map[ir.Stmt][]Edge{},
		succAfter: map[*ir.Invoke]ir.Stmt{},
		ownerOf:   map[ir.Stmt]*ir.Method{},
	}
	for _, m := range cg.ReachableMethods() {
		if m.IR == nil {
			continue
		}
		cfg := m.IR.CFG
		for _, s := range cfg.Stmts() {
			g.ownerOf[s] = m
		}
		for _, s := range cfg.Stmts() {
			for _, e := range cfg.SuccsOf(s) {
				g.addEdge(Edge{From: s, To: e.To, Kind: Normal})
			}
		}
		for _, s := range cfg.Stmts() {
			if inv, ok := s.(*ir.Invoke); ok {
				succs := cfg.SuccStmtsOf(inv)
				if len(succs) > 0 {
					g.succAfter[inv] = succs[0]
				}
			}
		}
	}
	for _, e := range cg.Edges() {
		callee := e.Callee
		if callee.IR == nil {
			continue
		}
		g.addEdge(Edge{From: e.Site, To: callee.IR.CFG.Entry, Kind: Call, Call: e.Site})
		after, ok := g.succAfter[e.Site]
		if !ok {
			continue
		}
		g.addEdge(Edge{From: callee.IR.CFG.Exit, To: after, Kind: Return, Call: e.Site})
		g.addEdge(Edge{From: e.Site, To: after, Kind: CallToReturn, Call: e.Site})
	}
	return g
}

func (g *Graph) addEdge(e Edge) {
	g.succs[e.From] = append(g.succs[e.From], e)
	g.preds[e.To] = append(g.preds[e.To], e)
}

// SuccsOf / PredsOf return s's outgoing/incoming inter-procedural edges.
func (g *Graph) SuccsOf(s ir.Stmt) []Edge { return g.succs[s] }
func (g *Graph) PredsOf(s ir.Stmt) []Edge { return g.preds[s] }

// Edges returns every edge in the graph, sorted by (from method, from
// index, kind, to index) for reproducible rendering.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, es := range g.succs {
		out = append(out, es...)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ma, mb := g.ownerOf[a.From], g.ownerOf[b.From]; ma != mb && ma != nil && mb != nil {
			return ma.Ref().String() < mb.Ref().String()
		}
		if a.From.Index() != b.From.Index() {
			return a.From.Index() < b.From.Index()
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.To.Index() < b.To.Index()
	})
	return out
}

// MethodOf returns the method that owns statement s.
func (g *Graph) MethodOf(s ir.Stmt) *ir.Method { return g.ownerOf[s] }

// IsCallStmt reports whether s is an invoke statement that either has a
// return-site successor recorded in this ICFG (an invoke with a CFG
// successor in a reachable method) or at least one call-graph edge.
func (g *Graph) IsCallStmt(s ir.Stmt) bool {
	inv, ok := s.(*ir.Invoke)
	if !ok {
		return false
	}
	_, has := g.succAfter[inv]
	return has || len(g.cg.EdgesAt(inv)) > 0
}

// CalleesOf returns the methods a call statement may invoke, sorted for
// determinism.
func (g *Graph) CalleesOf(s *ir.Invoke) []*ir.Method {
	edges := g.cg.EdgesAt(s)
	seen := map[*ir.Method]bool{}
	var out []*ir.Method
	for _, e := range edges {
		if !seen[e.Callee] {
			seen[e.Callee] = true
			out = append(out, e.Callee)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ref().String() < out[j].Ref().String() })
	return out
}
