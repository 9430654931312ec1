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

// Package graphutil wraps this analyzer's own callgraph.Graph as a gonum
// graph.Directed value, so the generic gonum
// algorithms (graph/topo's SCC ordering, graph/path's shortest path) work
// against them without a second bespoke implementation.
package graphutil

import (
	"sort"

	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"gonum.org/v1/gonum/graph"
)

// CGraph adapts a *callgraph.Graph to gonum's graph.Directed, with node
// IDs assigned by ReachableMethods' deterministic sort order (this package
// has no separate node object, just *ir.Method).
type CGraph struct {
	Graph *callgraph.Graph

	order int
	byID  map[int64]*ir.Method

	// Keys holds every node id, sorted, for callers that want a stable
	// iteration order over the graph's vertices.
	Keys []int64

	// Edges is an adjacency matrix: Edges[x][y] means there is a directed
	// edge from byID[x] to byID[y].
	Edges map[int64]map[int64]bool
}

// NewCallgraphIterator builds a CGraph over cg.
func NewCallgraphIterator(cg *callgraph.Graph) CGraph {
	methods := cg.ReachableMethods()
	byID := make(map[int64]*ir.Method, len(methods))
	idOf := make(map[*ir.Method]int64, len(methods))
	keys := make([]int64, len(methods))
	for i, m := range methods {
		byID[int64(i)] = m
		idOf[m] = int64(i)
		keys[i] = int64(i)
	}
	edges := make(map[int64]map[int64]bool, len(methods))
	for _, m := range methods {
		from := idOf[m]
		edges[from] = map[int64]bool{}
		for _, callee := range cg.CalleesOf(m) {
			edges[from][idOf[callee]] = true
		}
	}
	return CGraph{Graph: cg, order: len(methods), byID: byID, Keys: keys, Edges: edges}
}

// Subgraph returns the CGraph restricted to include, keeping only edges
// whose endpoints are both in include.
func Subgraph(original CGraph, include []int64) CGraph {
	byID := make(map[int64]*ir.Method, len(include))
	edges := make(map[int64]map[int64]bool, len(include))
	for _, id := range include {
		byID[id] = original.byID[id]
	}
	for _, id := range include {
		edges[id] = map[int64]bool{}
		for to := range original.Edges[id] {
			if _, ok := byID[to]; ok {
				edges[id][to] = true
			}
		}
	}
	return CGraph{Graph: original.Graph, order: original.order, byID: byID, Keys: include, Edges: edges}
}

// Order is the number of nodes in the graph.
func (c CGraph) Order() int { return c.order }

// Node implements graph.Graph.
func (c CGraph) Node(id int64) graph.Node {
	m, ok := c.byID[id]
	if !ok {
		return nil
	}
	return MethodNode{ID_: id, Method: m}
}

// Nodes implements graph.Graph.
func (c CGraph) Nodes() graph.Nodes {
	ids := make([]int64, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return &NodeSet{byID: c.byID, ids: ids, cur: -1}
}

// From implements graph.Graph.
func (c CGraph) From(id int64) graph.Nodes {
	var ids []int64
	for to := range c.Edges[id] {
		ids = append(ids, to)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return &NodeSet{byID: c.byID, ids: ids, cur: -1}
}

// HasEdgeBetween implements graph.Graph.
func (c CGraph) HasEdgeBetween(xid, yid int64) bool {
	return c.Edges[xid][yid] || c.Edges[yid][xid]
}

// HasEdgeFromTo and To complete graph.Directed (graph.Graph plus
// direction-aware queries), needed by graph/topo.TarjanSCC to walk edges
// in call direction rather than treating the call graph as undirected.
func (c CGraph) HasEdgeFromTo(uid, vid int64) bool { return c.Edges[uid][vid] }

// To implements graph.Directed.
func (c CGraph) To(id int64) graph.Nodes {
	var ids []int64
	for from, tos := range c.Edges {
		if tos[id] {
			ids = append(ids, from)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return &NodeSet{byID: c.byID, ids: ids, cur: -1}
}

// Edge implements graph.Graph.
func (c CGraph) Edge(uid, vid int64) graph.Edge {
	if !c.Edges[uid][vid] {
		return nil
	}
	return MethodEdge{from: c.Node(uid).(MethodNode), to: c.Node(vid).(MethodNode)}
}

// MethodNode wraps an *ir.Method as a gonum graph.Node.
type MethodNode struct {
	ID_    int64
	Method *ir.Method
}

func (n MethodNode) ID() int64    { return n.ID_ }
func (n MethodNode) String() string {
	if n.Method == nil {
		return ""
	}
	return n.Method.Ref().String()
}

// NodeSet iterates a fixed slice of node ids, implementing graph.Nodes.
type NodeSet struct {
	byID map[int64]*ir.Method
	ids  []int64
	cur  int
}

func (ns *NodeSet) Next() bool {
	if ns.cur < len(ns.ids)-1 {
		ns.cur++
		return true
	}
	return false
}
func (ns *NodeSet) Len() int  { return len(ns.ids) - ns.cur - 1 }
func (ns *NodeSet) Reset()    { ns.cur = -1 }
func (ns *NodeSet) Node() graph.Node {
	id := ns.ids[ns.cur]
	return MethodNode{ID_: id, Method: ns.byID[id]}
}

// MethodEdge implements graph.Edge over two MethodNodes.
type MethodEdge struct {
	from, to MethodNode
}

func (e MethodEdge) From() graph.Node         { return e.from }
func (e MethodEdge) To() graph.Node           { return e.to }
func (e MethodEdge) ReversedEdge() graph.Edge { return MethodEdge{from: e.to, to: e.from} }
