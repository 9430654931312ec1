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

package graphutil

import (
	"testing"

	"git.amazon.com/pkg/tai-analyzer/ir"
)

func TestCGraphOrderAndNodes(t *testing.T) {
	cg := chain(3, [][2]int{{0, 1}, {1, 2}})
	g := NewCallgraphIterator(cg)

	if g.Order() != 3 {
		t.Fatalf("Order() = %d, want 3", g.Order())
	}
	nodes := g.Nodes()
	count := 0
	for nodes.Next() {
		count++
	}
	if count != 3 {
		t.Fatalf("iterating Nodes() yielded %d nodes, want 3", count)
	}
}

func TestCGraphFromAndEdge(t *testing.T) {
	cg := chain(3, [][2]int{{0, 1}, {1, 2}})
	g := NewCallgraphIterator(cg)

	from := g.From(0)
	var tos []int64
	for from.Next() {
		tos = append(tos, from.Node().ID())
	}
	if len(tos) != 1 || tos[0] != 1 {
		t.Fatalf("From(0) = %v, want [1]", tos)
	}

	if g.Edge(0, 1) == nil {
		t.Fatal("Edge(0,1) should exist")
	}
	if g.Edge(0, 2) != nil {
		t.Fatal("Edge(0,2) should not exist (no direct edge)")
	}
}

func TestCGraphHasEdgeBetweenIsUndirected(t *testing.T) {
	cg := chain(2, [][2]int{{0, 1}})
	g := NewCallgraphIterator(cg)

	if !g.HasEdgeBetween(0, 1) {
		t.Fatal("HasEdgeBetween(0,1) should be true for a forward edge")
	}
	if !g.HasEdgeBetween(1, 0) {
		t.Fatal("HasEdgeBetween should be symmetric")
	}
}

func TestSubgraphKeepsOnlyIncludedEdges(t *testing.T) {
	cg := chain(3, [][2]int{{0, 1}, {1, 2}})
	g := NewCallgraphIterator(cg)

	sub := Subgraph(g, []int64{0, 1})
	if sub.Edge(0, 1) == nil {
		t.Fatal("Subgraph should keep the 0->1 edge, both endpoints included")
	}
	if sub.Edge(1, 2) != nil {
		t.Fatal("Subgraph should drop the 1->2 edge, endpoint 2 excluded")
	}
}

func TestMethodNodeString(t *testing.T) {
	c := &ir.Class{Name: "C"}
	m := &ir.Method{Name: "m", Subsignature: ir.Subsignature{Name: "m", ParamTypes: "()"}, Declaring: c}
	n := MethodNode{ID_: 0, Method: m}
	if got := n.String(); got != "C.m()" {
		t.Fatalf("MethodNode.String() = %q, want %q", got, "C.m()")
	}

	var nilNode MethodNode
	if got := nilNode.String(); got != "" {
		t.Fatalf("MethodNode{}.String() = %q, want empty string", got)
	}
}

func TestMethodEdgeReversedEdge(t *testing.T) {
	a := MethodNode{ID_: 0, Method: &ir.Method{Name: "a"}}
	b := MethodNode{ID_: 1, Method: &ir.Method{Name: "b"}}
	e := MethodEdge{from: a, to: b}
	r := e.ReversedEdge().(MethodEdge)
	if r.From() != b || r.To() != a {
		t.Fatalf("ReversedEdge() = %v -> %v, want b -> a", r.From(), r.To())
	}
}
