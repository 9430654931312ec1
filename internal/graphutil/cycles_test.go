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

	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/ir"
)

// chain builds a callgraph.Graph over n unconnected *ir.Method nodes, with
// edges added per the (caller, callee) index pairs in edges, for
// cycle-finding fixtures that don't need real IR bodies.
func chain(n int, edges [][2]int) *callgraph.Graph {
	c := ir.NewClass("C", ir.KindClass)
	methods := make([]*ir.Method, n)
	for i := range methods {
		name := string(rune('a' + i))
		methods[i] = &ir.Method{Name: name, Subsignature: ir.Subsignature{Name: name}, Declaring: c}
	}
	cg := callgraph.New()
	for _, m := range methods {
		cg.AddReachable(m)
	}
	for _, e := range edges {
		cg.AddEdge(callgraph.Edge{Caller: methods[e[0]], Site: &ir.Invoke{}, Callee: methods[e[1]]})
	}
	return cg
}

func TestFindAllElementaryCyclesNoCycle(t *testing.T) {
	cg := chain(3, [][2]int{{0, 1}, {1, 2}})
	cycles := FindAllElementaryCycles(NewCallgraphIterator(cg))
	if len(cycles) != 0 {
		t.Fatalf("expected no cycles in a DAG, got %v", cycles)
	}
}

func TestFindAllElementaryCyclesSelfLoop(t *testing.T) {
	cg := chain(1, [][2]int{{0, 0}})
	cycles := FindAllElementaryCycles(NewCallgraphIterator(cg))
	if len(cycles) != 1 {
		t.Fatalf("expected exactly one self-loop cycle, got %v", cycles)
	}
}

func TestFindAllElementaryCyclesTriangle(t *testing.T) {
	cg := chain(3, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	cycles := FindAllElementaryCycles(NewCallgraphIterator(cg))
	if len(cycles) != 1 {
		t.Fatalf("expected exactly one elementary cycle in a 3-cycle, got %v", cycles)
	}
	if len(cycles[0]) != 4 {
		t.Fatalf("expected cycle of length 4 (3 nodes + closing repeat), got %v", cycles[0])
	}
}

func TestFindAllElementaryCyclesTwoDisjointCycles(t *testing.T) {
	cg := chain(4, [][2]int{{0, 1}, {1, 0}, {2, 3}, {3, 2}})
	cycles := FindAllElementaryCycles(NewCallgraphIterator(cg))
	if len(cycles) != 2 {
		t.Fatalf("expected two disjoint 2-cycles, got %v", cycles)
	}
}
