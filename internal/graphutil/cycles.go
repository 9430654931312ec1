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
	"sort"

	"github.com/yourbasic/graph"

	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/ir"
)

// ElementaryCycleMethods runs FindAllElementaryCycles over g's reachable
// methods and maps the resulting id cycles back to *ir.Method, for
// package pta/cs's context-selector diagnostics: unlike CHACycles's SCC
// groups, each returned cycle is one concrete circuit through the call
// graph, in call order.
func ElementaryCycleMethods(g *callgraph.Graph) [][]*ir.Method {
	cg := NewCallgraphIterator(g)
	idCycles := FindAllElementaryCycles(cg)
	cycles := make([][]*ir.Method, 0, len(idCycles))
	for _, ids := range idCycles {
		methods := make([]*ir.Method, 0, len(ids))
		for _, id := range ids {
			methods = append(methods, cg.Node(id).(MethodNode).Method)
		}
		cycles = append(cycles, methods)
	}
	return cycles
}

// FindAllElementaryCycles finds all elementary cycles in cg, using Donald
// B. Johnson's algorithm ("Finding All The Elementary Circuits of a
// Directed Graph", 1975). Used through ElementaryCycleMethods, which
// package pta/cs calls to report recursive call cycles in its call graph.
func FindAllElementaryCycles(cg CGraph) [][]int64 {
	s := &state{
		blocked: map[int64]bool{},
		blist:   map[int64]map[int64]bool{},
		stack:   []int64{},
		cycles:  [][]int64{},
	}
	nodeid := 0
	for nodeid < len(cg.Keys) {
		fg := Subgraph(cg, cg.Keys[nodeid:])
		components := graph.StrongComponents(adjacency{fg})
		foundC2 := false
		for _, component := range components {
			if len(component) >= 2 || fg.Edges[int64(component[0])][int64(component[0])] {
				foundC2 = true
				sort.Slice(component, func(i, j int) bool { return component[i] < component[j] })
				node := component[0]
				nodeid = node
				s.stack = []int64{}
				s.blocked = map[int64]bool{}
				s.blist = map[int64]map[int64]bool{}
				s.circuit(int64(node), int64(node), fg)
				nodeid++
			}
		}
		if !foundC2 {
			return s.cycles
		}
	}
	return s.cycles
}

// adjacency adapts CGraph to github.com/yourbasic/graph's Iterator
// interface (StrongComponents needs Order/Visit, not the gonum shape
// CGraph otherwise implements).
type adjacency struct{ CGraph }

func (a adjacency) Order() int { return a.order }

func (a adjacency) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if _, ok := a.byID[int64(v)]; !ok {
		return false
	}
	for w := range a.Edges[int64(v)] {
		if do(int(w), 1) {
			return true
		}
	}
	return false
}

type state struct {
	blocked map[int64]bool
	blist   map[int64]map[int64]bool
	stack   []int64
	cycles  [][]int64
}

func (s *state) unblock(u int64) {
	s.blocked[u] = false
	for w := range s.blist[u] {
		if s.blocked[w] {
			s.unblock(w)
		}
	}
}

func (s *state) circuit(v int64, i int64, g CGraph) bool {
	f := false
	s.stack = append(s.stack, v)
	s.blocked[v] = true
	for w := range g.Edges[v] {
		if w == i {
			stackCopy := make([]int64, len(s.stack))
			copy(stackCopy, s.stack)
			stackCopy = append(stackCopy, w)
			s.cycles = append(s.cycles, stackCopy)
			f = true
		} else if !s.blocked[w] {
			if s.circuit(w, i, g) {
				f = true
			}
		}
	}
	if f {
		s.unblock(v)
	} else {
		for w := range g.Edges[v] {
			m := s.blist[w]
			if m != nil {
				s.blist[w][v] = true
			} else {
				s.blist[w] = map[int64]bool{v: true}
			}
		}
	}
	s.stack = s.stack[:len(s.stack)-1]
	return f
}
