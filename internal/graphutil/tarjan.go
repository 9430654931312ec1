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

	"gonum.org/v1/gonum/graph/topo"

	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/ir"
)

// CHACycles reports every group of two or more methods that call-graph g
// resolves into a dispatch cycle (mutual or longer recursion), via
// gonum's Tarjan SCC over the CGraph adapter. Groups are sorted by their
// smallest method's qualified name, and methods within a group by
// qualified name, so output is reproducible across runs.
func CHACycles(g *callgraph.Graph) [][]*ir.Method {
	cg := NewCallgraphIterator(g)
	sccs := topo.TarjanSCC(cg)

	var cycles [][]*ir.Method
	for _, scc := range sccs {
		if len(scc) < 2 {
			continue
		}
		methods := make([]*ir.Method, 0, len(scc))
		for _, n := range scc {
			methods = append(methods, n.(MethodNode).Method)
		}
		sort.Slice(methods, func(i, j int) bool {
			return methods[i].Ref().String() < methods[j].Ref().String()
		})
		cycles = append(cycles, methods)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0].Ref().String() < cycles[j][0].Ref().String()
	})
	return cycles
}
