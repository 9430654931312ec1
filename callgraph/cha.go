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

package callgraph

import (
	"git.amazon.com/pkg/tai-analyzer/classhierarchy"
	"git.amazon.com/pkg/tai-analyzer/ir"
)

// BuildCHA constructs a class-hierarchy-analysis call graph reachable from
// entries, grounded on Tai-e's CHABuilder: a worklist of newly-reached
// methods, each of whose Invoke statements is resolved with
// hierarchy.Resolve and whose (new) callees are pushed back onto the
// worklist.
func BuildCHA(hierarchy *classhierarchy.Hierarchy, entries []*ir.Method) *Graph {
	g := New()
	var worklist []*ir.Method
	for _, e := range entries {
		if e == nil {
			continue
		}
		g.AddEntry(e)
		worklist = append(worklist, e)
	}
	for len(worklist) > 0 {
		m := worklist[0]
		worklist = worklist[1:]
		if m.IR == nil {
			continue // abstract or externally modeled; no body to scan
		}
		for _, stmt := range m.IR.Stmts {
			inv, ok := stmt.(*ir.Invoke)
			if !ok {
				continue
			}
			for _, callee := range hierarchy.Resolve(inv.Exp.Ref, inv.Kind) {
				g.AddEdge(Edge{Caller: m, Site: inv, Callee: callee})
				if g.AddReachable(callee) {
					worklist = append(worklist, callee)
				}
			}
		}
	}
	return g
}
