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

package ci

import (
	"sort"

	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/heap"
	"git.amazon.com/pkg/tai-analyzer/ir"
)

// Result is the frozen output of a Solve: every Var's points-to set, plus
// the (now precise, points-to-guided) call graph discovered along the way.
type Result struct {
	mgr *Manager
	cg  *callgraph.Graph
}

// PointsToSetOf returns the objects v may point to.
func (r *Result) PointsToSetOf(v *ir.Var) []heap.Obj {
	return r.mgr.VarPtr(v).pts().Objects()
}

// CallGraph returns the call graph this analysis built.
func (r *Result) CallGraph() *callgraph.Graph { return r.cg }

// VarsPointingTo returns every variable whose points-to set contains obj —
// the inverse of PointsToSetOf, Tai-e's getVars(obj) convenience query.
// Var identity, not name, distinguishes results, so the order is by
// method-qualified name then var name for reproducibility.
func (r *Result) VarsPointingTo(obj heap.Obj) []*ir.Var {
	var out []*ir.Var
	for v, p := range r.mgr.vars {
		if p.pts().Contains(obj) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if mi, mj := out[i].Method.String(), out[j].Method.String(); mi != mj {
			return mi < mj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AllocatedObjectsOf returns every heap.Obj this result attributes to an
// allocation site within m, Tai-e's getObjectsAllocatedIn(method) query —
// the objects every var in m that's a *ir.New's LValue was ever observed
// to point to.
func (r *Result) AllocatedObjectsOf(m *ir.Method) []heap.Obj {
	if m.IR == nil {
		return nil
	}
	seen := map[int]bool{}
	var out []heap.Obj
	for _, stmt := range m.IR.Stmts {
		n, ok := stmt.(*ir.New)
		if !ok {
			continue
		}
		for _, obj := range r.PointsToSetOf(n.LValue) {
			if !seen[obj.Index()] {
				seen[obj.Index()] = true
				out = append(out, obj)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out
}
