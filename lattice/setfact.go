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

package lattice

import (
	"sort"

	"git.amazon.com/pkg/tai-analyzer/ir"
)

// SetFact is a set of Vars, the fact type live-variable analysis uses.
type SetFact struct {
	m map[*ir.Var]struct{}
}

// NewSetFact returns an empty SetFact.
func NewSetFact() *SetFact { return &SetFact{m: map[*ir.Var]struct{}{}} }

func (f *SetFact) Contains(v *ir.Var) bool {
	_, ok := f.m[v]
	return ok
}

func (f *SetFact) Add(v *ir.Var) { f.m[v] = struct{}{} }

func (f *SetFact) Remove(v *ir.Var) { delete(f.m, v) }

// Union merges o into f in place — the meet operator for live-variable
// analysis is set union.
func (f *SetFact) Union(o *SetFact) {
	for v := range o.m {
		f.m[v] = struct{}{}
	}
}

// Set overwrites f's contents with a copy of o's.
func (f *SetFact) Set(o *SetFact) {
	f.m = make(map[*ir.Var]struct{}, len(o.m))
	for v := range o.m {
		f.m[v] = struct{}{}
	}
}

// Copy returns an independent copy of f.
func (f *SetFact) Copy() *SetFact {
	c := NewSetFact()
	c.Set(f)
	return c
}

// Equal reports whether f and o contain exactly the same Vars.
func (f *SetFact) Equal(o *SetFact) bool {
	if len(f.m) != len(o.m) {
		return false
	}
	for v := range f.m {
		if _, ok := o.m[v]; !ok {
			return false
		}
	}
	return true
}

// Vars returns the set's elements sorted by Var.Index.
func (f *SetFact) Vars() []*ir.Var {
	out := make([]*ir.Var, 0, len(f.m))
	for v := range f.m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func (f *SetFact) Len() int { return len(f.m) }
