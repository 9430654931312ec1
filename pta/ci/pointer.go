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

// Package ci implements context-insensitive, inclusion-based pointer
// analysis: a Pointer-Flow-Graph worklist solver grounded on Tai-e's
// pascal.taie.analysis.pta.ci.Solver.
package ci

import (
	"fmt"

	"git.amazon.com/pkg/tai-analyzer/heap"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/pfg"
)

// Pointer is a points-to container: a local variable, an instance field of
// some abstract object, a static field, or the merged element of some
// object's array cells (array elements are merged per-object). Every kind
// interns to a single value per identity so the PFG's edge map can key on
// it directly.
type Pointer interface {
	fmt.Stringer
	pts() *pfg.PointsToSet[heap.Obj]
}

type varPtr struct {
	v   *ir.Var
	set *pfg.PointsToSet[heap.Obj]
}

func (p *varPtr) String() string                      { return p.v.String() }
func (p *varPtr) pts() *pfg.PointsToSet[heap.Obj]      { return p.set }

type instanceField struct {
	base  heap.Obj
	field *ir.Field
	set   *pfg.PointsToSet[heap.Obj]
}

func (p *instanceField) String() string { return fmt.Sprintf("%s.%s", p.base, p.field.Name) }
func (p *instanceField) pts() *pfg.PointsToSet[heap.Obj] { return p.set }

type staticField struct {
	field *ir.Field
	set   *pfg.PointsToSet[heap.Obj]
}

func (p *staticField) String() string                      { return p.field.String() }
func (p *staticField) pts() *pfg.PointsToSet[heap.Obj]      { return p.set }

type arrayIndex struct {
	base heap.Obj
	set  *pfg.PointsToSet[heap.Obj]
}

func (p *arrayIndex) String() string                      { return fmt.Sprintf("%s[*]", p.base) }
func (p *arrayIndex) pts() *pfg.PointsToSet[heap.Obj]      { return p.set }

// Manager interns Pointers so that equal identities (same Var, or same
// (Obj, Field) pair) always produce the same *Pointer value, which both
// the PFG's edge map and the worklist rely on for identity comparison.
type Manager struct {
	vars    map[*ir.Var]*varPtr
	ifields map[heap.Obj]map[*ir.Field]*instanceField
	sfields map[*ir.Field]*staticField
	arrays  map[heap.Obj]*arrayIndex
}

// NewManager returns an empty pointer interner.
func NewManager() *Manager {
	return &Manager{
		vars:    map[*ir.Var]*varPtr{},
		ifields: map[heap.Obj]map[*ir.Field]*instanceField{},
		sfields: map[*ir.Field]*staticField{},
		arrays:  map[heap.Obj]*arrayIndex{},
	}
}

func (m *Manager) VarPtr(v *ir.Var) Pointer {
	if p, ok := m.vars[v]; ok {
		return p
	}
	p := &varPtr{v: v, set: pfg.New[heap.Obj]()}
	m.vars[v] = p
	return p
}

func (m *Manager) InstanceField(base heap.Obj, f *ir.Field) Pointer {
	byField := m.ifields[base]
	if byField == nil {
		byField = map[*ir.Field]*instanceField{}
		m.ifields[base] = byField
	}
	if p, ok := byField[f]; ok {
		return p
	}
	p := &instanceField{base: base, field: f, set: pfg.New[heap.Obj]()}
	byField[f] = p
	return p
}

func (m *Manager) StaticField(f *ir.Field) Pointer {
	if p, ok := m.sfields[f]; ok {
		return p
	}
	p := &staticField{field: f, set: pfg.New[heap.Obj]()}
	m.sfields[f] = p
	return p
}

func (m *Manager) ArrayIndex(base heap.Obj) Pointer {
	if p, ok := m.arrays[base]; ok {
		return p
	}
	p := &arrayIndex{base: base, set: pfg.New[heap.Obj]()}
	m.arrays[base] = p
	return p
}
