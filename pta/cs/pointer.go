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

package cs

import (
	"fmt"

	"git.amazon.com/pkg/tai-analyzer/ctx"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/pfg"
)

// Pointer mirrors pta/ci's Pointer, but variable and instance-field
// pointers also carry the context that distinguishes them (CSVar(Context,
// Var) etc.); static fields stay context-insensitive, matching Tai-e.
type Pointer interface {
	fmt.Stringer
	pts() *pfg.PointsToSet[*CSObj]
}

type csVar struct {
	c   ctx.Context
	v   *ir.Var
	set *pfg.PointsToSet[*CSObj]
}

func (p *csVar) String() string                   { return fmt.Sprintf("%s:%s", p.c, p.v) }
func (p *csVar) pts() *pfg.PointsToSet[*CSObj]      { return p.set }

type instanceField struct {
	base  *CSObj
	field *ir.Field
	set   *pfg.PointsToSet[*CSObj]
}

func (p *instanceField) String() string                { return fmt.Sprintf("%s.%s", p.base, p.field.Name) }
func (p *instanceField) pts() *pfg.PointsToSet[*CSObj]   { return p.set }

type staticField struct {
	field *ir.Field
	set   *pfg.PointsToSet[*CSObj]
}

func (p *staticField) String() string                { return p.field.String() }
func (p *staticField) pts() *pfg.PointsToSet[*CSObj]   { return p.set }

type arrayIndex struct {
	base *CSObj
	set  *pfg.PointsToSet[*CSObj]
}

func (p *arrayIndex) String() string                { return fmt.Sprintf("%s[*]", p.base) }
func (p *arrayIndex) pts() *pfg.PointsToSet[*CSObj]   { return p.set }

// Manager interns Pointers keyed by (Context, identity), so repeated
// lookups for the same (context, var) or (CSObj, field) pair return the
// same value.
type Manager struct {
	vars    map[ctx.Context]map[*ir.Var]*csVar
	ifields map[*CSObj]map[*ir.Field]*instanceField
	sfields map[*ir.Field]*staticField
	arrays  map[*CSObj]*arrayIndex
}

func NewManager() *Manager {
	return &Manager{
		vars:    map[ctx.Context]map[*ir.Var]*csVar{},
		ifields: map[*CSObj]map[*ir.Field]*instanceField{},
		sfields: map[*ir.Field]*staticField{},
		arrays:  map[*CSObj]*arrayIndex{},
	}
}

func (m *Manager) VarPtr(c ctx.Context, v *ir.Var) Pointer {
	byVar := m.vars[c]
	if byVar == nil {
		byVar = map[*ir.Var]*csVar{}
		m.vars[c] = byVar
	}
	if p, ok := byVar[v]; ok {
		return p
	}
	p := &csVar{c: c, v: v, set: pfg.New[*CSObj]()}
	byVar[v] = p
	return p
}

func (m *Manager) InstanceField(base *CSObj, f *ir.Field) Pointer {
	byField := m.ifields[base]
	if byField == nil {
		byField = map[*ir.Field]*instanceField{}
		m.ifields[base] = byField
	}
	if p, ok := byField[f]; ok {
		return p
	}
	p := &instanceField{base: base, field: f, set: pfg.New[*CSObj]()}
	byField[f] = p
	return p
}

func (m *Manager) StaticField(f *ir.Field) Pointer {
	if p, ok := m.sfields[f]; ok {
		return p
	}
	p := &staticField{field: f, set: pfg.New[*CSObj]()}
	m.sfields[f] = p
	return p
}

func (m *Manager) ArrayIndex(base *CSObj) Pointer {
	if p, ok := m.arrays[base]; ok {
		return p
	}
	p := &arrayIndex{base: base, set: pfg.New[*CSObj]()}
	m.arrays[base] = p
	return p
}
