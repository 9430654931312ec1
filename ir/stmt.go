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

package ir

import "fmt"

// CallKind classifies how a call site dispatches.
type CallKind int

const (
	Static CallKind = iota
	Special
	Virtual
	Interface
)

func (k CallKind) String() string {
	switch k {
	case Static:
		return "static"
	case Special:
		return "special"
	case Virtual:
		return "virtual"
	case Interface:
		return "interface"
	default:
		return "?"
	}
}

// Stmt is any statement in a method body. Every concrete kind (New, Copy,
// LoadField, StoreField, LoadArray, StoreArray, Invoke, If, Switch,
// Return, plus a generic catch-all) implements it.
//
// Def/Uses expose, per statement, its optional defined lvalue and the
// sequence of rvalues it reads.
type Stmt interface {
	fmt.Stringer
	// Index is the statement's position in its method, used as the stable
	// sort key for reproducible result ordering.
	Index() int
	// Def returns the Var this statement defines, if any.
	Def() (*Var, bool)
	// Uses returns the Vars this statement reads.
	Uses() []*Var
	isStmt()
}

type base struct{ index int }

func (b base) Index() int { return b.index }

// New allocates a fresh object of Type into LValue.
type New struct {
	base
	LValue *Var
	Type   Type
}

func (New) isStmt()             {}
func (s *New) Def() (*Var, bool) { return s.LValue, true }
func (s *New) Uses() []*Var      { return nil }
func (s *New) String() string    { return fmt.Sprintf("%s = new %s", s.LValue, s.Type) }

// Copy is x = y.
type Copy struct {
	base
	LValue *Var
	Src    *Var
}

func (Copy) isStmt()             {}
func (s *Copy) Def() (*Var, bool) { return s.LValue, true }
func (s *Copy) Uses() []*Var      { return []*Var{s.Src} }
func (s *Copy) String() string    { return fmt.Sprintf("%s = %s", s.LValue, s.Src) }

// LoadField is x = y.f or x = C.f.
type LoadField struct {
	base
	LValue  *Var
	Access  Exp // InstanceFieldAccess or StaticFieldAccess
	IsStatic bool
}

func (LoadField) isStmt()             {}
func (s *LoadField) Def() (*Var, bool) { return s.LValue, true }
func (s *LoadField) Uses() []*Var {
	if a, ok := s.Access.(InstanceFieldAccess); ok {
		return []*Var{a.Base}
	}
	return nil
}
func (s *LoadField) String() string { return fmt.Sprintf("%s = %s", s.LValue, s.Access) }

// Field returns the resolved field being loaded, regardless of static/instance.
func (s *LoadField) Field() *Field {
	switch a := s.Access.(type) {
	case InstanceFieldAccess:
		return a.Field
	case StaticFieldAccess:
		return a.Field
	}
	return nil
}

// StoreField is x.f = y or C.f = y.
type StoreField struct {
	base
	Access   Exp // InstanceFieldAccess or StaticFieldAccess
	RValue   *Var
	IsStatic bool
}

func (StoreField) isStmt() {}
func (s *StoreField) Def() (*Var, bool) { return nil, false }
func (s *StoreField) Uses() []*Var {
	if a, ok := s.Access.(InstanceFieldAccess); ok {
		return []*Var{a.Base, s.RValue}
	}
	return []*Var{s.RValue}
}
func (s *StoreField) String() string { return fmt.Sprintf("%s = %s", s.Access, s.RValue) }

// Field returns the resolved field being stored, regardless of static/instance.
func (s *StoreField) Field() *Field {
	switch a := s.Access.(type) {
	case InstanceFieldAccess:
		return a.Field
	case StaticFieldAccess:
		return a.Field
	}
	return nil
}

// LoadArray is x = a[i].
type LoadArray struct {
	base
	LValue *Var
	Access ArrayAccess
}

func (LoadArray) isStmt()             {}
func (s *LoadArray) Def() (*Var, bool) { return s.LValue, true }
func (s *LoadArray) Uses() []*Var      { return []*Var{s.Access.Base, s.Access.Index} }
func (s *LoadArray) String() string    { return fmt.Sprintf("%s = %s", s.LValue, s.Access) }

// StoreArray is a[i] = y.
type StoreArray struct {
	base
	Access ArrayAccess
	RValue *Var
}

func (StoreArray) isStmt() {}
func (s *StoreArray) Def() (*Var, bool) { return nil, false }
func (s *StoreArray) Uses() []*Var {
	return []*Var{s.Access.Base, s.Access.Index, s.RValue}
}
func (s *StoreArray) String() string { return fmt.Sprintf("%s = %s", s.Access, s.RValue) }

// Invoke is a call statement, static/special/virtual/interface.
type Invoke struct {
	base
	Kind   CallKind
	Exp    InvokeExp
	LValue *Var // nil if the call's result is unused
}

func (Invoke) isStmt()             {}
func (s *Invoke) Def() (*Var, bool) { return s.LValue, s.LValue != nil }
func (s *Invoke) Uses() []*Var {
	var uses []*Var
	if s.Exp.Receiver != nil {
		uses = append(uses, s.Exp.Receiver)
	}
	uses = append(uses, s.Exp.Args...)
	return uses
}
func (s *Invoke) String() string {
	if s.LValue != nil {
		return fmt.Sprintf("%s = %s", s.LValue, s.Exp)
	}
	return s.Exp.String()
}

// IsStatic/IsSpecial/IsVirtual/IsInterface expose s.Kind as boolean flags
// for callers that only care about one dispatch kind.
func (s *Invoke) IsStatic() bool    { return s.Kind == Static }
func (s *Invoke) IsSpecial() bool   { return s.Kind == Special }
func (s *Invoke) IsVirtual() bool   { return s.Kind == Virtual }
func (s *Invoke) IsInterface() bool { return s.Kind == Interface }

// If is a conditional branch on Cond; successors are distinguished by
// EdgeKind (IfTrue/IfFalse) in the CFG, not stored here.
type If struct {
	base
	Cond BinaryExp
}

func (If) isStmt()             {}
func (s *If) Def() (*Var, bool) { return nil, false }
func (s *If) Uses() []*Var      { return []*Var{s.Cond.Operand1, s.Cond.Operand2} }
func (s *If) String() string    { return fmt.Sprintf("if (%s) goto ...", s.Cond) }

// Switch is a multi-way branch on Var with explicit case values and a
// default target; CFG edges carry the case value (SwitchCase) or mark the
// default edge.
type Switch struct {
	base
	Var        *Var
	CaseValues []int32
}

func (Switch) isStmt()             {}
func (s *Switch) Def() (*Var, bool) { return nil, false }
func (s *Switch) Uses() []*Var      { return []*Var{s.Var} }
func (s *Switch) String() string    { return fmt.Sprintf("switch (%s) {...}", s.Var) }

// Return returns an optional value from the method.
type Return struct {
	base
	Value *Var // nil for a void return
}

func (Return) isStmt()             {}
func (s *Return) Def() (*Var, bool) { return nil, false }
func (s *Return) Uses() []*Var {
	if s.Value != nil {
		return []*Var{s.Value}
	}
	return nil
}
func (s *Return) String() string {
	if s.Value != nil {
		return "return " + s.Value.String()
	}
	return "return"
}

// Nop is a generic catch-all statement: something with no def and no
// meaningful uses (e.g. a monitor operation, a label, a no-op marker). It
// still occupies a CFG node.
type Nop struct{ base }

func (Nop) isStmt()             {}
func (s *Nop) Def() (*Var, bool) { return nil, false }
func (s *Nop) Uses() []*Var      { return nil }
func (s *Nop) String() string    { return "nop" }

// Assign is the generic "any other definition" statement alongside the
// specific kinds above: `lvalue = rhs` where rhs is an expression with no
// dedicated statement (an IntLiteral, a BinaryExp or a CastExp).
type Assign struct {
	base
	LValue *Var
	RHS    Exp
}

func (Assign) isStmt()             {}
func (s *Assign) Def() (*Var, bool) { return s.LValue, true }
func (s *Assign) Uses() []*Var {
	switch rhs := s.RHS.(type) {
	case BinaryExp:
		return []*Var{rhs.Operand1, rhs.Operand2}
	case CastExp:
		return []*Var{rhs.Operand}
	}
	return nil
}
func (s *Assign) String() string { return fmt.Sprintf("%s = %s", s.LValue, s.RHS) }
func (s *Assign) RValue() Exp    { return s.RHS }

// AssignStmt is implemented by the statements that define an lvalue Var
// from a single expression (Assign, New, Copy, LoadField, LoadArray);
// Invoke also defines a Var but is not one. The dead-assignment pass
// matches on this interface, not on the concrete kind.
type AssignStmt interface {
	Stmt
	// RValue is the expression assigned to the defined Var.
	RValue() Exp
}

func (s *New) RValue() Exp       { return NewExp{Type: s.Type} }
func (s *Copy) RValue() Exp      { return s.Src }
func (s *LoadField) RValue() Exp { return s.Access }
func (s *LoadArray) RValue() Exp { return s.Access }
