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

// Package build provides an in-process, fluent way to assemble ir.Method
// bodies, for callers that already have a program description in some
// other form and want to construct the IR directly rather than through a
// text parser.
package build

import "git.amazon.com/pkg/tai-analyzer/ir"

// Builder assembles ir.Class values.
type Builder struct{}

// New returns a fresh Builder.
func New() *Builder { return &Builder{} }

// Class creates a class or interface node.
func (b *Builder) Class(name string, kind ir.ClassKind, super *ir.Class, ifaces ...*ir.Class) *ir.Class {
	c := ir.NewClass(name, kind)
	c.Super = super
	c.Interfaces = ifaces
	return c
}

// Field declares a field on c.
func (b *Builder) Field(c *ir.Class, name string, typ ir.Type, static bool) *ir.Field {
	f := &ir.Field{Name: name, Type: typ, Declaring: c, IsStatic: static}
	c.Fields[name] = f
	return f
}

// MethodBuilder incrementally assembles one method's body.
type MethodBuilder struct {
	m       *ir.Method
	cfg     *ir.CFG
	nextIdx int
	varIdx  int
	last    ir.Stmt // last statement appended via a "linear" helper, for auto fall-through
	hasLast bool
}

// Method declares a method on c and returns a builder for its body.
// paramTypes gives the types of the formal parameters, in order; if
// isStatic is false a "this" var of type ClassType{c.Name} is created too.
func (b *Builder) Method(c *ir.Class, name string, isStatic, isAbstract bool, returnType ir.Type, paramTypes ...ir.Type) *MethodBuilder {
	m := &ir.Method{
		Name:       name,
		Subsignature: ir.Subsignature{Name: name, ParamTypes: paramTypesKey(paramTypes)},
		IsStatic:   isStatic,
		IsAbstract: isAbstract,
		ReturnType: returnType,
	}
	c.AddMethod(m)

	mb := &MethodBuilder{m: m}
	if !isStatic {
		m.ThisVar = mb.newVarLocked("this", ir.ClassType{Name: c.Name})
	}
	for i, pt := range paramTypes {
		m.Params = append(m.Params, mb.newVarLocked(paramName(i), pt))
	}
	if isAbstract {
		return mb
	}
	m.IR = &ir.IR{Method: m}
	mb.cfg = ir.NewCFG(m)
	m.IR.CFG = mb.cfg
	return mb
}

func paramName(i int) string {
	names := []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7"}
	if i < len(names) {
		return names[i]
	}
	return "pN"
}

func paramTypesKey(ts []ir.Type) string {
	s := "("
	for i, t := range ts {
		if i > 0 {
			s += ","
		}
		s += t.String()
	}
	return s + ")"
}

// Method returns the ir.Method under construction.
func (mb *MethodBuilder) Method() *ir.Method { return mb.m }

// This returns the receiver var (nil for static methods).
func (mb *MethodBuilder) This() *ir.Var { return mb.m.ThisVar }

// Param returns the i-th formal parameter.
func (mb *MethodBuilder) Param(i int) *ir.Var { return mb.m.Params[i] }

func (mb *MethodBuilder) newVarLocked(name string, typ ir.Type) *ir.Var {
	v := &ir.Var{Name: name, Type: typ, Method: mb.m, Index: mb.varIdx}
	mb.varIdx++
	return v
}

// NewVar declares a fresh local variable.
func (mb *MethodBuilder) NewVar(name string, typ ir.Type) *ir.Var {
	return mb.newVarLocked(name, typ)
}

// add appends s as a CFG node, records site cross-references on the Vars
// it touches, and (unless the previous statement was a branch/return that
// already got explicit edges via Emit's caller) links prev -> s normally.
func (mb *MethodBuilder) add(s ir.Stmt) ir.Stmt {
	mb.m.IR.Stmts = append(mb.m.IR.Stmts, s)
	mb.cfg.AddStmt(s)
	mb.wireSites(s)
	if !mb.hasLast {
		mb.cfg.AddEdge(mb.cfg.Entry, s, ir.EdgeNormal, 0)
	} else {
		mb.cfg.AddEdge(mb.last, s, ir.EdgeNormal, 0)
	}
	mb.last = s
	mb.hasLast = true
	return s
}

func (mb *MethodBuilder) wireSites(s ir.Stmt) {
	switch st := s.(type) {
	case *ir.LoadField:
		if a, ok := st.Access.(ir.InstanceFieldAccess); ok {
			registerLoadField(a.Base, st)
		}
	case *ir.StoreField:
		if a, ok := st.Access.(ir.InstanceFieldAccess); ok {
			registerStoreField(a.Base, st)
		}
	case *ir.LoadArray:
		registerLoadArray(st.Access.Base, st)
	case *ir.StoreArray:
		registerStoreArray(st.Access.Base, st)
	case *ir.Invoke:
		if st.Exp.Receiver != nil {
			registerInvoke(st.Exp.Receiver, st)
		}
	case *ir.Return:
		if st.Value != nil {
			mb.m.ReturnVars = append(mb.m.ReturnVars, st.Value)
		}
	}
}

// New emits `lvalue = new typ`.
func (mb *MethodBuilder) New(lvalue *ir.Var, typ ir.Type) *ir.New {
	s := ir.NewNewStmt(mb.next(), lvalue, typ)
	mb.add(s)
	return s
}

// Copy emits `lvalue = src`.
func (mb *MethodBuilder) Copy(lvalue, src *ir.Var) *ir.Copy {
	s := ir.NewCopyStmt(mb.next(), lvalue, src)
	mb.add(s)
	return s
}

// LoadInstanceField emits `lvalue = base.field`.
func (mb *MethodBuilder) LoadInstanceField(lvalue, base *ir.Var, f *ir.Field) *ir.LoadField {
	s := ir.NewLoadFieldStmt(mb.next(), lvalue, ir.InstanceFieldAccess{Base: base, Field: f}, false)
	mb.add(s)
	return s
}

// StoreInstanceField emits `base.field = rvalue`.
func (mb *MethodBuilder) StoreInstanceField(base *ir.Var, f *ir.Field, rvalue *ir.Var) *ir.StoreField {
	s := ir.NewStoreFieldStmt(mb.next(), ir.InstanceFieldAccess{Base: base, Field: f}, rvalue, false)
	mb.add(s)
	return s
}

// LoadStaticField emits `lvalue = C.field`.
func (mb *MethodBuilder) LoadStaticField(lvalue *ir.Var, f *ir.Field) *ir.LoadField {
	s := ir.NewLoadFieldStmt(mb.next(), lvalue, ir.StaticFieldAccess{Field: f}, true)
	mb.add(s)
	return s
}

// StoreStaticField emits `C.field = rvalue`.
func (mb *MethodBuilder) StoreStaticField(f *ir.Field, rvalue *ir.Var) *ir.StoreField {
	s := ir.NewStoreFieldStmt(mb.next(), ir.StaticFieldAccess{Field: f}, rvalue, true)
	mb.add(s)
	return s
}

// LoadArray emits `lvalue = base[index]`.
func (mb *MethodBuilder) LoadArray(lvalue, base, index *ir.Var) *ir.LoadArray {
	s := ir.NewLoadArrayStmt(mb.next(), lvalue, ir.ArrayAccess{Base: base, Index: index})
	mb.add(s)
	return s
}

// StoreArray emits `base[index] = rvalue`.
func (mb *MethodBuilder) StoreArray(base, index, rvalue *ir.Var) *ir.StoreArray {
	s := ir.NewStoreArrayStmt(mb.next(), ir.ArrayAccess{Base: base, Index: index}, rvalue)
	mb.add(s)
	return s
}

// AssignConst emits `lvalue = <IntLiteral>` as a generic Assign whose RHS
// is the IntLiteral itself; no constant var is created.
func (mb *MethodBuilder) AssignConst(lvalue *ir.Var, value int32) *ir.Assign {
	s := ir.NewAssignStmt(mb.next(), lvalue, ir.IntLiteral{Value: value})
	mb.add(s)
	return s
}

// Binary emits `lvalue = op1 OP op2`.
func (mb *MethodBuilder) Binary(lvalue *ir.Var, op ir.BinOp, op1, op2 *ir.Var) *ir.Assign {
	s := ir.NewAssignStmt(mb.next(), lvalue, ir.BinaryExp{Op: op, Operand1: op1, Operand2: op2})
	mb.add(s)
	return s
}

// Cast emits `lvalue = (typ) operand`.
func (mb *MethodBuilder) Cast(lvalue *ir.Var, typ ir.Type, operand *ir.Var) *ir.Assign {
	s := ir.NewAssignStmt(mb.next(), lvalue, ir.CastExp{Type: typ, Operand: operand})
	mb.add(s)
	return s
}

// Invoke emits a call statement.
func (mb *MethodBuilder) Invoke(kind ir.CallKind, lvalue *ir.Var, ref ir.MethodRef, receiver *ir.Var, args ...*ir.Var) *ir.Invoke {
	s := ir.NewInvokeStmt(mb.next(), kind, ir.InvokeExp{Ref: ref, Receiver: receiver, Args: args}, lvalue)
	mb.add(s)
	return s
}

// If emits a conditional; the caller must connect its two outgoing edges
// with TrueEdge/FalseEdge afterwards (the statement following If in
// construction order is NOT auto-linked, since If never falls through).
func (mb *MethodBuilder) If(op ir.BinOp, op1, op2 *ir.Var) *ir.If {
	s := ir.NewIfStmt(mb.next(), ir.BinaryExp{Op: op, Operand1: op1, Operand2: op2})
	mb.m.IR.Stmts = append(mb.m.IR.Stmts, s)
	mb.cfg.AddStmt(s)
	if !mb.hasLast {
		mb.cfg.AddEdge(mb.cfg.Entry, s, ir.EdgeNormal, 0)
	} else {
		mb.cfg.AddEdge(mb.last, s, ir.EdgeNormal, 0)
	}
	mb.last = s
	mb.hasLast = false // caller must supply explicit branch edges
	return s
}

// TrueEdge / FalseEdge connect an If's two branches explicitly.
func (mb *MethodBuilder) TrueEdge(from *ir.If, to ir.Stmt) {
	mb.cfg.AddEdge(from, to, ir.EdgeIfTrue, 0)
}
func (mb *MethodBuilder) FalseEdge(from *ir.If, to ir.Stmt) {
	mb.cfg.AddEdge(from, to, ir.EdgeIfFalse, 0)
}

// Switch emits a multi-way branch; like If, its edges are explicit.
func (mb *MethodBuilder) Switch(v *ir.Var, caseValues []int32) *ir.Switch {
	s := ir.NewSwitchStmt(mb.next(), v, caseValues)
	mb.m.IR.Stmts = append(mb.m.IR.Stmts, s)
	mb.cfg.AddStmt(s)
	if !mb.hasLast {
		mb.cfg.AddEdge(mb.cfg.Entry, s, ir.EdgeNormal, 0)
	} else {
		mb.cfg.AddEdge(mb.last, s, ir.EdgeNormal, 0)
	}
	mb.last = s
	mb.hasLast = false
	return s
}

// CaseEdge / DefaultEdge connect a Switch's branches explicitly.
func (mb *MethodBuilder) CaseEdge(from *ir.Switch, value int32, to ir.Stmt) {
	mb.cfg.AddEdge(from, to, ir.EdgeSwitchCase, value)
}
func (mb *MethodBuilder) DefaultEdge(from *ir.Switch, to ir.Stmt) {
	mb.cfg.AddEdge(from, to, ir.EdgeDefault, 0)
}

// Goto links from -> to with a plain (non-fall-through) edge. It only adds
// the edge; it does not change where subsequent add()-based emits link
// from.
func (mb *MethodBuilder) Goto(from, to ir.Stmt) {
	mb.cfg.AddEdge(from, to, ir.EdgeNormal, 0)
}

// Resume tells the builder that subsequent linear emissions should fall
// through from `s` (used after an explicit branch target rejoins the
// straight-line sequence).
func (mb *MethodBuilder) Resume(s ir.Stmt) {
	mb.last = s
	mb.hasLast = true
}

// Return emits a return statement.
func (mb *MethodBuilder) Return(value *ir.Var) *ir.Return {
	s := ir.NewReturnStmt(mb.next(), value)
	mb.add(s)
	mb.cfg.AddEdge(s, mb.cfg.Exit, ir.EdgeNormal, 0)
	mb.hasLast = false
	return s
}

// Finish connects the last linearly-added statement to Exit if it has not
// already been terminated (by Return), and freezes the CFG.
func (mb *MethodBuilder) Finish() *ir.Method {
	if mb.hasLast {
		mb.cfg.AddEdge(mb.last, mb.cfg.Exit, ir.EdgeNormal, 0)
	}
	return mb.m
}

func (mb *MethodBuilder) next() int {
	i := mb.nextIdx
	mb.nextIdx++
	return i
}

func registerLoadField(v *ir.Var, s *ir.LoadField)   { v.AddLoadFieldSite(s) }
func registerStoreField(v *ir.Var, s *ir.StoreField) { v.AddStoreFieldSite(s) }
func registerLoadArray(v *ir.Var, s *ir.LoadArray)   { v.AddLoadArraySite(s) }
func registerStoreArray(v *ir.Var, s *ir.StoreArray) { v.AddStoreArraySite(s) }
func registerInvoke(v *ir.Var, s *ir.Invoke)         { v.AddInvokeSite(s) }
