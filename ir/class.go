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

// ClassKind distinguishes classes from interfaces; CHA dispatch treats
// them differently when walking the hierarchy.
type ClassKind int

const (
	// KindClass is a concrete or abstract class.
	KindClass ClassKind = iota
	// KindInterface is an interface.
	KindInterface
)

// Subsignature identifies a method independent of its declaring class:
// name plus parameter types (return type is not part of overload
// resolution in the source language this IR models, matching Tai-e).
type Subsignature struct {
	Name       string
	ParamTypes string // pre-rendered, e.g. "(int,java.lang.String)"
}

func (s Subsignature) String() string { return s.Name + s.ParamTypes }

// Field is a declared field, static or instance.
type Field struct {
	Name       string
	Type       Type
	Declaring  *Class
	IsStatic   bool
}

func (f *Field) String() string {
	return fmt.Sprintf("%s.%s", f.Declaring.Name, f.Name)
}

// Class is a class or interface node in the class hierarchy.
type Class struct {
	Name       string
	Kind       ClassKind
	Super      *Class   // nil for java.lang.Object-equivalent roots
	Interfaces []*Class // interfaces a class implements, or an interface extends
	Abstract   bool

	Fields  map[string]*Field
	methods map[Subsignature]*Method
}

// NewClass creates an empty class/interface node ready to be populated by a
// builder. It is exported so external IR providers and tests can construct
// hierarchies directly, without an intermediate textual form.
func NewClass(name string, kind ClassKind) *Class {
	return &Class{
		Name:    name,
		Kind:    kind,
		Fields:  map[string]*Field{},
		methods: map[Subsignature]*Method{},
	}
}

// AddMethod registers m as declared by c.
func (c *Class) AddMethod(m *Method) {
	m.Declaring = c
	c.methods[m.Subsignature] = m
}

// DeclaredMethod returns the method c itself declares with the given
// subsignature, or nil — a declaredMethod(C, sig) lookup restricted to C,
// with no ascent to superclasses.
func (c *Class) DeclaredMethod(sig Subsignature) *Method {
	if c == nil {
		return nil
	}
	return c.methods[sig]
}

// DeclaredMethods returns all methods c itself declares, order unspecified.
func (c *Class) DeclaredMethods() []*Method {
	out := make([]*Method, 0, len(c.methods))
	for _, m := range c.methods {
		out = append(out, m)
	}
	return out
}

func (c *Class) String() string { return c.Name }

// MethodRef is an unresolved reference to a method: the class through which
// it was invoked syntactically, plus its subsignature. Resolution against
// an actual receiver type happens in package callgraph.
type MethodRef struct {
	DeclaringClass *Class
	Subsignature   Subsignature
}

func (r MethodRef) String() string { return r.DeclaringClass.Name + "." + r.Subsignature.String() }

// Method is a declared method, static or instance, abstract or concrete.
// Abstract methods have a nil IR (no body).
type Method struct {
	Name         string
	Subsignature Subsignature
	Declaring    *Class
	IsStatic     bool
	IsAbstract   bool
	ReturnType   Type

	Params     []*Var
	ThisVar    *Var // nil for static methods
	ReturnVars []*Var

	IR *IR // nil for abstract methods
}

func (m *Method) String() string {
	if m == nil {
		return "<nil method>"
	}
	return m.Declaring.Name + "." + m.Subsignature.String()
}

// ParamCount is the number of formal parameters (excluding "this").
func (m *Method) ParamCount() int { return len(m.Params) }

// Ref returns the MethodRef by which m would be looked up through its
// declaring class.
func (m *Method) Ref() MethodRef {
	return MethodRef{DeclaringClass: m.Declaring, Subsignature: m.Subsignature}
}
