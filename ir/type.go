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

// Package ir defines the language-agnostic three-address intermediate
// representation the analyses in this repository operate over: methods with
// a control-flow graph of statements, typed variables, and a small
// expression language. It is the external IR a real frontend would
// produce (from bytecode, from source, from anything) and that the
// fixed-point analyses in the sibling packages only ever read.
package ir

import "fmt"

// PrimitiveKind enumerates the primitive types the analyses discriminate.
type PrimitiveKind int

const (
	// Byte is an 8-bit signed integer.
	Byte PrimitiveKind = iota
	// Short is a 16-bit signed integer.
	Short
	// Int is a 32-bit signed integer.
	Int
	// Char is an unsigned 16-bit code unit.
	Char
	// Boolean is a 1-bit truth value, represented as 0/1 for arithmetic.
	Boolean
	// Long, Float, Double round out the primitive set; they never hold
	// int-lattice values (see CanHoldInt) but appear in realistic programs.
	Long
	Float
	Double
)

func (k PrimitiveKind) String() string {
	switch k {
	case Byte:
		return "byte"
	case Short:
		return "short"
	case Int:
		return "int"
	case Char:
		return "char"
	case Boolean:
		return "boolean"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return "?"
	}
}

// intHolding is the set of "int-holding" primitive kinds: the ones the
// constant-propagation lattice tracks.
var intHolding = map[PrimitiveKind]bool{
	Byte: true, Short: true, Int: true, Char: true, Boolean: true,
}

// Type is any type in the IR's type system: a primitive, a class/interface
// reference, or an array.
type Type interface {
	String() string
	isType()
}

// PrimitiveType wraps a PrimitiveKind as a Type.
type PrimitiveType struct{ Kind PrimitiveKind }

func (PrimitiveType) isType()          {}
func (t PrimitiveType) String() string { return t.Kind.String() }

// ClassType references a declared class or interface by name. The
// authoritative *Class is resolved through the class hierarchy, not stored
// here, so that types can be constructed before the hierarchy is complete.
type ClassType struct{ Name string }

func (ClassType) isType()          {}
func (t ClassType) String() string { return t.Name }

// ArrayType is a (possibly multi-dimensional) array of Elem.
type ArrayType struct{ Elem Type }

func (ArrayType) isType() {}
func (t ArrayType) String() string {
	return fmt.Sprintf("%s[]", t.Elem)
}

// CanHoldInt reports whether v's static type is one of the int-holding
// primitives.
func CanHoldInt(v *Var) bool {
	if v == nil {
		return false
	}
	p, ok := v.Type.(PrimitiveType)
	return ok && intHolding[p.Kind]
}
