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

// Package lattice implements the three-valued constant lattice,
// the two fact containers the data-flow analyses operate over (CPFact,
// SetFact), and the shared `evaluate` used by both the intra-procedural and
// inter-procedural constant-propagation analyses.
package lattice

import "fmt"

// Kind discriminates the three elements of the constant lattice.
type Kind int

const (
	Undef Kind = iota
	Const
	NAC
)

// Value is an element of the lattice UNDEF ⊑ CONST(c) ⊑ NAC.
// The zero Value is UNDEF, so a freshly-declared Value or a CPFact miss
// both behave correctly without extra initialization.
type Value struct {
	kind  Kind
	constant int32
}

// UndefValue, NACValue, and Constant construct lattice elements.
func UndefValue() Value            { return Value{kind: Undef} }
func NACValue() Value              { return Value{kind: NAC} }
func Constant(c int32) Value       { return Value{kind: Const, constant: c} }

func (v Value) IsUndef() bool { return v.kind == Undef }
func (v Value) IsConst() bool { return v.kind == Const }
func (v Value) IsNAC() bool   { return v.kind == NAC }

// ConstValue returns the constant carried by v; only meaningful if
// v.IsConst().
func (v Value) ConstValue() int32 { return v.constant }

func (v Value) String() string {
	switch v.kind {
	case Undef:
		return "UNDEF"
	case NAC:
		return "NAC"
	default:
		return fmt.Sprintf("%d", v.constant)
	}
}

// Equal is the lattice element equality Value needs for CPFact/SetFact
// change detection during fixpoint iteration.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	return v.kind != Const || v.constant == o.constant
}

// Meet computes v1 ⊓ v2:
//   - any NAC ⇒ NAC
//   - both CONST: equal ⇒ same CONST; else NAC
//   - one CONST, other UNDEF ⇒ the CONST
//   - both UNDEF ⇒ UNDEF
func Meet(v1, v2 Value) Value {
	switch {
	case v1.IsNAC() || v2.IsNAC():
		return NACValue()
	case v1.IsConst() && v2.IsConst():
		if v1.constant == v2.constant {
			return v1
		}
		return NACValue()
	case v1.IsConst():
		return v1
	case v2.IsConst():
		return v2
	default:
		return UndefValue()
	}
}
