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

import "testing"

func TestConstructorsPreserveGivenIndex(t *testing.T) {
	lv := &Var{Name: "x"}
	if s := NewNewStmt(3, lv, ClassType{Name: "C"}); s.Index() != 3 {
		t.Errorf("NewNewStmt index = %d, want 3", s.Index())
	}
	if s := NewCopyStmt(4, lv, lv); s.Index() != 4 {
		t.Errorf("NewCopyStmt index = %d, want 4", s.Index())
	}
	if s := NewReturnStmt(5, lv); s.Index() != 5 {
		t.Errorf("NewReturnStmt index = %d, want 5", s.Index())
	}
	if s := NewNopStmt(6); s.Index() != 6 {
		t.Errorf("NewNopStmt index = %d, want 6", s.Index())
	}
}

func TestNewInvokeStmtCarriesKindAndExp(t *testing.T) {
	c := NewClass("C", KindClass)
	ref := MethodRef{DeclaringClass: c, Subsignature: Subsignature{Name: "m"}}
	exp := InvokeExp{Ref: ref}
	s := NewInvokeStmt(1, Virtual, exp, nil)
	if s.Kind != Virtual {
		t.Errorf("Kind = %v, want Virtual", s.Kind)
	}
	if s.Exp.Ref != ref {
		t.Errorf("Exp.Ref = %v, want %v", s.Exp.Ref, ref)
	}
}

func TestNewIfStmtCarriesCond(t *testing.T) {
	cond := BinaryExp{Op: Eq, Operand1: &Var{Name: "a"}, Operand2: &Var{Name: "b"}}
	s := NewIfStmt(2, cond)
	if s.Cond != cond {
		t.Errorf("Cond = %v, want %v", s.Cond, cond)
	}
}
