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

func TestAddMethodSetsDeclaringAndRegistersBySubsignature(t *testing.T) {
	c := NewClass("C", KindClass)
	sig := Subsignature{Name: "m", ParamTypes: "()"}
	m := &Method{Name: "m", Subsignature: sig}

	c.AddMethod(m)

	if m.Declaring != c {
		t.Fatal("AddMethod should set Declaring on the method")
	}
	if got := c.DeclaredMethod(sig); got != m {
		t.Fatalf("DeclaredMethod(sig) = %v, want m", got)
	}
	if got := c.DeclaredMethod(Subsignature{Name: "other"}); got != nil {
		t.Fatalf("DeclaredMethod for an undeclared subsignature should be nil, got %v", got)
	}
}

func TestDeclaredMethodOnNilClassIsNil(t *testing.T) {
	var c *Class
	if got := c.DeclaredMethod(Subsignature{Name: "m"}); got != nil {
		t.Fatalf("DeclaredMethod on a nil class should be nil, got %v", got)
	}
}

func TestDeclaredMethodsReturnsEveryDeclaredMethod(t *testing.T) {
	c := NewClass("C", KindClass)
	c.AddMethod(&Method{Name: "a", Subsignature: Subsignature{Name: "a"}})
	c.AddMethod(&Method{Name: "b", Subsignature: Subsignature{Name: "b"}})

	got := c.DeclaredMethods()
	if len(got) != 2 {
		t.Fatalf("DeclaredMethods() = %v, want 2 methods", got)
	}
}

func TestMethodRefAndRef(t *testing.T) {
	c := NewClass("C", KindClass)
	sig := Subsignature{Name: "m", ParamTypes: "(int)"}
	m := &Method{Subsignature: sig}
	c.AddMethod(m)

	ref := m.Ref()
	if ref.DeclaringClass != c || ref.Subsignature != sig {
		t.Fatalf("Ref() = %v, want {C, m(int)}", ref)
	}
	if ref.String() != "C.m(int)" {
		t.Fatalf("MethodRef.String() = %q, want %q", ref.String(), "C.m(int)")
	}
}

func TestMethodParamCount(t *testing.T) {
	m := &Method{Params: []*Var{{Name: "p0"}, {Name: "p1"}}}
	if m.ParamCount() != 2 {
		t.Fatalf("ParamCount() = %d, want 2", m.ParamCount())
	}
}

func TestMethodStringOnNilReceiver(t *testing.T) {
	var m *Method
	if m.String() != "<nil method>" {
		t.Fatalf("nil *Method.String() = %q, want %q", m.String(), "<nil method>")
	}
}

func TestFieldString(t *testing.T) {
	c := NewClass("C", KindClass)
	f := &Field{Name: "x", Declaring: c}
	if f.String() != "C.x" {
		t.Fatalf("Field.String() = %q, want %q", f.String(), "C.x")
	}
}
