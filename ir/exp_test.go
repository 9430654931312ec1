package ir

import "testing"

func TestBinOpString(t *testing.T) {
	cases := map[BinOp]string{Add: "+", Eq: "==", Shl: "<<", Xor: "^"}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", op, got, want)
		}
	}
}

func TestIsDivOrRem(t *testing.T) {
	if !Div.IsDivOrRem() || !Rem.IsDivOrRem() {
		t.Error("Div and Rem should report IsDivOrRem")
	}
	if Add.IsDivOrRem() || Eq.IsDivOrRem() {
		t.Error("Add and Eq should not report IsDivOrRem")
	}
}

func TestInstanceFieldAccessString(t *testing.T) {
	base := &Var{Name: "b"}
	f := &Field{Name: "x"}
	a := InstanceFieldAccess{Base: base, Field: f}
	if got := a.String(); got != "b.x" {
		t.Fatalf("InstanceFieldAccess.String() = %q, want %q", got, "b.x")
	}
}

func TestArrayAccessString(t *testing.T) {
	a := ArrayAccess{Base: &Var{Name: "arr"}, Index: &Var{Name: "i"}}
	if got := a.String(); got != "arr[i]" {
		t.Fatalf("ArrayAccess.String() = %q, want %q", got, "arr[i]")
	}
}

func TestInvokeExpStringDistinguishesStaticFromInstance(t *testing.T) {
	c := NewClass("C", KindClass)
	ref := MethodRef{DeclaringClass: c, Subsignature: Subsignature{Name: "m", ParamTypes: "()"}}

	static := InvokeExp{Ref: ref}
	if got := static.String(); got != "C.m()(...)" {
		t.Fatalf("static InvokeExp.String() = %q, want %q", got, "C.m()(...)")
	}

	instance := InvokeExp{Ref: ref, Receiver: &Var{Name: "r"}}
	if got := instance.String(); got != "r.m()(...)" {
		t.Fatalf("instance InvokeExp.String() = %q, want %q", got, "r.m()(...)")
	}
}

func TestCastExpString(t *testing.T) {
	c := CastExp{Type: ClassType{Name: "C"}, Operand: &Var{Name: "x"}}
	if got := c.String(); got != "(C) x" {
		t.Fatalf("CastExp.String() = %q, want %q", got, "(C) x")
	}
}
