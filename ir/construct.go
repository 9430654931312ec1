package ir

// This file holds the exported constructors external builders (ir/build,
// and any real frontend) use to create statements with a fixed index.
// Statement structs keep their positional `base` field unexported so that
// an index, once assigned, cannot be mutated by analysis code — only by
// the code assembling the method body.

func NewNewStmt(index int, lvalue *Var, typ Type) *New {
	return &New{base: base{index}, LValue: lvalue, Type: typ}
}

func NewCopyStmt(index int, lvalue, src *Var) *Copy {
	return &Copy{base: base{index}, LValue: lvalue, Src: src}
}

func NewLoadFieldStmt(index int, lvalue *Var, access Exp, isStatic bool) *LoadField {
	return &LoadField{base: base{index}, LValue: lvalue, Access: access, IsStatic: isStatic}
}

func NewStoreFieldStmt(index int, access Exp, rvalue *Var, isStatic bool) *StoreField {
	return &StoreField{base: base{index}, Access: access, RValue: rvalue, IsStatic: isStatic}
}

func NewLoadArrayStmt(index int, lvalue *Var, access ArrayAccess) *LoadArray {
	return &LoadArray{base: base{index}, LValue: lvalue, Access: access}
}

func NewStoreArrayStmt(index int, access ArrayAccess, rvalue *Var) *StoreArray {
	return &StoreArray{base: base{index}, Access: access, RValue: rvalue}
}

func NewInvokeStmt(index int, kind CallKind, exp InvokeExp, lvalue *Var) *Invoke {
	return &Invoke{base: base{index}, Kind: kind, Exp: exp, LValue: lvalue}
}

func NewAssignStmt(index int, lvalue *Var, rhs Exp) *Assign {
	return &Assign{base: base{index}, LValue: lvalue, RHS: rhs}
}

func NewIfStmt(index int, cond BinaryExp) *If {
	return &If{base: base{index}, Cond: cond}
}

func NewSwitchStmt(index int, v *Var, caseValues []int32) *Switch {
	return &Switch{base: base{index}, Var: v, CaseValues: caseValues}
}

func NewReturnStmt(index int, value *Var) *Return {
	return &Return{base: base{index}, Value: value}
}

func NewNopStmt(index int) *Nop {
	return &Nop{base: base{index}}
}
