package ir

// IR is the body of a concrete method: its statements (in program order)
// and the CFG over them. Abstract methods have no IR (Method.IR == nil).
type IR struct {
	Method *Method
	Stmts  []Stmt
	CFG    *CFG
}

// Params returns the method's formal parameters.
func (r *IR) Params() []*Var { return r.Method.Params }

// This returns the method's receiver variable, or nil if static.
func (r *IR) This() *Var { return r.Method.ThisVar }

// ReturnVars returns every Var used in a return statement's value slot
// across the method (a method may have several return statements).
func (r *IR) ReturnVars() []*Var { return r.Method.ReturnVars }
