package interproc

import (
	"testing"

	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/classhierarchy"
	"git.amazon.com/pkg/tai-analyzer/heap"
	"git.amazon.com/pkg/tai-analyzer/icfg"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/ir/build"
	"git.amazon.com/pkg/tai-analyzer/lattice"
)

func intType() ir.Type { return ir.PrimitiveType{Kind: ir.Int} }

type noPTS struct{}

func (noPTS) PointsToSetOf(v *ir.Var) []heap.Obj { return nil }

// mapPTS is a real (non-stub) PointerInfo: it hands back whatever
// points-to set was registered for a Var, so tests can alias two
// unrelated methods' params onto the same heap.Obj the way a real
// pointer analysis would.
type mapPTS map[*ir.Var][]heap.Obj

func (m mapPTS) PointsToSetOf(v *ir.Var) []heap.Obj { return m[v] }

// staticFieldProgram builds two unrelated static methods sharing a static
// field: A() { C.s = 7 }; B() { x = C.s; return x }. Neither calls the
// other — only the shared HeapFactStore connects them.
func staticFieldProgram() (*ir.Method, *ir.Method, *ir.Var, *ir.Return) {
	bld := build.New()
	c := bld.Class("C", ir.KindClass, nil)
	s := bld.Field(c, "s", intType(), true)

	mbA := bld.Method(c, "A", true, false, ir.Type(nil))
	seven := mbA.NewVar("seven", intType())
	mbA.AssignConst(seven, 7)
	mbA.StoreStaticField(s, seven)
	a := mbA.Finish()

	mbB := bld.Method(c, "B", true, false, intType())
	x := mbB.NewVar("x", intType())
	mbB.LoadStaticField(x, s)
	ret := mbB.Return(x)
	b := mbB.Finish()

	return a, b, x, ret
}

// callProgram builds callee() { return 7 } and caller() { x = callee();
// y = x + 1; return y }, wired as a real call/return pair so a caller's
// use of the callee's result exercises the ICFG's Call and Return edges
// end to end.
func callProgram() (*ir.Method, *ir.Method, *ir.Var, *ir.Return) {
	bld := build.New()
	c := bld.Class("C", ir.KindClass, nil)

	mbCallee := bld.Method(c, "callee", true, false, intType())
	seven := mbCallee.NewVar("seven", intType())
	mbCallee.AssignConst(seven, 7)
	mbCallee.Return(seven)
	calleeMethod := mbCallee.Finish()

	mbCaller := bld.Method(c, "caller", true, false, intType())
	x := mbCaller.NewVar("x", intType())
	one := mbCaller.NewVar("one", intType())
	y := mbCaller.NewVar("y", intType())
	mbCaller.Invoke(ir.Static, x, calleeMethod.Ref(), nil)
	mbCaller.AssignConst(one, 1)
	mbCaller.Binary(y, ir.Add, x, one)
	ret := mbCaller.Return(y)
	caller := mbCaller.Finish()

	return caller, calleeMethod, y, ret
}

// instanceFieldViaPTSProgram builds set(A o,int v){o.f=v} (with v fixed to
// the constant 7) and get(A o){return o.f}, two methods with no call edge
// between them at all: the only thing connecting them is that a real
// PointerInfo resolves both methods' o param to the same heap.Obj, the
// canonical "field written in one method, read in an unrelated one,
// connected only through aliasing" scenario.
func instanceFieldViaPTSProgram() (set, get *ir.Method, x *ir.Var, ret *ir.Return, pts mapPTS) {
	bld := build.New()
	a := bld.Class("A", ir.KindClass, nil)
	f := bld.Field(a, "f", intType(), false)
	aType := ir.ClassType{Name: "A"}

	setMb := bld.Method(a, "set", true, false, ir.Type(nil), aType, intType())
	oSet := setMb.Param(0)
	seven := setMb.NewVar("seven", intType())
	setMb.AssignConst(seven, 7)
	setMb.StoreInstanceField(oSet, f, seven)
	set = setMb.Finish()

	getMb := bld.Method(a, "get", true, false, intType(), aType)
	oGet := getMb.Param(0)
	x = getMb.NewVar("x", intType())
	getMb.LoadInstanceField(x, oGet, f)
	ret = getMb.Return(x)
	get = getMb.Finish()

	obj := heap.NewAllocationSiteModel(heap.NewManager()).Obj(ir.NewNewStmt(0, nil, aType))
	pts = mapPTS{oSet: {obj}, oGet: {obj}}
	return set, get, x, ret, pts
}

// arrayDistinctIndicesProgram builds a[0]=1; a[1]=2; x0=a[0] over one
// freshly allocated array, so a correct, index-keyed heap store must
// return x0=CONST(1) rather than merging the two stores into one slot.
func arrayDistinctIndicesProgram() (m *ir.Method, x0 *ir.Var, ret *ir.Return, pts mapPTS) {
	bld := build.New()
	c := bld.Class("C", ir.KindClass, nil)
	arrType := ir.ArrayType{Elem: intType()}

	mb := bld.Method(c, "m", true, false, intType())
	a := mb.NewVar("a", arrType)
	newStmt := mb.New(a, arrType)

	i0 := mb.NewVar("i0", intType())
	mb.AssignConst(i0, 0)
	v0 := mb.NewVar("v0", intType())
	mb.AssignConst(v0, 1)
	mb.StoreArray(a, i0, v0)

	i1 := mb.NewVar("i1", intType())
	mb.AssignConst(i1, 1)
	v1 := mb.NewVar("v1", intType())
	mb.AssignConst(v1, 2)
	mb.StoreArray(a, i1, v1)

	x0 = mb.NewVar("x0", intType())
	mb.LoadArray(x0, a, i0)
	ret = mb.Return(x0)
	m = mb.Finish()

	obj := heap.NewAllocationSiteModel(heap.NewManager()).Obj(newStmt)
	pts = mapPTS{a: {obj}}
	return m, x0, ret, pts
}

func TestSolvePropagatesInstanceFieldAcrossMethodsViaRealPointsTo(t *testing.T) {
	set, get, x, ret, pts := instanceFieldViaPTSProgram()
	h := classhierarchy.New([]*ir.Class{set.Declaring})
	cg := callgraph.BuildCHA(h, []*ir.Method{set, get})
	g := icfg.Build(cg)

	result := Solve(g, pts, []*ir.Method{set, get})

	out := result.OutFact(ret)
	got := out.Get(x)
	if !got.Equal(lattice.Constant(7)) {
		t.Fatalf("x at get's return = %v, want CONST(7) propagated through the aliased instance field", got)
	}
}

func TestSolveKeepsArrayStoresSeparateByIndex(t *testing.T) {
	m, x0, ret, pts := arrayDistinctIndicesProgram()
	h := classhierarchy.New([]*ir.Class{m.Declaring})
	cg := callgraph.BuildCHA(h, []*ir.Method{m})
	g := icfg.Build(cg)

	result := Solve(g, pts, []*ir.Method{m})

	out := result.OutFact(ret)
	got := out.Get(x0)
	if !got.Equal(lattice.Constant(1)) {
		t.Fatalf("x0 (a[0]) at return = %v, want CONST(1); a store to a[1] must not clobber a[0]'s slot", got)
	}
}

func TestSolveBindsArgumentsAndPropagatesReturnValueAcrossACall(t *testing.T) {
	caller, _, y, ret := callProgram()
	h := classhierarchy.New([]*ir.Class{caller.Declaring})
	cg := callgraph.BuildCHA(h, []*ir.Method{caller})
	g := icfg.Build(cg)

	result := Solve(g, noPTS{}, []*ir.Method{caller})

	out := result.OutFact(ret)
	got := out.Get(y)
	if !got.Equal(lattice.Constant(8)) {
		t.Fatalf("y at caller's return = %v, want CONST(8) (callee's constant return value plus one, propagated through the Call/Return edges)", got)
	}
}

func TestSolvePropagatesStaticFieldAcrossMethods(t *testing.T) {
	a, b, x, ret := staticFieldProgram()
	h := classhierarchy.New([]*ir.Class{a.Declaring})
	cg := callgraph.BuildCHA(h, []*ir.Method{a, b})
	g := icfg.Build(cg)

	result := Solve(g, noPTS{}, []*ir.Method{a, b})

	out := result.OutFact(ret)
	got := out.Get(x)
	if !got.Equal(lattice.Constant(7)) {
		t.Fatalf("x at B's return = %v, want CONST(7) propagated through the static field", got)
	}
}
