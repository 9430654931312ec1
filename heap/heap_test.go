package heap

import (
	"testing"

	"git.amazon.com/pkg/tai-analyzer/ir"
)

func TestAllocationSiteModelInternsPerSite(t *testing.T) {
	mgr := NewManager()
	model := NewAllocationSiteModel(mgr)

	site := &ir.New{LValue: &ir.Var{Name: "x"}, Type: ir.ClassType{Name: "C"}}
	o1 := model.Obj(site)
	o2 := model.Obj(site)
	if o1 != o2 {
		t.Fatal("Obj should return the same AllocObj for the same allocation site")
	}

	other := &ir.New{LValue: &ir.Var{Name: "y"}, Type: ir.ClassType{Name: "C"}}
	o3 := model.Obj(other)
	if o3 == o1 {
		t.Fatal("Obj should return distinct objects for distinct allocation sites")
	}
	if o3.Index() == o1.Index() {
		t.Fatal("distinct objects should have distinct dense indices")
	}
}

func TestTaintManagerInternsPerSourceAndType(t *testing.T) {
	mgr := NewManager()
	tm := NewTaintManager(mgr)

	source := &ir.Invoke{}
	strType := ir.ClassType{Name: "String"}
	intType := ir.PrimitiveType{Kind: ir.Int}

	o1 := tm.Obj(source, strType)
	o2 := tm.Obj(source, strType)
	if o1 != o2 {
		t.Fatal("Obj should return the same TaintObj for the same (source, type) pair")
	}

	o3 := tm.Obj(source, intType)
	if o3 == o1 {
		t.Fatal("retyping the same source to a different type should mint a distinct mark")
	}
	if o3.Index() == o1.Index() {
		t.Fatal("distinct marks should have distinct dense indices")
	}

	other := &ir.Invoke{}
	o4 := tm.Obj(other, strType)
	if o4 == o1 {
		t.Fatal("a different source call should mint a distinct mark even with the same type")
	}
}

func TestAllocObjAndTaintObjShareOneIndexSpace(t *testing.T) {
	mgr := NewManager()
	model := NewAllocationSiteModel(mgr)
	tm := NewTaintManager(mgr)

	alloc := model.Obj(&ir.New{LValue: &ir.Var{Name: "x"}, Type: ir.ClassType{Name: "C"}})
	mark := tm.Obj(&ir.Invoke{}, ir.ClassType{Name: "String"})
	if alloc.Index() == mark.Index() {
		t.Fatal("an AllocObj and a TaintObj minted from the same Manager should never collide")
	}
}

func TestManagerIndicesAreMonotone(t *testing.T) {
	mgr := NewManager()
	first := mgr.NextIndex()
	second := mgr.NextIndex()
	if second != first+1 {
		t.Fatalf("NextIndex should hand out consecutive indices, got %d then %d", first, second)
	}
	if mgr.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", mgr.Size())
	}
}
