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

package ci

import (
	"testing"

	"git.amazon.com/pkg/tai-analyzer/classhierarchy"
	"git.amazon.com/pkg/tai-analyzer/heap"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/ir/build"
)

func classType(name string) ir.Type { return ir.ClassType{Name: name} }

// straightLineAlloc builds: x = new C(); y = x; return y.
func straightLineAlloc() (*ir.Method, *ir.Var, *ir.Var) {
	bld := build.New()
	c := bld.Class("C", ir.KindClass, nil)
	mb := bld.Method(c, "m", true, false, classType("C"))
	x := mb.NewVar("x", classType("C"))
	y := mb.NewVar("y", classType("C"))
	mb.New(x, classType("C"))
	mb.Copy(y, x)
	mb.Return(y)
	m := mb.Finish()
	return m, x, y
}

func TestSolveCopyPropagatesPointsToSet(t *testing.T) {
	m, x, y := straightLineAlloc()
	mgr := heap.NewManager()
	s := New(nil, heap.NewAllocationSiteModel(mgr))
	result := s.Solve([]*ir.Method{m})

	xObjs := result.PointsToSetOf(x)
	if len(xObjs) != 1 {
		t.Fatalf("x should point to exactly the one object it was allocated with, got %d", len(xObjs))
	}
	yObjs := result.PointsToSetOf(y)
	if len(yObjs) != 1 || yObjs[0] != xObjs[0] {
		t.Fatalf("y = x should give y the same points-to set as x, got %v want %v", yObjs, xObjs)
	}
}

func TestSolveInstanceFieldStoreLoad(t *testing.T) {
	bld := build.New()
	box := bld.Class("Box", ir.KindClass, nil)
	f := bld.Field(box, "v", classType("Box"), false)
	c := bld.Class("C", ir.KindClass, nil)
	mb := bld.Method(c, "m", true, false, classType("Box"))

	b := mb.NewVar("b", classType("Box"))
	inner := mb.NewVar("inner", classType("Box"))
	out := mb.NewVar("out", classType("Box"))
	mb.New(b, classType("Box"))
	mb.New(inner, classType("Box"))
	mb.StoreInstanceField(b, f, inner)
	mb.LoadInstanceField(out, b, f)
	mb.Return(out)
	m := mb.Finish()

	mgr := heap.NewManager()
	s := New(nil, heap.NewAllocationSiteModel(mgr))
	result := s.Solve([]*ir.Method{m})

	innerObjs := result.PointsToSetOf(inner)
	outObjs := result.PointsToSetOf(out)
	if len(innerObjs) != 1 || len(outObjs) != 1 || innerObjs[0] != outObjs[0] {
		t.Fatalf("out should alias inner through b.v, got inner=%v out=%v", innerObjs, outObjs)
	}
}

// virtualCallProgram builds Animal (abstract speak) <- Dog, Cat (both
// override speak); Main.main does `d = new Dog(); d.speak();`.
func virtualCallProgram() ([]*ir.Class, *ir.Method, *ir.Method) {
	bld := build.New()
	voidT := ir.Type(nil)
	animal := bld.Class("Animal", ir.KindClass, nil)
	animal.Abstract = true
	bld.Method(animal, "speak", false, true, voidT)

	dog := bld.Class("Dog", ir.KindClass, animal)
	dogSpeak := bld.Method(dog, "speak", false, false, voidT)
	dogSpeak.Finish()

	cat := bld.Class("Cat", ir.KindClass, animal)
	catSpeak := bld.Method(cat, "speak", false, false, voidT)
	catSpeak.Finish()

	caller := bld.Class("Main", ir.KindClass, nil)
	mainMb := bld.Method(caller, "main", true, false, voidT)
	d := mainMb.NewVar("d", classType("Dog"))
	mainMb.New(d, classType("Dog"))
	speakRef := ir.MethodRef{DeclaringClass: animal, Subsignature: ir.Subsignature{Name: "speak", ParamTypes: "()"}}
	mainMb.Invoke(ir.Virtual, nil, speakRef, d)
	main := mainMb.Finish()

	return []*ir.Class{animal, dog, cat, caller}, main, dogSpeak.Method()
}

func TestSolveVirtualCallResolvesByRuntimeType(t *testing.T) {
	classes, main, dogSpeak := virtualCallProgram()
	h := classhierarchy.New(classes)

	mgr := heap.NewManager()
	s := New(h, heap.NewAllocationSiteModel(mgr))
	result := s.Solve([]*ir.Method{main})

	callees := result.CallGraph().CalleesOf(main)
	if len(callees) != 1 {
		t.Fatalf("points-to-guided dispatch should resolve the single allocated Dog to exactly one callee, got %d: %v", len(callees), callees)
	}
	if callees[0] != dogSpeak {
		t.Fatalf("expected the call to resolve to Dog.speak, got %v", callees[0])
	}
}
