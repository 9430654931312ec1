package classhierarchy

import (
	"testing"

	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/ir/build"
)

// animalHierarchy builds: Animal (abstract speak) <- Dog, Cat; both override
// speak. Returns the classes in declaration order and the Animal.speak ref.
func animalHierarchy(t *testing.T) ([]*ir.Class, ir.MethodRef) {
	t.Helper()
	bld := build.New()
	voidT := ir.Type(nil)
	animal := bld.Class("Animal", ir.KindClass, nil)
	animal.Abstract = true
	speakAbstract := bld.Method(animal, "speak", false, true, voidT)

	dog := bld.Class("Dog", ir.KindClass, animal)
	dogSpeak := bld.Method(dog, "speak", false, false, voidT)
	dogSpeak.Finish()

	cat := bld.Class("Cat", ir.KindClass, animal)
	catSpeak := bld.Method(cat, "speak", false, false, voidT)
	catSpeak.Finish()

	return []*ir.Class{animal, dog, cat}, speakAbstract.Method().Ref()
}

func TestDirectSubclassesOf(t *testing.T) {
	classes, _ := animalHierarchy(t)
	h := New(classes)
	animal := h.Lookup("Animal")
	subs := h.DirectSubclassesOf(animal)
	if len(subs) != 2 {
		t.Fatalf("expected 2 direct subclasses of Animal, got %d", len(subs))
	}
	if subs[0].Name != "Cat" || subs[1].Name != "Dog" {
		t.Fatalf("expected subclasses sorted by name [Cat, Dog], got %v", subs)
	}
}

func TestDispatchSkipsAbstract(t *testing.T) {
	classes, sig := animalHierarchy(t)
	h := New(classes)
	animal := h.Lookup("Animal")
	dog := h.Lookup("Dog")

	if m := Dispatch(animal, sig.Subsignature); m != nil {
		t.Fatalf("dispatching on Animal itself should fail (abstract), got %v", m)
	}
	m := Dispatch(dog, sig.Subsignature)
	if m == nil || m.Declaring.Name != "Dog" {
		t.Fatalf("dispatching on Dog should resolve to Dog.speak, got %v", m)
	}
}

func TestResolveVirtualClosure(t *testing.T) {
	classes, _ := animalHierarchy(t)
	h := New(classes)
	animal := h.Lookup("Animal")
	ref := ir.MethodRef{DeclaringClass: animal, Subsignature: ir.Subsignature{Name: "speak", ParamTypes: "()"}}

	targets := h.Resolve(ref, ir.Virtual)
	if len(targets) != 2 {
		t.Fatalf("virtual dispatch on Animal.speak should resolve to both overrides, got %d: %v", len(targets), targets)
	}
}
