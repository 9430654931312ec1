package ir

import "testing"

func TestVarStringOnNilIsPlaceholder(t *testing.T) {
	var v *Var
	if v.String() != "<nil>" {
		t.Fatalf("nil *Var.String() = %q, want %q", v.String(), "<nil>")
	}
}

func TestAddSiteMethodsAppend(t *testing.T) {
	v := &Var{Name: "x"}
	lf := &LoadField{}
	sf := &StoreField{}
	la := &LoadArray{}
	sa := &StoreArray{}
	inv := &Invoke{}

	v.AddLoadFieldSite(lf)
	v.AddStoreFieldSite(sf)
	v.AddLoadArraySite(la)
	v.AddStoreArraySite(sa)
	v.AddInvokeSite(inv)

	if len(v.LoadFields) != 1 || v.LoadFields[0] != lf {
		t.Errorf("LoadFields = %v, want [lf]", v.LoadFields)
	}
	if len(v.StoreFields) != 1 || v.StoreFields[0] != sf {
		t.Errorf("StoreFields = %v, want [sf]", v.StoreFields)
	}
	if len(v.LoadArrays) != 1 || v.LoadArrays[0] != la {
		t.Errorf("LoadArrays = %v, want [la]", v.LoadArrays)
	}
	if len(v.StoreArrays) != 1 || v.StoreArrays[0] != sa {
		t.Errorf("StoreArrays = %v, want [sa]", v.StoreArrays)
	}
	if len(v.Invokes) != 1 || v.Invokes[0] != inv {
		t.Errorf("Invokes = %v, want [inv]", v.Invokes)
	}
}
