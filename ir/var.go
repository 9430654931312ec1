package ir

// Var is a local variable (or parameter, or "this") of a method. Its
// identity is pointer identity: two Vars are the same variable iff they are
// the same *Var.
//
// The site slices (LoadFields, StoreFields, ...) record, per Var, its
// load/store-field and array/invoke sites — they are populated once, by
// the builder, when the enclosing method's statements are constructed,
// and are read-only afterwards: the IR and class hierarchy never change
// once a program is built.
type Var struct {
	Name   string
	Type   Type
	Method *Method
	// Index is the variable's ordinal within its method, used for stable
	// sort order in results.
	Index int

	LoadFields  []*LoadField
	StoreFields []*StoreField
	LoadArrays  []*LoadArray
	StoreArrays []*StoreArray
	Invokes     []*Invoke
}

func (v *Var) String() string {
	if v == nil {
		return "<nil>"
	}
	return v.Name
}

// AddLoadFieldSite / AddStoreFieldSite / ... are called by IR builders
// (package ir/build, or any real frontend) while constructing a method;
// they keep the Var's site lists in sync with the statements that
// reference it as a base. Analysis code only ever reads these slices.
func (v *Var) AddLoadFieldSite(s *LoadField)   { v.LoadFields = append(v.LoadFields, s) }
func (v *Var) AddStoreFieldSite(s *StoreField) { v.StoreFields = append(v.StoreFields, s) }
func (v *Var) AddLoadArraySite(s *LoadArray)   { v.LoadArrays = append(v.LoadArrays, s) }
func (v *Var) AddStoreArraySite(s *StoreArray) { v.StoreArrays = append(v.StoreArrays, s) }
func (v *Var) AddInvokeSite(s *Invoke)         { v.Invokes = append(v.Invokes, s) }
