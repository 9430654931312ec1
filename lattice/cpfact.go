package lattice

import (
	"sort"

	"git.amazon.com/pkg/tai-analyzer/ir"
)

// CPFact is a partial mapping from Var to Value; a missing key means
// UNDEF. Equality is semantic: two CPFacts are equal iff they agree on
// every non-UNDEF binding.
type CPFact struct {
	m map[*ir.Var]Value
}

// NewCPFact returns an empty fact (every var maps to UNDEF).
func NewCPFact() *CPFact { return &CPFact{m: map[*ir.Var]Value{}} }

// Get returns the value bound to v, or UNDEF if v has no binding.
func (f *CPFact) Get(v *ir.Var) Value {
	if f == nil {
		return UndefValue()
	}
	if val, ok := f.m[v]; ok {
		return val
	}
	return UndefValue()
}

// Update sets v's binding. Storing UNDEF removes the key so the map stays
// minimal (equality and iteration both rely on this).
func (f *CPFact) Update(v *ir.Var, val Value) {
	if val.IsUndef() {
		delete(f.m, v)
		return
	}
	f.m[v] = val
}

// Remove deletes v's binding, if any.
func (f *CPFact) Remove(v *ir.Var) { delete(f.m, v) }

// KeySet returns every Var with a non-UNDEF binding, sorted by Var.Index
// for deterministic iteration.
func (f *CPFact) KeySet() []*ir.Var {
	keys := make([]*ir.Var, 0, len(f.m))
	for k := range f.m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Index < keys[j].Index })
	return keys
}

// Copy returns an independent copy of f.
func (f *CPFact) Copy() *CPFact {
	c := NewCPFact()
	c.Set(f)
	return c
}

// Set overwrites f's contents with a copy of o's.
func (f *CPFact) Set(o *CPFact) {
	f.m = make(map[*ir.Var]Value, len(o.m))
	for k, v := range o.m {
		f.m[k] = v
	}
}

// Equal reports whether f and o carry exactly the same non-UNDEF bindings.
func (f *CPFact) Equal(o *CPFact) bool {
	if len(f.m) != len(o.m) {
		return false
	}
	for k, v := range f.m {
		ov, ok := o.m[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// MeetInto merges src into tgt in place: for each key k in src,
// tgt[k] := meet(src[k], tgt.get(k)).
func MeetInto(src, tgt *CPFact) {
	for k, v := range src.m {
		cur, ok := tgt.m[k]
		if !ok {
			tgt.Update(k, v)
			continue
		}
		tgt.Update(k, Meet(v, cur))
	}
}
