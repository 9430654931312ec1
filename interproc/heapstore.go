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

package interproc

import (
	"git.amazon.com/pkg/tai-analyzer/heap"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/lattice"
)

// HeapFactStore is the flow-insensitive, points-to-indexed table
// inter-procedural constant propagation keeps its field/array/static
// values in, per Design Notes §9's guidance to give the heap side of the
// analysis its own explicit value type rather than smuggling it into the
// per-node CPFact the intra-procedural solver uses. It mirrors Tai-e's
// InterConstantPropagation, which merges every write to a given (object,
// field) pair with a meet instead of tracking it per-CFG-node: precise
// per-node heap tracking is not worth the cost for a lattice this coarse.
type HeapFactStore struct {
	instance map[heap.Obj]map[*ir.Field]lattice.Value
	static   map[*ir.Field]lattice.Value
	array    map[heap.Obj]map[int32]lattice.Value // keyed by concrete index
	arrayNAC map[heap.Obj]lattice.Value            // accesses at an unresolved index
}

// NewHeapFactStore returns an empty store (every slot UNDEF).
func NewHeapFactStore() *HeapFactStore {
	return &HeapFactStore{
		instance: map[heap.Obj]map[*ir.Field]lattice.Value{},
		static:   map[*ir.Field]lattice.Value{},
		array:    map[heap.Obj]map[int32]lattice.Value{},
		arrayNAC: map[heap.Obj]lattice.Value{},
	}
}

// MergeInstance meets val into (obj, f)'s current value, returning true
// iff the slot's value changed.
func (h *HeapFactStore) MergeInstance(obj heap.Obj, f *ir.Field, val lattice.Value) bool {
	byField := h.instance[obj]
	if byField == nil {
		byField = map[*ir.Field]lattice.Value{}
		h.instance[obj] = byField
	}
	cur := byField[f]
	next := lattice.Meet(cur, val)
	if next.Equal(cur) {
		return false
	}
	byField[f] = next
	return true
}

// GetInstance returns the merged value currently stored for (obj, f).
func (h *HeapFactStore) GetInstance(obj heap.Obj, f *ir.Field) lattice.Value {
	return h.instance[obj][f]
}

// MergeStatic meets val into f's current value, returning true iff changed.
func (h *HeapFactStore) MergeStatic(f *ir.Field, val lattice.Value) bool {
	cur := h.static[f]
	next := lattice.Meet(cur, val)
	if next.Equal(cur) {
		return false
	}
	h.static[f] = next
	return true
}

func (h *HeapFactStore) GetStatic(f *ir.Field) lattice.Value { return h.static[f] }

// MergeArray meets val into obj's array-element value at idx. A concrete
// idx only touches that index's own bucket; an idx that didn't resolve to
// a constant (idx.IsConst() false) is treated as "could be any element"
// and is meted into every existing concrete-index bucket as well as the
// NAC-index bucket, so a later read of any index sees it. Returns
// whether any bucket changed.
func (h *HeapFactStore) MergeArray(obj heap.Obj, idx, val lattice.Value) bool {
	changed := false
	if idx.IsConst() {
		byIndex := h.array[obj]
		if byIndex == nil {
			byIndex = map[int32]lattice.Value{}
			h.array[obj] = byIndex
		}
		i := idx.ConstValue()
		cur := byIndex[i]
		next := lattice.Meet(cur, val)
		if !next.Equal(cur) {
			byIndex[i] = next
			changed = true
		}
		return changed
	}

	cur := h.arrayNAC[obj]
	next := lattice.Meet(cur, val)
	if !next.Equal(cur) {
		h.arrayNAC[obj] = next
		changed = true
	}
	for i, cur := range h.array[obj] {
		next := lattice.Meet(cur, val)
		if !next.Equal(cur) {
			h.array[obj][i] = next
			changed = true
		}
	}
	return changed
}

// GetArray returns the value stored for obj at idx, meeting in the
// NAC-index bucket (an earlier store at an unresolved index could have
// touched any element). If idx itself isn't a known constant, every
// concrete-index bucket is folded in too, since the load could be
// reading any of them.
func (h *HeapFactStore) GetArray(obj heap.Obj, idx lattice.Value) lattice.Value {
	if idx.IsConst() {
		return lattice.Meet(h.array[obj][idx.ConstValue()], h.arrayNAC[obj])
	}
	result := h.arrayNAC[obj]
	for _, v := range h.array[obj] {
		result = lattice.Meet(result, v)
	}
	return result
}
