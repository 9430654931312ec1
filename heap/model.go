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

package heap

import "git.amazon.com/pkg/tai-analyzer/ir"

// Model is the heap model external collaborator: `obj(site) -> Obj`.
// AllocationSiteModel is the default, one-object-per-allocation-site
// implementation most whole-program static analyzers use.
type Model interface {
	Obj(site *ir.New) Obj
}

// AllocationSiteModel interns one AllocObj per distinct *ir.New statement.
type AllocationSiteModel struct {
	mgr   *Manager
	byNew map[*ir.New]*AllocObj
}

// NewAllocationSiteModel returns a model backed by mgr for index
// allocation, so its Objs share an index space with any taint Objs minted
// through the same Manager.
func NewAllocationSiteModel(mgr *Manager) *AllocationSiteModel {
	return &AllocationSiteModel{mgr: mgr, byNew: map[*ir.New]*AllocObj{}}
}

// Obj returns the (interned) Obj for allocation site s.
func (m *AllocationSiteModel) Obj(s *ir.New) Obj {
	if o, ok := m.byNew[s]; ok {
		return o
	}
	o := &AllocObj{idx: m.mgr.NextIndex(), Site: s}
	m.byNew[s] = o
	return o
}
