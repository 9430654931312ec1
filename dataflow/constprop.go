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

package dataflow

import (
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/lattice"
)

// ConstantPropagation is intra-procedural constant propagation: forward,
// UNDEF/CONST(c)/NAC lattice meet, transfer kills a statement's defined
// variable and re-binds it to Evaluate(rhs, in) for any AssignStmt,
// grounded on Tai-e's
// pascal.taie.analysis.dataflow.analysis.constprop.ConstantPropagation.
// Only int-typed variables participate; the solver's meet/initial facts
// are ordinary CPFacts, so the restriction is enforced once, in Transfer,
// by simply not binding non-int defs.
type ConstantPropagation struct{}

func (ConstantPropagation) IsForward() bool { return true }

// NewBoundaryFact binds every int-typed parameter (and the receiver, which
// is never int, so it is skipped) to NAC: entry to a method is reached
// with unknown argument values.
func (ConstantPropagation) NewBoundaryFact(cfg *ir.CFG) *lattice.CPFact {
	fact := lattice.NewCPFact()
	for _, p := range cfg.Method.Params {
		if ir.CanHoldInt(p) {
			fact.Update(p, lattice.NACValue())
		}
	}
	return fact
}

func (ConstantPropagation) NewInitialFact() *lattice.CPFact { return lattice.NewCPFact() }

func (ConstantPropagation) Meet(fact, target *lattice.CPFact) { lattice.MeetInto(fact, target) }

func (ConstantPropagation) Transfer(stmt ir.Stmt, in, out *lattice.CPFact) bool {
	next := in.Copy()
	if assign, ok := stmt.(ir.AssignStmt); ok {
		if def, ok := assign.Def(); ok && ir.CanHoldInt(def) {
			next.Update(def, lattice.Evaluate(assign.RValue(), in))
		} else if ok {
			next.Remove(def)
		}
	} else if def, ok := stmt.Def(); ok && ir.CanHoldInt(def) {
		// stmt defines def but isn't an AssignStmt (e.g. an Invoke result):
		// its value is unknown, not absent, so it goes to NAC rather than
		// UNDEF. Removing it would let a later meet with a branch that
		// still has it CONST collapse back to CONST instead of NAC.
		next.Update(def, lattice.NACValue())
	}
	if next.Equal(out) {
		return false
	}
	out.Set(next)
	return true
}
