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

// LiveVariableAnalysis computes, for every statement, the set of variables
// that may be read before being overwritten on some path forward from that
// statement, grounded on
// Tai-e's pascal.taie.analysis.dataflow.analysis.LiveVariableAnalysis:
// backward, set union as meet, out[s] - def(s) ∪ use(s) as transfer.
type LiveVariableAnalysis struct{}

func (LiveVariableAnalysis) IsForward() bool { return false }

func (LiveVariableAnalysis) NewBoundaryFact(*ir.CFG) *lattice.SetFact { return lattice.NewSetFact() }

func (LiveVariableAnalysis) NewInitialFact() *lattice.SetFact { return lattice.NewSetFact() }

func (LiveVariableAnalysis) Meet(fact, target *lattice.SetFact) { target.Union(fact) }

// Transfer computes in from out: in = use(s) ∪ (out - def(s)). The in
// parameter, per the generic solver's backward convention, carries what
// the result type calls OUT; out carries IN.
func (LiveVariableAnalysis) Transfer(stmt ir.Stmt, out, in *lattice.SetFact) bool {
	next := lattice.NewSetFact()
	next.Union(out)
	if def, ok := stmt.Def(); ok {
		next.Remove(def)
	}
	for _, v := range stmt.Uses() {
		next.Add(v)
	}
	if next.Equal(in) {
		return false
	}
	in.Set(next)
	return true
}
