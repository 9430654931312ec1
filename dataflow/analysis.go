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

// Package dataflow implements a generic monotone dataflow framework — a
// worklist fixpoint solver parameterized over a lattice value Fact and a
// per-statement transfer function — plus two concrete analyses built on
// it: live-variable analysis and (intra-procedural) constant propagation.
//
// This mirrors Tai-e's pascal.taie.analysis.dataflow.analysis.Analysis /
// pascal.taie.analysis.dataflow.solver.Solver split: one interface
// describing what an analysis contributes (direction, boundary/initial
// facts, meet, transfer) and one solver that drives it to a fixpoint.
package dataflow

import "git.amazon.com/pkg/tai-analyzer/ir"

// Analysis is a monotone dataflow problem over facts of type Fact.
type Analysis[Fact any] interface {
	// IsForward reports the analysis' direction.
	IsForward() bool
	// NewBoundaryFact returns the fact installed at the CFG's entry (for a
	// forward analysis) or exit (for a backward analysis).
	NewBoundaryFact(cfg *ir.CFG) Fact
	// NewInitialFact returns the fact every non-boundary node starts with.
	NewInitialFact() Fact
	// Meet merges fact into target in place.
	Meet(fact Fact, target Fact)
	// Transfer applies stmt's transfer function to in, updating out in
	// place; it returns true iff out changed.
	Transfer(stmt ir.Stmt, in Fact, out Fact) bool
}

// Result holds the fixpoint IN/OUT facts for every statement in a CFG.
type Result[Fact any] struct {
	in  map[ir.Stmt]Fact
	out map[ir.Stmt]Fact
}

// InFact / OutFact return the fact before/after stmt executes.
func (r *Result[Fact]) InFact(stmt ir.Stmt) Fact  { return r.in[stmt] }
func (r *Result[Fact]) OutFact(stmt ir.Stmt) Fact { return r.out[stmt] }
