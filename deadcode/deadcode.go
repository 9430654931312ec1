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

// Package deadcode implements dead-code detection: unreachable
// code (CFG nodes no control-flow path from the entry can reach, plus
// branches whose condition constant-propagation has proven one-sided) and
// dead assignments (AssignStmt nodes whose defined Var is never live
// afterward). Grounded on Tai-e's
// pascal.taie.analysis.dataflow.analysis.DeadCodeDetection.
package deadcode

import (
	"git.amazon.com/pkg/tai-analyzer/dataflow"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/lattice"
)

// Kind classifies why a statement was flagged dead, for grouping in
// reports/rendering (SUPPLEMENTED FEATURES: callers can filter findings by
// kind instead of re-deriving it from the statement shape).
type Kind int

const (
	// UnreachableCode is a statement no path from the entry reaches at all.
	UnreachableCode Kind = iota
	// UnreachableBranch is reachable but whose only live successor is one
	// side of a now-constant-folded if/switch.
	UnreachableBranch
	// DeadAssignment is a live, reachable AssignStmt whose defined Var is
	// never read afterward.
	DeadAssignment
)

func (k Kind) String() string {
	switch k {
	case UnreachableCode:
		return "unreachable-code"
	case UnreachableBranch:
		return "unreachable-branch"
	case DeadAssignment:
		return "dead-assignment"
	default:
		return "?"
	}
}

// Finding is one dead-code result.
type Finding struct {
	Stmt ir.Stmt
	Kind Kind
}

// Detect runs both passes over m's CFG and returns every finding, ordered
// by statement index for reproducibility.
func Detect(m *ir.Method) []Finding {
	if m.IR == nil {
		return nil
	}
	cfg := m.IR.CFG
	cp := dataflow.Solve[*lattice.CPFact](dataflow.ConstantPropagation{}, cfg)
	live := dataflow.Solve[*lattice.SetFact](dataflow.LiveVariableAnalysis{}, cfg)

	reachable := reachableStmts(cfg, cp)

	var findings []Finding
	for _, s := range cfg.Stmts() {
		if s == cfg.Entry || s == cfg.Exit {
			continue
		}
		if !reachable[s] {
			findings = append(findings, Finding{Stmt: s, Kind: UnreachableCode})
			continue
		}
		if assign, ok := s.(ir.AssignStmt); ok {
			if def, ok := assign.Def(); ok && hasNoSideEffect(assign) {
				if !live.OutFact(s).Contains(def) {
					findings = append(findings, Finding{Stmt: s, Kind: DeadAssignment})
				}
			}
		}
	}
	sortFindings(findings)
	return findings
}

// hasNoSideEffect reports whether removing assign, given its RHS never
// runs, would be observationally safe. CastExp, NewExp, field/array
// accesses, and integer division/remainder can all throw at runtime, so
// none of them are ever reported dead despite being AssignStmts.
func hasNoSideEffect(assign ir.AssignStmt) bool {
	switch rv := assign.RValue().(type) {
	case ir.CastExp, ir.NewExp, ir.InstanceFieldAccess, ir.StaticFieldAccess, ir.ArrayAccess:
		return false
	case ir.BinaryExp:
		return !rv.Op.IsDivOrRem()
	default:
		return true
	}
}

// reachableStmts walks the CFG from Entry, skipping the branch of an
// If/Switch that constant propagation has proven can never be taken: if
// the condition evaluates to a known constant, only the matching edge is
// followed.
func reachableStmts(cfg *ir.CFG, cp *dataflow.Result[*lattice.CPFact]) map[ir.Stmt]bool {
	visited := map[ir.Stmt]bool{cfg.Entry: true}
	queue := []ir.Stmt{cfg.Entry}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, e := range liveSuccs(s, cfg, cp) {
			if !visited[e] {
				visited[e] = true
				queue = append(queue, e)
			}
		}
	}
	return visited
}

func liveSuccs(s ir.Stmt, cfg *ir.CFG, cp *dataflow.Result[*lattice.CPFact]) []ir.Stmt {
	switch st := s.(type) {
	case *ir.If:
		val := lattice.Evaluate(st.Cond, cp.InFact(s))
		if val.IsConst() {
			want := ir.EdgeIfFalse
			if val.ConstValue() != 0 {
				want = ir.EdgeIfTrue
			}
			return edgesOfKind(cfg, s, want)
		}
	case *ir.Switch:
		val := cp.InFact(s).Get(st.Var)
		if val.IsConst() {
			for _, e := range cfg.SuccsOf(s) {
				if e.Kind == ir.EdgeSwitchCase && e.CaseValue == val.ConstValue() {
					return []ir.Stmt{e.To}
				}
			}
			return edgesOfKind(cfg, s, ir.EdgeDefault)
		}
	}
	return cfg.SuccStmtsOf(s)
}

func edgesOfKind(cfg *ir.CFG, s ir.Stmt, kind ir.EdgeKind) []ir.Stmt {
	var out []ir.Stmt
	for _, e := range cfg.SuccsOf(s) {
		if e.Kind == kind {
			out = append(out, e.To)
		}
	}
	return out
}

func sortFindings(fs []Finding) {
	for i := 1; i < len(fs); i++ {
		for j := i; j > 0 && fs[j-1].Stmt.Index() > fs[j].Stmt.Index(); j-- {
			fs[j-1], fs[j] = fs[j], fs[j-1]
		}
	}
}
