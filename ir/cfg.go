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

package ir

// EdgeKind classifies a CFG edge: the edges the dead-code pass needs to
// discriminate (IF_TRUE/IF_FALSE, SWITCH_CASE/default) plus the ordinary
// fall-through edge.
type EdgeKind int

const (
	EdgeNormal EdgeKind = iota
	EdgeIfTrue
	EdgeIfFalse
	EdgeSwitchCase
	EdgeDefault
)

// CFGEdge is a directed edge between two statements of the same method.
type CFGEdge struct {
	From, To  Stmt
	Kind      EdgeKind
	CaseValue int32 // meaningful only when Kind == EdgeSwitchCase
}

// CFG is a method's intra-procedural control-flow graph: an entry and exit
// sentinel plus the statements between them and the edges among them.
type CFG struct {
	Method *Method
	Entry  Stmt
	Exit   Stmt
	stmts  []Stmt
	succs  map[Stmt][]CFGEdge
	preds  map[Stmt][]CFGEdge
}

// NewCFG builds an empty CFG owned by m, with sentinel Entry/Exit nodes.
func NewCFG(m *Method) *CFG {
	entry := &Nop{base{index: -1}}
	exit := &Nop{base{index: -2}}
	return &CFG{
		Method: m,
		Entry:  entry,
		Exit:   exit,
		stmts:  []Stmt{entry, exit},
		succs:  map[Stmt][]CFGEdge{},
		preds:  map[Stmt][]CFGEdge{},
	}
}

// AddStmt registers s as a node of the CFG (in addition to Entry/Exit).
func (g *CFG) AddStmt(s Stmt) { g.stmts = append(g.stmts, s) }

// AddEdge adds a directed edge from -> to of the given kind.
func (g *CFG) AddEdge(from, to Stmt, kind EdgeKind, caseValue int32) {
	e := CFGEdge{From: from, To: to, Kind: kind, CaseValue: caseValue}
	g.succs[from] = append(g.succs[from], e)
	g.preds[to] = append(g.preds[to], e)
}

// Stmts returns every node in the CFG, Entry and Exit included, in
// insertion order (which callers keep as index order).
func (g *CFG) Stmts() []Stmt { return g.stmts }

// SuccsOf / PredsOf return the outgoing/incoming edges of s.
func (g *CFG) SuccsOf(s Stmt) []CFGEdge { return g.succs[s] }
func (g *CFG) PredsOf(s Stmt) []CFGEdge { return g.preds[s] }

// SuccStmtsOf / PredStmtsOf project SuccsOf/PredsOf down to the target
// statements, for callers that don't care about edge kind.
func (g *CFG) SuccStmtsOf(s Stmt) []Stmt {
	edges := g.succs[s]
	out := make([]Stmt, len(edges))
	for i, e := range edges {
		out[i] = e.To
	}
	return out
}

func (g *CFG) PredStmtsOf(s Stmt) []Stmt {
	edges := g.preds[s]
	out := make([]Stmt, len(edges))
	for i, e := range edges {
		out[i] = e.From
	}
	return out
}
