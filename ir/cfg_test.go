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

import "testing"

func TestNewCFGHasEntryAndExitSentinels(t *testing.T) {
	g := NewCFG(nil)
	if g.Entry == nil || g.Exit == nil {
		t.Fatal("NewCFG should install Entry/Exit sentinels")
	}
	if g.Entry == g.Exit {
		t.Fatal("Entry and Exit should be distinct nodes")
	}
	stmts := g.Stmts()
	if len(stmts) != 2 || stmts[0] != g.Entry || stmts[1] != g.Exit {
		t.Fatalf("Stmts() = %v, want [Entry, Exit]", stmts)
	}
}

func TestAddStmtAppendsInInsertionOrder(t *testing.T) {
	g := NewCFG(nil)
	a := &Nop{base{index: 0}}
	b := &Nop{base{index: 1}}
	g.AddStmt(a)
	g.AddStmt(b)

	stmts := g.Stmts()
	if len(stmts) != 4 || stmts[2] != a || stmts[3] != b {
		t.Fatalf("Stmts() = %v, want [Entry, Exit, a, b]", stmts)
	}
}

func TestAddEdgeRecordsBothDirections(t *testing.T) {
	g := NewCFG(nil)
	a := &Nop{base{index: 0}}
	b := &Nop{base{index: 1}}
	g.AddStmt(a)
	g.AddStmt(b)
	g.AddEdge(a, b, EdgeIfTrue, 0)

	succs := g.SuccsOf(a)
	if len(succs) != 1 || succs[0].To != b || succs[0].Kind != EdgeIfTrue {
		t.Fatalf("SuccsOf(a) = %v, want one EdgeIfTrue edge to b", succs)
	}
	preds := g.PredsOf(b)
	if len(preds) != 1 || preds[0].From != a || preds[0].Kind != EdgeIfTrue {
		t.Fatalf("PredsOf(b) = %v, want one EdgeIfTrue edge from a", preds)
	}
}

func TestAddEdgeCarriesCaseValue(t *testing.T) {
	g := NewCFG(nil)
	sw := &Nop{base{index: 0}}
	c := &Nop{base{index: 1}}
	g.AddStmt(sw)
	g.AddStmt(c)
	g.AddEdge(sw, c, EdgeSwitchCase, 7)

	succs := g.SuccsOf(sw)
	if len(succs) != 1 || succs[0].CaseValue != 7 {
		t.Fatalf("expected a switch-case edge carrying CaseValue=7, got %v", succs)
	}
}

func TestSuccStmtsOfAndPredStmtsOfProjectOutEdgeKind(t *testing.T) {
	g := NewCFG(nil)
	a := &Nop{base{index: 0}}
	b := &Nop{base{index: 1}}
	c := &Nop{base{index: 2}}
	g.AddStmt(a)
	g.AddStmt(b)
	g.AddStmt(c)
	g.AddEdge(a, b, EdgeIfTrue, 0)
	g.AddEdge(a, c, EdgeIfFalse, 0)

	succs := g.SuccStmtsOf(a)
	if len(succs) != 2 || succs[0] != b || succs[1] != c {
		t.Fatalf("SuccStmtsOf(a) = %v, want [b, c]", succs)
	}
	preds := g.PredStmtsOf(c)
	if len(preds) != 1 || preds[0] != a {
		t.Fatalf("PredStmtsOf(c) = %v, want [a]", preds)
	}
}

func TestSuccsOfUnknownStmtIsEmpty(t *testing.T) {
	g := NewCFG(nil)
	other := &Nop{base{index: 99}}
	if got := g.SuccsOf(other); len(got) != 0 {
		t.Fatalf("SuccsOf on a node never added should be empty, got %v", got)
	}
}
