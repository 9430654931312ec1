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

package icfg

import (
	"testing"

	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/classhierarchy"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/ir/build"
)

func intType() ir.Type { return ir.PrimitiveType{Kind: ir.Int} }

// staticCallProgram builds: callee() { return 42 } ; caller() { x =
// callee(); return x }, a static call with no virtual dispatch.
func staticCallProgram() (*ir.Method, *ir.Method, *ir.Invoke) {
	bld := build.New()
	c := bld.Class("C", ir.KindClass, nil)

	calleeMb := bld.Method(c, "callee", true, false, intType())
	r := calleeMb.NewVar("r", intType())
	calleeMb.AssignConst(r, 42)
	calleeMb.Return(r)
	callee := calleeMb.Finish()

	callerMb := bld.Method(c, "caller", true, false, intType())
	x := callerMb.NewVar("x", intType())
	calleeRef := ir.MethodRef{DeclaringClass: c, Subsignature: callee.Subsignature}
	call := callerMb.Invoke(ir.Static, x, calleeRef, nil)
	callerMb.Return(x)
	caller := callerMb.Finish()

	return caller, callee, call
}

func TestBuildLinksCallReturnAndCallToReturnEdges(t *testing.T) {
	caller, callee, call := staticCallProgram()
	h := classhierarchy.New([]*ir.Class{caller.Declaring})
	cg := callgraph.BuildCHA(h, []*ir.Method{caller})

	g := Build(cg)

	if got := g.CalleesOf(call); len(got) != 1 || got[0] != callee {
		t.Fatalf("CalleesOf(call) = %v, want [%v]", got, callee)
	}

	succs := g.SuccsOf(call)
	var sawCall, sawCallToReturn bool
	for _, e := range succs {
		switch e.Kind {
		case Call:
			if e.To != callee.IR.CFG.Entry {
				t.Errorf("Call edge should target the callee's CFG entry, got %v", e.To)
			}
			sawCall = true
		case CallToReturn:
			sawCallToReturn = true
		}
	}
	if !sawCall {
		t.Error("missing Call edge from the call site")
	}
	if !sawCallToReturn {
		t.Error("missing CallToReturn edge from the call site")
	}

	exitPreds := g.PredsOf(callee.IR.CFG.Exit)
	_ = exitPreds // callee's own intra-procedural preds, not relevant here

	returnEdges := g.SuccsOf(callee.IR.CFG.Exit)
	if len(returnEdges) != 1 || returnEdges[0].Kind != Return {
		t.Fatalf("callee's CFG exit should have exactly one Return edge out, got %v", returnEdges)
	}

	if g.MethodOf(call) != caller {
		t.Errorf("MethodOf(call) = %v, want caller", g.MethodOf(call))
	}
	if !g.IsCallStmt(call) {
		t.Error("IsCallStmt(call) should be true")
	}
}
