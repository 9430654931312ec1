package render

import (
	"strings"
	"testing"

	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/icfg"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/ir/build"
	"git.amazon.com/pkg/tai-analyzer/taint"
)

func twoMethods() (*ir.Method, *ir.Method, *ir.Invoke) {
	bld := build.New()
	c := bld.Class("C", ir.KindClass, nil)

	calleeMb := bld.Method(c, "callee", true, false, ir.Type(nil))
	callee := calleeMb.Finish()

	callerMb := bld.Method(c, "caller", true, false, ir.Type(nil))
	calleeRef := ir.MethodRef{DeclaringClass: c, Subsignature: callee.Subsignature}
	site := callerMb.Invoke(ir.Static, nil, calleeRef, nil)
	caller := callerMb.Finish()

	return caller, callee, site
}

func TestWriteCallGraphDotEmitsEdge(t *testing.T) {
	caller, callee, site := twoMethods()
	cg := callgraph.New()
	cg.AddEdge(callgraph.Edge{Caller: caller, Site: site, Callee: callee})

	var buf strings.Builder
	if err := WriteCallGraphDot(cg, &buf); err != nil {
		t.Fatalf("WriteCallGraphDot: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "digraph callgraph {\n") || !strings.HasSuffix(out, "}\n") {
		t.Fatalf("expected a well-formed digraph envelope, got %q", out)
	}
	if !strings.Contains(out, caller.Ref().String()) || !strings.Contains(out, callee.Ref().String()) {
		t.Fatalf("expected both endpoints in the rendered edge, got %q", out)
	}
}

func TestWriteCallGraphDotExcludesNoiseMethods(t *testing.T) {
	bld := build.New()
	c := bld.Class("C", ir.KindClass, nil)
	initMb := bld.Method(c, "<init>", true, false, ir.Type(nil))
	initM := initMb.Finish()
	callerMb := bld.Method(c, "caller", true, false, ir.Type(nil))
	initRef := ir.MethodRef{DeclaringClass: c, Subsignature: initM.Subsignature}
	site := callerMb.Invoke(ir.Static, nil, initRef, nil)
	caller := callerMb.Finish()

	cg := callgraph.New()
	cg.AddEdge(callgraph.Edge{Caller: caller, Site: site, Callee: initM})

	var buf strings.Builder
	if err := WriteCallGraphDot(cg, &buf); err != nil {
		t.Fatalf("WriteCallGraphDot: %v", err)
	}
	if strings.Contains(buf.String(), "<init>") {
		t.Fatalf("edges touching an excluded method should be omitted, got %q", buf.String())
	}
}

func TestWriteICFGDotColorsByEdgeKind(t *testing.T) {
	caller, callee, site := twoMethods()
	cg := callgraph.New()
	cg.AddReachable(caller)
	cg.AddReachable(callee)
	cg.AddEdge(callgraph.Edge{Caller: caller, Site: site, Callee: callee})

	g := icfg.Build(cg)
	var buf strings.Builder
	if err := WriteICFGDot(g, &buf); err != nil {
		t.Fatalf("WriteICFGDot: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "color=blue") {
		t.Errorf("expected a blue Call edge in the rendered ICFG, got %q", out)
	}
	if !strings.Contains(out, "color=red") {
		t.Errorf("expected a red Return edge in the rendered ICFG, got %q", out)
	}
}

func TestWriteTaintFlowsDotSortsBySourceThenSink(t *testing.T) {
	bld := build.New()
	c := bld.Class("C", ir.KindClass, nil)
	srcRef := ir.MethodRef{DeclaringClass: c, Subsignature: ir.Subsignature{Name: "src", ParamTypes: "()"}}
	sinkARef := ir.MethodRef{DeclaringClass: c, Subsignature: ir.Subsignature{Name: "sinkA", ParamTypes: "()"}}
	sinkBRef := ir.MethodRef{DeclaringClass: c, Subsignature: ir.Subsignature{Name: "sinkB", ParamTypes: "()"}}

	mb := bld.Method(c, "caller", true, false, ir.Type(nil))
	src1 := mb.Invoke(ir.Static, nil, srcRef, nil)
	sinkLower := mb.Invoke(ir.Static, nil, sinkARef, nil)
	sinkHigher := mb.Invoke(ir.Static, nil, sinkBRef, nil)
	mb.Finish()

	// Given out of order, the writer must sort by (source, sink) index
	// before rendering.
	flows := []taint.Flow{
		{Source: src1, Sink: sinkHigher, SinkSlot: taint.Arg(0)},
		{Source: src1, Sink: sinkLower, SinkSlot: taint.Arg(0)},
	}

	var buf strings.Builder
	if err := WriteTaintFlowsDot(flows, &buf); err != nil {
		t.Fatalf("WriteTaintFlowsDot: %v", err)
	}
	out := buf.String()
	lowerIdx := strings.Index(out, sinkLower.Exp.Ref.String())
	higherIdx := strings.Index(out, sinkHigher.Exp.Ref.String())
	if lowerIdx == -1 || higherIdx == -1 || lowerIdx > higherIdx {
		t.Fatalf("expected flows sorted by ascending sink index, got %q", out)
	}
}
