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

package cs

import (
	"git.amazon.com/pkg/tai-analyzer/ctx"
	"git.amazon.com/pkg/tai-analyzer/heap"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/pfg"
	"git.amazon.com/pkg/tai-analyzer/taint"
)

// taintEdge retypes a taint mark as it crosses a configured Transfer: any
// TaintObj arriving at the edge's source pointer is re-minted for the
// same source call under toType and forwarded to `to`.
type taintEdge struct {
	to     Pointer
	toType ir.Type
}

// taintSite is one (context, call site) pair visited while solving,
// recorded so sinks — which need the full points-to set, only available
// once the analysis reaches a fixpoint — can be checked at Solve's end.
type taintSite struct {
	c    ctx.Context
	site *ir.Invoke
}

// WithTaint enables taint-propagation hooks on the CS-PTA solver: on a
// reachable call matching a configured Source, a mark is
// injected into the points-to set of the call's target slot; on every
// call matching a configured Transfer, marks already at the From slot are
// retyped and forwarded to the To slot; once solving reaches a fixpoint,
// every call matching a configured Sink is checked for a mark at its
// guarded slot. mgr mints the marks these hooks inject.
func (s *Solver) WithTaint(cfg *taint.Config, mgr *heap.TaintManager) *Solver {
	s.taintCfg = cfg
	s.taintMgr = mgr
	s.taintTransfers = map[Pointer][]taintEdge{}
	s.taintFlows = map[taint.Flow]bool{}
	return s
}

// applyTaintHooks runs once per (context, call site) — at the point
// addReachable first walks the statement — regardless of dispatch kind:
// Source/Transfer/Sink rules match a call's static signature, so they
// apply whether or not CHA/CS-PTA ever resolves a concrete callee for it.
func (s *Solver) applyTaintHooks(c ctx.Context, site *ir.Invoke) {
	if s.taintCfg == nil {
		return
	}
	for _, src := range s.taintCfg.SourcesFor(site.Exp.Ref) {
		target := taint.SlotVar(site, src.Slot)
		if target == nil {
			continue
		}
		heapCtx := s.selector.SelectHeap(c, s.elemFor(site))
		cso := s.objMgr.Intern(heapCtx, s.taintMgr.Obj(site, target.Type))
		s.enqueue(s.mgr.VarPtr(c, target), pfg.Singleton(cso))
	}
	for _, tr := range s.taintCfg.TransfersFor(site.Exp.Ref) {
		from := taint.SlotVar(site, tr.From)
		to := taint.SlotVar(site, tr.To)
		if from == nil || to == nil {
			continue
		}
		s.addTaintTransferEdge(s.mgr.VarPtr(c, from), s.mgr.VarPtr(c, to), tr.Type)
	}
	if len(s.taintCfg.SinksFor(site.Exp.Ref)) > 0 {
		s.taintSinkSites = append(s.taintSinkSites, taintSite{c: c, site: site})
	}
}

func (s *Solver) addTaintTransferEdge(from, to Pointer, toType ir.Type) {
	s.taintTransfers[from] = append(s.taintTransfers[from], taintEdge{to: to, toType: toType})
	if !from.pts().IsEmpty() {
		s.propagateTaintTransfer(from, from.pts())
	}
}

// propagateTaintTransfer re-mints every TaintObj in delta under each of
// from's registered transfer edges. Non-taint objects reaching a
// Transfer's From slot are never forwarded: a transfer only carries taint
// markers across a call, not general aliasing.
func (s *Solver) propagateTaintTransfer(from Pointer, delta *pfg.PointsToSet[*CSObj]) {
	edges := s.taintTransfers[from]
	if len(edges) == 0 {
		return
	}
	for _, obj := range delta.Objects() {
		mark, ok := obj.Obj.(*heap.TaintObj)
		if !ok {
			continue
		}
		for _, e := range edges {
			retyped := s.taintMgr.Obj(mark.Source, e.toType)
			cso := s.objMgr.Intern(obj.Context, retyped)
			s.enqueue(e.to, pfg.Singleton(cso))
		}
	}
}

// checkTaintSinks walks every recorded (context, call site) that matched
// a Sink rule and records a Flow for each mark reaching the sink's
// guarded slot. Called once, after the worklist has reached a fixpoint.
func (s *Solver) checkTaintSinks() {
	for _, ts := range s.taintSinkSites {
		for _, sink := range s.taintCfg.SinksFor(ts.site.Exp.Ref) {
			slotVar := taint.SlotVar(ts.site, sink.Slot)
			if slotVar == nil {
				continue
			}
			for _, obj := range s.mgr.VarPtr(ts.c, slotVar).pts().Objects() {
				mark, ok := obj.Obj.(*heap.TaintObj)
				if !ok {
					continue
				}
				s.taintFlows[taint.Flow{Source: mark.Source, Sink: ts.site, SinkSlot: sink.Slot}] = true
			}
		}
	}
}
