package taint

import (
	"sort"

	"git.amazon.com/pkg/tai-analyzer/ir"
)

// Flow is one confirmed source-to-sink taint path. Flows are always
// returned sorted by source site, then sink site, so output is
// reproducible across runs.
type Flow struct {
	Source   *ir.Invoke
	Sink     *ir.Invoke
	SinkSlot Slot
}

// SortFlows orders fs by (source site, sink site, sink slot) in place,
// matching the deterministic-output contract every reporting path in
// this package relies on: two flows can share the same source and sink
// call sites but still differ by which argument of the sink carried the
// taint, so SinkSlot breaks the tie.
func SortFlows(fs []Flow) {
	sort.Slice(fs, func(i, j int) bool {
		if fs[i].Source.Index() != fs[j].Source.Index() {
			return fs[i].Source.Index() < fs[j].Source.Index()
		}
		if fs[i].Sink.Index() != fs[j].Sink.Index() {
			return fs[i].Sink.Index() < fs[j].Sink.Index()
		}
		return fs[i].SinkSlot < fs[j].SinkSlot
	})
}

// SlotVar returns the Var occupying slot at call site, or nil if the slot
// doesn't apply (e.g. This on a static call, or an out-of-range arg
// index) — shared by every caller that needs to resolve a Source/Sink/
// Transfer rule's Slot against a concrete *ir.Invoke.
func SlotVar(site *ir.Invoke, slot Slot) *ir.Var {
	switch slot {
	case Result:
		return site.LValue
	case This:
		return site.Exp.Receiver
	default:
		idx := int(slot)
		if idx >= 0 && idx < len(site.Exp.Args) {
			return site.Exp.Args[idx]
		}
	}
	return nil
}
