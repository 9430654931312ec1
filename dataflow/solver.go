package dataflow

import "git.amazon.com/pkg/tai-analyzer/ir"

// Solve runs analysis to a fixpoint over cfg using an iterative worklist
// algorithm, grounded on Tai-e's WorkListSolver: initialize every non-
// boundary node to the analysis' initial fact, then repeatedly pop a node,
// recompute its incoming fact as the meet of its dataflow-predecessors'
// outgoing facts, re-run its transfer function, and re-enqueue its
// dataflow-successors if the node's outgoing fact changed.
func Solve[Fact any](analysis Analysis[Fact], cfg *ir.CFG) *Result[Fact] {
	r := &Result[Fact]{in: map[ir.Stmt]Fact{}, out: map[ir.Stmt]Fact{}}

	forward := analysis.IsForward()
	boundaryNode := cfg.Entry
	if !forward {
		boundaryNode = cfg.Exit
	}
	boundary := analysis.NewBoundaryFact(cfg)

	for _, s := range cfg.Stmts() {
		if s == boundaryNode {
			continue
		}
		r.in[s] = analysis.NewInitialFact()
		r.out[s] = analysis.NewInitialFact()
	}
	r.in[boundaryNode] = boundary
	r.out[boundaryNode] = boundary

	var worklist []ir.Stmt
	queued := map[ir.Stmt]bool{}
	for _, s := range cfg.Stmts() {
		if s == boundaryNode {
			continue
		}
		worklist = append(worklist, s)
		queued[s] = true
	}

	enqueue := func(s ir.Stmt) {
		if s == boundaryNode || queued[s] {
			return
		}
		worklist = append(worklist, s)
		queued[s] = true
	}

	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]
		queued[s] = false

		if forward {
			in := analysis.NewInitialFact()
			for _, p := range cfg.PredStmtsOf(s) {
				analysis.Meet(r.out[p], in)
			}
			r.in[s] = in
			changed := analysis.Transfer(s, in, r.out[s])
			if changed {
				for _, succ := range cfg.SuccStmtsOf(s) {
					enqueue(succ)
				}
			}
		} else {
			out := analysis.NewInitialFact()
			for _, succ := range cfg.SuccStmtsOf(s) {
				analysis.Meet(r.in[succ], out)
			}
			r.out[s] = out
			changed := analysis.Transfer(s, out, r.in[s])
			if changed {
				for _, p := range cfg.PredStmtsOf(s) {
					enqueue(p)
				}
			}
		}
	}
	return r
}
