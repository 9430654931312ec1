package main

import (
	"fmt"

	"git.amazon.com/pkg/tai-analyzer/heap"
	"git.amazon.com/pkg/tai-analyzer/icfg"
	"git.amazon.com/pkg/tai-analyzer/interproc"
	"git.amazon.com/pkg/tai-analyzer/pta/ci"
)

func runInterproc(args []string) error {
	cf, _, err := parseCommon("interproc", args)
	if err != nil {
		return err
	}

	mgr := heap.NewManager()
	ptaResult := ci.New(cf.hier, heap.NewAllocationSiteModel(mgr)).Solve(cf.entries)
	g := icfg.Build(ptaResult.CallGraph())
	result := interproc.Solve(g, ptaResult, cf.entries)

	nac, cons := 0, 0
	for _, m := range ptaResult.CallGraph().ReachableMethods() {
		if m.IR == nil {
			continue
		}
		for _, s := range m.IR.Stmts {
			fact := result.OutFact(s)
			if fact == nil {
				continue
			}
			for _, v := range methodVars(m) {
				val := fact.Get(v)
				switch {
				case val.IsNAC():
					nac++
				case val.IsConst():
					cons++
					fmt.Printf("%s:%d %s = %v\n", m.Ref(), s.Index(), v.Name, val)
				}
			}
		}
	}
	cf.log.Infof("interproc: %d constant facts, %d NAC facts", cons, nac)
	return nil
}
