package main

import (
	"fmt"

	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/internal/graphutil"
)

func runCHA(args []string) error {
	cf, _, err := parseCommon("cha", args)
	if err != nil {
		return err
	}
	cg := callgraph.BuildCHA(cf.hier, cf.entries)
	cf.log.Infof("built CHA call graph: %d reachable methods, %d edges", len(cg.ReachableMethods()), len(cg.Edges()))
	for _, e := range cg.Edges() {
		fmt.Println(e.String())
	}
	for _, cycle := range graphutil.CHACycles(cg) {
		cf.log.Infof("recursive dispatch cycle: %d methods, e.g. %s", len(cycle), cycle[0].Ref())
	}
	return nil
}
