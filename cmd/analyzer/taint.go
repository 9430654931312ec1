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

package main

import (
	"fmt"

	"github.com/pkg/errors"

	"git.amazon.com/pkg/tai-analyzer/ctx"
	"git.amazon.com/pkg/tai-analyzer/heap"
	"git.amazon.com/pkg/tai-analyzer/pta/cs"
	"git.amazon.com/pkg/tai-analyzer/taint"
)

func runTaint(args []string) error {
	cf, _, err := parseCommon("taint", args)
	if err != nil {
		return err
	}

	// Taint marks are themselves heap objects the pointer analysis must
	// track context-sensitively, so this command always runs on cs.Solver
	// regardless of cf.cfg.PTAVariant.
	sel := ctx.NewSelector(cf.cfg.ContextSensitivity)
	if sel == nil {
		return errors.Errorf("unknown context-sensitivity %q", cf.cfg.ContextSensitivity)
	}
	mgr := heap.NewManager()
	solver := cs.New(cf.hier, heap.NewAllocationSiteModel(mgr), sel).WithTaint(cf.taintCfg, heap.NewTaintManager(mgr))
	result := solver.Solve(cf.entries)

	flows := result.TaintFlows()
	for _, f := range flows {
		fmt.Printf("%s: %s -> %s (%s)\n", red("tainted flow"), f.Source, f.Sink, f.SinkSlot)
		if witness := taint.Witness(result.CallGraph(), f); len(witness) > 0 {
			fmt.Printf("  via: %s\n", witness)
		}
	}
	cf.log.Infof("taint: %d flows found", len(flows))
	return nil
}
