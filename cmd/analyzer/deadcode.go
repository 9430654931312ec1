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

	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/deadcode"
)

func runDeadcode(args []string) error {
	cf, _, err := parseCommon("deadcode", args)
	if err != nil {
		return err
	}

	cg := callgraph.BuildCHA(cf.hier, cf.entries)
	total := 0
	for _, m := range cg.ReachableMethods() {
		for _, f := range deadcode.Detect(m) {
			total++
			fmt.Printf("%s:%d %s: %s\n", m.Ref(), f.Stmt.Index(), yellow(f.Kind.String()), f.Stmt)
		}
	}
	cf.log.Infof("deadcode: %d findings across %d reachable methods", total, len(cg.ReachableMethods()))
	return nil
}
