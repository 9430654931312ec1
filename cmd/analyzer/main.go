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

// Command analyzer is the CLI front end for this repository's analyses: a
// subcommand dispatch shape and a common --config flag, pointed at a JSON
// program description rather than Go source. A caught
// AnalysisInvariantError always becomes a diagnosed exit (status 3)
// instead of a bare stack dump.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"git.amazon.com/pkg/tai-analyzer/result"
)

const usage = `analyzer: whole-program static analysis toolkit
Usage:
  analyzer <tool> --config=config.yaml <program.json>
Tools:
  - cha: builds and prints the class-hierarchy-analysis call graph
  - pta: runs the pointer analysis (ci or cs, per config) and prints points-to set sizes
  - interproc: runs inter-procedural constant propagation and prints NAC/CONST counts
  - deadcode: runs dead-code detection and prints findings
  - taint: runs taint-propagation analysis and prints flows
  - render: renders the call graph to a file (or opens it in the browser with --open)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	defer func() {
		if r := recover(); r != nil {
			if ive, ok := r.(*result.AnalysisInvariantError); ok {
				fmt.Fprintf(os.Stderr, "fatal: %v\n", ive)
				os.Exit(3)
			}
			panic(r)
		}
	}()

	var err error
	switch cmd {
	case "cha":
		err = runCHA(args)
	case "pta":
		err = runPTA(args)
	case "interproc":
		err = runInterproc(args)
	case "deadcode":
		err = runDeadcode(args)
	case "taint":
		err = runTaint(args)
	case "render":
		err = runRender(args)
	case "-help", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "error: unknown tool %q\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %+v\n", errors.Cause(err))
		os.Exit(1)
	}
}
