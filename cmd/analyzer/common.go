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
	"flag"

	"github.com/pkg/errors"

	"git.amazon.com/pkg/tai-analyzer/classhierarchy"
	"git.amazon.com/pkg/tai-analyzer/cmd/analyzer/load"
	cfgpkg "git.amazon.com/pkg/tai-analyzer/config"
	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/taint"
)

// commonFlags is every subcommand's shared setup: load the YAML config
// (or NewDefault if --config was never given), load the JSON program,
// build the class hierarchy, and resolve entry methods/taint config
// against it.
type commonFlags struct {
	cfg        *cfgpkg.Config
	log        *cfgpkg.LogGroup
	classes    []*ir.Class
	byName     map[string]*ir.Class
	hier       *classhierarchy.Hierarchy
	entries    []*ir.Method
	taintCfg   *taint.Config
}

func parseCommon(toolName string, args []string) (*commonFlags, []string, error) {
	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file path")
	if err := fs.Parse(args); err != nil {
		return nil, nil, errors.Wrap(err, "parsing flags")
	}
	if fs.NArg() < 1 {
		return nil, nil, errors.Errorf("%s: expected a program JSON file argument", toolName)
	}

	cfg := cfgpkg.NewDefault()
	if *configPath != "" {
		loaded, err := cfgpkg.Load(*configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}
	for _, cerr := range cfg.Validate() {
		cfgpkg.NewLogGroup(cfg).Warnf("%v", cerr)
	}

	classes, byName, err := load.Load(fs.Arg(0))
	if err != nil {
		return nil, nil, errors.Wrap(err, "loading program")
	}

	hier := classhierarchy.New(classes)

	entries, taintCfg := cfg.Resolve(classes)

	return &commonFlags{
		cfg:      cfg,
		log:      cfgpkg.NewLogGroup(cfg),
		classes:  classes,
		byName:   byName,
		hier:     hier,
		entries:  entries,
		taintCfg: taintCfg,
	}, fs.Args()[1:], nil
}
