package main

import (
	"flag"

	"github.com/pkg/errors"

	"git.amazon.com/pkg/tai-analyzer/callgraph"
	"git.amazon.com/pkg/tai-analyzer/render"
)

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	open := fs.Bool("open", false, "open the rendered call graph in the browser instead of writing a file")
	out := fs.String("out", "callgraph.svg", "output file path")
	configPath := fs.String("config", "", "YAML config file path")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parsing flags")
	}
	if fs.NArg() < 1 {
		return errors.New("render: expected a program JSON file argument")
	}
	commonArgs := []string{fs.Arg(0)}
	if *configPath != "" {
		commonArgs = append([]string{"-config", *configPath}, commonArgs...)
	}

	cf, _, err := parseCommon("render", commonArgs)
	if err != nil {
		return err
	}

	cg := callgraph.BuildCHA(cf.hier, cf.entries)

	if *open {
		return render.OpenInBrowser(cg)
	}
	if err := render.CallGraphToFile(cg, *out, render.Format(formatOf(*out))); err != nil {
		return errors.Wrap(err, "rendering call graph")
	}
	cf.log.Infof("rendered call graph to %s", *out)
	return nil
}

func formatOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return "svg"
}
