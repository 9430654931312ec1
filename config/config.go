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

// Package config implements the YAML-driven option and taint/entry-point
// rule loader: a NewDefault/Load shape, and a "report with location, skip
// the entry, never abort" validation contract, expressed over the
// IR-agnostic MethodPattern this analyzer's ir package needs rather than
// over Go-source identifiers.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Options carries the ambient knobs every analysis run shares.
type Options struct {
	// PTAVariant selects which pointer-analysis package (pta/ci or pta/cs)
	// a run consumes: "ci" or "cs".
	PTAVariant string `yaml:"pta-variant"`

	// ContextSensitivity names the ctx.Selector a "cs" run builds via
	// ctx.NewSelector: "ci", "1-call", "2-call", "1-object", "2-type".
	ContextSensitivity string `yaml:"context-sensitivity"`

	// MaxDepth is a call-chain depth limit, read only through
	// ExceedsMaxDepth; the CHA and PTA builders do not consult it. <= 0
	// means unbounded.
	MaxDepth int `yaml:"max-depth"`

	// LogLevel controls config.LogGroup's verbosity.
	LogLevel int `yaml:"log-level"`

	// ReportsDir is parsed from `reports-dir`; no command in this
	// repository reads it, and rendered graphs go to the path given on the
	// command line.
	ReportsDir string `yaml:"reports-dir"`
}

// Config is the full configuration for one analyzer run: entry points,
// the taint rule table, and the ambient Options above.
type Config struct {
	Options `yaml:",inline"`

	// EntryMethods seeds CHA/PTA reachability: every method matching one
	// of these patterns in the loaded program is treated as reachable
	// from the start.
	EntryMethods []MethodPattern `yaml:"entry-methods"`

	// Taint is the source/sink/transfer rule table feeding package taint.
	Taint TaintConfig `yaml:"taint"`

	sourceFile string
}

// TaintConfig is the YAML shape of package taint's Config, expressed over
// MethodPatterns instead of resolved ir.MethodRefs — Resolve binds it
// against a loaded program's classes.
type TaintConfig struct {
	Sources   []TaintSourceRule   `yaml:"sources"`
	Sinks     []TaintSinkRule     `yaml:"sinks"`
	Transfers []TaintTransferRule `yaml:"transfers"`
}

// TaintSourceRule marks Pattern's Slot output as tainted whenever a
// matching method is called.
type TaintSourceRule struct {
	Pattern MethodPattern `yaml:",inline"`
	Slot    string        `yaml:"slot"`
}

// TaintSinkRule flags a call to a matching method as a sink whenever Slot
// carries a tainted value.
type TaintSinkRule struct {
	Pattern MethodPattern `yaml:",inline"`
	Slot    string        `yaml:"slot"`
}

// TaintTransferRule propagates taint from From to To across a call to a
// matching method.
type TaintTransferRule struct {
	Pattern MethodPattern `yaml:",inline"`
	From    string        `yaml:"from,omitempty"`
	To      string        `yaml:"to,omitempty"`
}

// NewDefault returns the configuration a run gets when no YAML file
// overrides it.
func NewDefault() *Config {
	return &Config{
		Options: Options{
			PTAVariant:         "ci",
			ContextSensitivity: "ci",
			MaxDepth:           -1,
			LogLevel:           int(InfoLevel),
		},
	}
}

// Load reads and parses a YAML configuration file. It does not compile or
// check the patterns; call Validate on the result for that.
func Load(filename string) (*Config, error) {
	cfg := NewDefault()
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "could not read config file")
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrap(err, "could not parse config file")
	}
	cfg.sourceFile = filename
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = -1
	}
	return cfg, nil
}

// SourceFile returns the path Load read cfg from, or "" for NewDefault.
func (c *Config) SourceFile() string { return c.sourceFile }

// Verbose reports whether LogLevel is Debug or above.
func (c *Config) Verbose() bool { return LogLevel(c.LogLevel) >= DebugLevel }

// ExceedsMaxDepth reports whether d exceeds MaxDepth, ignoring the check
// entirely when MaxDepth <= 0.
func (c *Config) ExceedsMaxDepth(d int) bool {
	return c.MaxDepth > 0 && d > c.MaxDepth
}
