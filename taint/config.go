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

// Package taint implements taint-propagation analysis: given a
// configuration of source/sink/transfer method signatures, it finds every
// path along which a value produced by a source call can reach a sink
// call's guarded argument, using the call graph and points-to results
// already computed by package callgraph/pta as its substrate. Grounded on
// Tai-e's pascal.taie.analysis.pta.plugin.taint.TaintAnalysis.
package taint

import (
	"fmt"

	"git.amazon.com/pkg/tai-analyzer/ir"
)

// Slot identifies which part of a call a source/sink/transfer rule reads
// or writes: the call's result, its receiver, or one of its arguments.
type Slot int

const (
	Result Slot = -1
	This   Slot = -2
)

// Arg identifies the i'th formal/actual argument as a Slot.
func Arg(i int) Slot { return Slot(i) }

func (s Slot) String() string {
	switch s {
	case Result:
		return "result"
	case This:
		return "this"
	default:
		return fmt.Sprintf("arg%d", int(s))
	}
}

// SourceSpec marks Method's Slot output as tainted whenever Method is
// called.
type SourceSpec struct {
	Method ir.MethodRef
	Slot   Slot
}

// SinkSpec flags a call to Method as a sink whenever Slot carries a
// tainted value at the call site.
type SinkSpec struct {
	Method ir.MethodRef
	Slot   Slot
}

// TransferSpec propagates taint from From to To across a call to Method
// without the value actually being a source or sink itself (e.g. a string
// concatenation helper, or an identity wrapper). Type is the declared
// type To carries after the transfer — the CS-PTA integration mints one
// taint Obj per (source call, Type) pair, so a value that crosses several
// retyping transfers is tracked as a chain of distinct, still-linked
// marks rather than one Obj wearing every type it ever passed through.
type TransferSpec struct {
	Method   ir.MethodRef
	From, To Slot
	Type     ir.Type
}

// Config is the full source/sink/transfer rule set for one analysis run.
type Config struct {
	Sources   []SourceSpec
	Sinks     []SinkSpec
	Transfers []TransferSpec
}

// SourcesFor returns every configured source rule matching ref, so the
// CS-PTA solver can check a call site's static signature without knowing
// the Config's internal shape.
func (c *Config) SourcesFor(ref ir.MethodRef) []SourceSpec {
	var out []SourceSpec
	for _, s := range c.Sources {
		if refEqual(s.Method, ref) {
			out = append(out, s)
		}
	}
	return out
}

// SinksFor returns every configured sink rule matching ref.
func (c *Config) SinksFor(ref ir.MethodRef) []SinkSpec {
	var out []SinkSpec
	for _, s := range c.Sinks {
		if refEqual(s.Method, ref) {
			out = append(out, s)
		}
	}
	return out
}

// TransfersFor returns every configured transfer rule matching ref.
func (c *Config) TransfersFor(ref ir.MethodRef) []TransferSpec {
	var out []TransferSpec
	for _, t := range c.Transfers {
		if refEqual(t.Method, ref) {
			out = append(out, t)
		}
	}
	return out
}

// refEqual compares MethodRefs by declaring class name and subsignature,
// not pointer identity, since config rules are authored against class
// names rather than live *ir.Class values.
func refEqual(a, b ir.MethodRef) bool {
	if a.DeclaringClass == nil || b.DeclaringClass == nil {
		return a.DeclaringClass == b.DeclaringClass && a.Subsignature == b.Subsignature
	}
	return a.DeclaringClass.Name == b.DeclaringClass.Name && a.Subsignature == b.Subsignature
}
