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

package config

import (
	"strconv"

	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/taint"
)

const (
	slotResult = "result"
	slotThis   = "this"
)

// parseSlot decodes a YAML slot string into a taint.Slot; malformed
// strings (already flagged by Validate) decode to taint.Arg(0) rather
// than panicking.
func parseSlot(s string) taint.Slot {
	switch s {
	case slotResult:
		return taint.Result
	case slotThis:
		return taint.This
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return taint.Arg(0)
		}
		return taint.Arg(n)
	}
}

// slotType returns the static type m declares for slot, so a Transfer
// rule's retyped mark carries the type the transferring method's own
// signature promises rather than the taint mark's prior type. Falls back
// to m's declaring class for a Slot this method's signature doesn't
// describe (e.g. This on a static method).
func slotType(m *ir.Method, slot taint.Slot) ir.Type {
	switch {
	case slot == taint.Result:
		return m.ReturnType
	case slot == taint.This:
		return ir.ClassType{Name: m.Declaring.Name}
	case int(slot) >= 0 && int(slot) < len(m.Params):
		return m.Params[slot].Type
	default:
		return ir.ClassType{Name: m.Declaring.Name}
	}
}

// Resolve binds cfg's MethodPatterns against the classes of a loaded
// program, producing the entry-method list and taint.Config that package
// callgraph/pta/taint consume. Classes whose patterns were never
// compiled (a Validate error was reported for them) never match anything,
// so a malformed rule silently contributes nothing rather than aborting.
func (c *Config) Resolve(classes []*ir.Class) ([]*ir.Method, *taint.Config) {
	var entries []*ir.Method
	tc := &taint.Config{}

	for _, cls := range classes {
		for _, m := range cls.DeclaredMethods() {
			if m.IR == nil {
				continue
			}
			ref := m.Ref()
			for _, p := range c.EntryMethods {
				if p.Matches(cls.Name, m.Name) {
					entries = append(entries, m)
					break
				}
			}
			for _, s := range c.Taint.Sources {
				if s.Pattern.Matches(cls.Name, m.Name) {
					tc.Sources = append(tc.Sources, taint.SourceSpec{Method: ref, Slot: parseSlot(s.Slot)})
				}
			}
			for _, s := range c.Taint.Sinks {
				if s.Pattern.Matches(cls.Name, m.Name) {
					tc.Sinks = append(tc.Sinks, taint.SinkSpec{Method: ref, Slot: parseSlot(s.Slot)})
				}
			}
			for _, t := range c.Taint.Transfers {
				if t.Pattern.Matches(cls.Name, m.Name) {
					to := parseSlot(t.To)
					tc.Transfers = append(tc.Transfers, taint.TransferSpec{
						Method: ref, From: parseSlot(t.From), To: to, Type: slotType(m, to),
					})
				}
			}
		}
	}
	return entries, tc
}
