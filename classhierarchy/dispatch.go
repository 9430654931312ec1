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

package classhierarchy

import "git.amazon.com/pkg/tai-analyzer/ir"

// Dispatch resolves sig against a concrete receiver type c: it ascends the
// superclass chain until it finds a non-abstract declaration, returning
// nil if no such method exists.
func Dispatch(c *ir.Class, sig ir.Subsignature) *ir.Method {
	for c != nil {
		if m := c.DeclaredMethod(sig); m != nil && !m.IsAbstract {
			return m
		}
		c = c.Super
	}
	return nil
}

// ResolveVirtual resolves a virtual/interface call site's declared
// MethodRef against the *declared type* of a receiver object, not the
// declared type of the receiver variable.
func (h *Hierarchy) ResolveVirtual(recvType *ir.Class, sig ir.Subsignature) *ir.Method {
	return Dispatch(recvType, sig)
}

// Resolve implements resolve(callsite) for a call whose static
// declaring class/kind are ref/kind: STATIC and SPECIAL dispatch to a
// single target; VIRTUAL and INTERFACE walk the transitive subclass/
// subinterface/implementor closure of ref.DeclaringClass, dispatching at
// each visited class and collecting the non-nil results.
func (h *Hierarchy) Resolve(ref ir.MethodRef, kind ir.CallKind) []*ir.Method {
	switch kind {
	case ir.Static, ir.Special:
		if m := Dispatch(ref.DeclaringClass, ref.Subsignature); m != nil {
			return []*ir.Method{m}
		}
		return nil
	default: // Virtual, Interface
		return h.resolveVirtualClosure(ref.DeclaringClass, ref.Subsignature)
	}
}

func (h *Hierarchy) resolveVirtualClosure(root *ir.Class, sig ir.Subsignature) []*ir.Method {
	var out []*ir.Method
	seenClass := map[*ir.Class]bool{}
	seenMethod := map[*ir.Method]bool{}
	queue := []*ir.Class{root}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil || seenClass[c] {
			continue
		}
		seenClass[c] = true
		if m := Dispatch(c, sig); m != nil && !seenMethod[m] {
			seenMethod[m] = true
			out = append(out, m)
		}
		queue = append(queue, h.DirectSubclassesOf(c)...)
		queue = append(queue, h.DirectImplementorsOf(c)...)
		queue = append(queue, h.DirectSubinterfacesOf(c)...)
	}
	return out
}
