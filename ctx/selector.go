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

package ctx

// Selector computes contexts for method calls and object allocations —
// the "context selection function". Every context-sensitivity variant
// the config's `context-sensitivity` option can name (`ci`, `1-call`,
// `2-call`, `1-object`, `2-object`, `2-type`) implements this interface.
type Selector interface {
	// SelectMethod returns the callee's context for a call made from
	// callerCtx at call site site. recvHeapCtx is the receiver object's
	// heap context; object-sensitivity variants derive the callee context
	// from it, call-site variants ignore it.
	SelectMethod(callerCtx Context, site Elem, recvHeapCtx Context) Context
	// SelectHeap returns the heap context assigned to an object freshly
	// allocated at site while executing in context allocCtx.
	SelectHeap(allocCtx Context, site Elem) Context
	// Name identifies the variant, for logging and config round-tripping.
	Name() string
	// TypeAbstracted reports whether this variant wants its Elems derived
	// from an allocation's declared type rather than its site identity —
	// package pta/cs's Solver consults this to pick which Elem domain to
	// intern allocations under before calling SelectHeap/SelectMethod.
	TypeAbstracted() bool
}

// Insensitive is context-insensitive analysis: every context is Empty.
type Insensitive struct{}

func (Insensitive) SelectMethod(Context, Elem, Context) Context { return Empty }
func (Insensitive) SelectHeap(Context, Elem) Context             { return Empty }
func (Insensitive) Name() string                                 { return "ci" }
func (Insensitive) TypeAbstracted() bool                          { return false }

// CallSite implements k-CFA: the callee's context is the caller's call
// string with the new call site appended and truncated to K entries.
// Heap contexts under call-site sensitivity are the allocating method's
// own context, unchanged (Tai-e's CSCallSiteSensitivity).
type CallSite struct{ K int }

func (c CallSite) SelectMethod(callerCtx Context, site Elem, _ Context) Context {
	return appendTruncated(callerCtx, site, c.K)
}
func (c CallSite) SelectHeap(allocCtx Context, _ Elem) Context { return allocCtx }
func (c CallSite) Name() string {
	if c.K == 1 {
		return "1-call"
	}
	return "2-call"
}
func (CallSite) TypeAbstracted() bool { return false }

// Object implements k-object- and k-type-sensitivity: the callee's
// context for an instance call is the receiver object's heap context
// (truncated to K), and a newly allocated object's heap context is the
// allocating method's own context with the allocation element appended,
// truncated to K. ByType switches the element domain from "one element
// per allocation site" (object-sensitivity) to "one element per declared
// type" (type-sensitivity, Tai-e's TypeSensitivity): every allocation of
// class C anywhere contributes the same context element, so two objects
// of the same type collapse into the same context where plain
// object-sensitivity would keep them apart.
type Object struct {
	K      int
	ByType bool
}

func (o Object) SelectMethod(_ Context, _ Elem, recvHeapCtx Context) Context {
	return truncate(recvHeapCtx, o.K)
}
func (o Object) SelectHeap(allocCtx Context, site Elem) Context {
	return appendTruncated(allocCtx, site, o.K)
}
func (o Object) Name() string {
	if o.ByType {
		return "2-type"
	}
	if o.K == 1 {
		return "1-object"
	}
	return "2-object"
}
func (o Object) TypeAbstracted() bool { return o.ByType }

func truncate(c Context, k int) Context {
	es := c.elems()
	if len(es) <= k {
		return c
	}
	return intern(append([]Elem(nil), es[len(es)-k:]...))
}

// NewSelector maps a config `context-sensitivity` value to a Selector.
// It returns nil for an unrecognized name; callers should treat that as a
// configuration error.
func NewSelector(name string) Selector {
	switch name {
	case "", "ci":
		return Insensitive{}
	case "1-call":
		return CallSite{K: 1}
	case "2-call":
		return CallSite{K: 2}
	case "1-object":
		return Object{K: 1}
	case "2-object":
		return Object{K: 2}
	case "2-type":
		return Object{K: 2, ByType: true}
	default:
		return nil
	}
}
