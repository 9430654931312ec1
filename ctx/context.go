// Package ctx implements the context abstraction the context-sensitive
// pointer analysis (package pta/cs) is parameterized over: call-site-
// sensitivity (k-CFA) and object-sensitivity are the two supported
// selector families, both built from a common Context value.
//
// This mirrors Tai-e's pascal.taie.analysis.pta.context package, whose
// Context is an immutable, interned tuple of "context elements" (call
// sites for k-CFA, heap Objs for object-sensitivity) with a fixed maximum
// length k.
package ctx

import (
	"strconv"
	"strings"
)

// Elem identifies one entry in a Context: a call-site index (k-CFA) or a
// heap object index (object-sensitivity). Contexts never inspect the
// element's origin, only its identity, so a plain int suffices.
type Elem int

// node is a Context's interned backing storage. Contexts built from the
// same element sequence share one node, so Context reduces to a single
// pointer and can be compared with == and used directly as a map key —
// package pta/cs indexes its var, object and reachable-method tables by
// Context.
type node struct {
	elems []Elem
}

// Context is an immutable sequence of at most k Elems, oldest first.
// The zero value is the empty ("context-insensitive") context.
type Context struct {
	n *node
}

// Empty is the 0-length context every analysis starts the entry method in.
var Empty = Context{}

var interned = map[string]*node{}

// intern returns the canonical Context for elems, minting a new node the
// first time a given sequence is seen.
func intern(elems []Elem) Context {
	if len(elems) == 0 {
		return Empty
	}
	key := keyOf(elems)
	if n, ok := interned[key]; ok {
		return Context{n: n}
	}
	n := &node{elems: elems}
	interned[key] = n
	return Context{n: n}
}

func keyOf(elems []Elem) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = strconv.Itoa(int(e))
	}
	return strings.Join(parts, ",")
}

func (c Context) elems() []Elem {
	if c.n == nil {
		return nil
	}
	return c.n.elems
}

// Len returns the number of elements in c.
func (c Context) Len() int { return len(c.elems()) }

// Elems returns c's elements, oldest first. Callers must not mutate the
// returned slice.
func (c Context) Elems() []Elem { return c.elems() }

// Last returns c's most recently appended element and true, or (0, false)
// if c is empty.
func (c Context) Last() (Elem, bool) {
	es := c.elems()
	if len(es) == 0 {
		return 0, false
	}
	return es[len(es)-1], true
}

// Equal reports whether c and other hold the same elements in the same
// order. Interned Contexts built through intern/appendTruncated/truncate
// always compare equal via == already; Equal also handles a Context
// built by any other means.
func (c Context) Equal(other Context) bool {
	if c.n == other.n {
		return true
	}
	a, b := c.elems(), other.elems()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders c as "[e1,e2,...]", matching Tai-e's Context.toString for
// log/DOT readability.
func (c Context) String() string {
	es := c.elems()
	if len(es) == 0 {
		return "[]"
	}
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = strconv.Itoa(int(e))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// appendTruncated returns the (interned) Context formed by appending e to
// c and keeping only the last k elements — the FIFO truncation policy
// spec Design Notes' heap-context supplement calls for (SUPPLEMENTED
// FEATURES item 3): old elements fall off the front once length exceeds
// k.
func appendTruncated(c Context, e Elem, k int) Context {
	if k <= 0 {
		return Empty
	}
	cur := c.elems()
	next := make([]Elem, 0, k)
	start := 0
	if len(cur)+1 > k {
		start = len(cur) + 1 - k
	}
	if start < len(cur) {
		next = append(next, cur[start:]...)
	}
	next = append(next, e)
	return intern(next)
}
