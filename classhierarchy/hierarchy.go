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

// Package classhierarchy implements the class-hierarchy external
// collaborator: directSubclassesOf, directSubinterfacesOf,
// directImplementorsOf, superClassOf, declaredMethod. ir.Class only stores
// the "points up" relation (Super, Interfaces); this package builds and
// serves the "points down" relation CHA dispatch needs to walk.
package classhierarchy

import (
	"sort"

	"git.amazon.com/pkg/tai-analyzer/ir"
)

// Hierarchy indexes a closed set of classes/interfaces for the reverse
// (subtype) queries CHA needs. It is built once and is read-only
// afterwards: the IR and class hierarchy never change once a program is
// built.
type Hierarchy struct {
	classes         map[string]*ir.Class
	directSubclass  map[*ir.Class][]*ir.Class // key is a class; value is its direct subclasses
	directSubiface  map[*ir.Class][]*ir.Class // key is an interface; value is its direct sub-interfaces
	directImplement map[*ir.Class][]*ir.Class // key is an interface; value is classes directly implementing it
}

// New builds a Hierarchy over classes. classes must include every
// class/interface reachable through Super/Interfaces links that callers
// intend to query — the hierarchy does not follow references lazily.
func New(classes []*ir.Class) *Hierarchy {
	h := &Hierarchy{
		classes:         map[string]*ir.Class{},
		directSubclass:  map[*ir.Class][]*ir.Class{},
		directSubiface:  map[*ir.Class][]*ir.Class{},
		directImplement: map[*ir.Class][]*ir.Class{},
	}
	for _, c := range classes {
		h.classes[c.Name] = c
	}
	for _, c := range classes {
		switch c.Kind {
		case ir.KindClass:
			if c.Super != nil {
				h.directSubclass[c.Super] = append(h.directSubclass[c.Super], c)
			}
			for _, i := range c.Interfaces {
				h.directImplement[i] = append(h.directImplement[i], c)
			}
		case ir.KindInterface:
			for _, i := range c.Interfaces {
				h.directSubiface[i] = append(h.directSubiface[i], c)
			}
		}
	}
	h.sortAll()
	return h
}

func sortByName(cs []*ir.Class) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Name < cs[j].Name })
}

func (h *Hierarchy) sortAll() {
	for _, m := range []map[*ir.Class][]*ir.Class{h.directSubclass, h.directSubiface, h.directImplement} {
		for k := range m {
			sortByName(m[k])
		}
	}
}

// Lookup returns the class/interface named name, or nil.
func (h *Hierarchy) Lookup(name string) *ir.Class { return h.classes[name] }

// DirectSubclassesOf returns c's immediate subclasses, name-sorted.
func (h *Hierarchy) DirectSubclassesOf(c *ir.Class) []*ir.Class { return h.directSubclass[c] }

// DirectSubinterfacesOf returns i's immediate sub-interfaces, name-sorted.
func (h *Hierarchy) DirectSubinterfacesOf(i *ir.Class) []*ir.Class { return h.directSubiface[i] }

// DirectImplementorsOf returns i's immediate implementing classes,
// name-sorted.
func (h *Hierarchy) DirectImplementorsOf(i *ir.Class) []*ir.Class { return h.directImplement[i] }

// SuperClassOf returns c's superclass, or nil.
func (h *Hierarchy) SuperClassOf(c *ir.Class) *ir.Class { return c.Super }

// DeclaredMethod returns the method C itself declares with sig, or nil.
func (h *Hierarchy) DeclaredMethod(c *ir.Class, sig ir.Subsignature) *ir.Method {
	return c.DeclaredMethod(sig)
}
