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

// Package result implements a result sink: a store of named analysis
// results ("cha", "pta-ci", "inter-constprop", "taint", ...) keyed by
// analysis id, so a CLI or embedder can fetch whichever results it asked
// an analyzer run to compute without every package needing to know about
// every other package's output type.
package result

import "github.com/pkg/errors"

// Sink stores one run's named results, each looked up by the id the
// analysis that produced it was registered under.
type Sink struct {
	values map[string]any
}

// NewSink returns an empty result sink.
func NewSink() *Sink {
	return &Sink{values: map[string]any{}}
}

// Put registers value under id, overwriting any prior value for the same
// id — a run that recomputes an analysis (e.g. re-running PTA with a
// different context selector) replaces its previous result.
func (s *Sink) Put(id string, value any) {
	s.values[id] = value
}

// Get returns the value registered under id. The bool reports whether id
// was present, so callers that can proceed without a result don't need
// to inspect an error.
func (s *Sink) Get(id string) (any, bool) {
	v, ok := s.values[id]
	return v, ok
}

// MustGet returns the value registered under id, or an error carrying a
// stack trace (printed by %+v) if id was never registered.
func (s *Sink) MustGet(id string) (any, error) {
	v, ok := s.values[id]
	if !ok {
		return nil, errors.WithStack(&NotFoundError{ID: id})
	}
	return v, nil
}

// NotFoundError reports a lookup against an id no analysis registered.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string { return "no result registered for id " + e.ID }

// IDs returns every id currently registered, for listing/debug output.
func (s *Sink) IDs() []string {
	ids := make([]string, 0, len(s.values))
	for id := range s.values {
		ids = append(ids, id)
	}
	return ids
}
