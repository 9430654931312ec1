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

package ir

import "testing"

func TestIRDelegatesToMethod(t *testing.T) {
	this := &Var{Name: "this"}
	p0 := &Var{Name: "p0"}
	ret := &Var{Name: "r"}
	m := &Method{ThisVar: this, Params: []*Var{p0}, ReturnVars: []*Var{ret}}
	r := &IR{Method: m}

	if got := r.This(); got != this {
		t.Errorf("This() = %v, want %v", got, this)
	}
	params := r.Params()
	if len(params) != 1 || params[0] != p0 {
		t.Errorf("Params() = %v, want [p0]", params)
	}
	rv := r.ReturnVars()
	if len(rv) != 1 || rv[0] != ret {
		t.Errorf("ReturnVars() = %v, want [r]", rv)
	}
}

func TestIRThisNilForStaticMethod(t *testing.T) {
	m := &Method{}
	r := &IR{Method: m}
	if r.This() != nil {
		t.Errorf("This() on a static method should be nil, got %v", r.This())
	}
}
