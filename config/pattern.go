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

import "regexp"

// MethodPattern identifies a method by regex against its declaring
// class's name and its own subsignature name. An empty field matches
// anything.
type MethodPattern struct {
	Class  string `yaml:"class"`
	Method string `yaml:"method"`

	classRe  *regexp.Regexp
	methodRe *regexp.Regexp
}

// compile lazily builds p's regexes, returning a ConfigError (rather than
// aborting) if either field fails to compile, so the caller can report the
// location and skip the entry instead of failing the whole run.
func (p *MethodPattern) compile(loc string) *ConfigError {
	if p.Class != "" {
		re, err := regexp.Compile(p.Class)
		if err != nil {
			return &ConfigError{Location: loc, Message: "invalid class pattern: " + err.Error()}
		}
		p.classRe = re
	}
	if p.Method != "" {
		re, err := regexp.Compile(p.Method)
		if err != nil {
			return &ConfigError{Location: loc, Message: "invalid method pattern: " + err.Error()}
		}
		p.methodRe = re
	}
	return nil
}

// Matches reports whether p describes the method named methodName,
// declared by a class named className. A pattern whose non-empty field
// was never compiled (or failed to compile) matches nothing.
func (p *MethodPattern) Matches(className, methodName string) bool {
	if (p.Class != "" && p.classRe == nil) || (p.Method != "" && p.methodRe == nil) {
		return false
	}
	if p.classRe != nil && !p.classRe.MatchString(className) {
		return false
	}
	if p.methodRe != nil && !p.methodRe.MatchString(methodName) {
		return false
	}
	return true
}
