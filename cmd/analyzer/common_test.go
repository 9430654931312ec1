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

package main

import (
	"os"
	"path/filepath"
	"testing"
)

// writeProgram writes a minimal JSON program document to a temp file and
// returns its path: class C { int get() { r = 1; return r } }.
func writeProgram(t *testing.T) string {
	t.Helper()
	doc := `{
		"classes": [
			{
				"name": "C",
				"methods": [
					{
						"name": "get",
						"returnType": "int",
						"vars": [{"name": "r", "type": "int"}],
						"ops": [
							{"op": "assignconst", "lvalue": "r", "value": 1},
							{"op": "return", "src": "r"}
						]
					}
				]
			}
		]
	}`
	path := filepath.Join(t.TempDir(), "program.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture program: %v", err)
	}
	return path
}

func TestParseCommonLoadsProgramAndDefaultsConfig(t *testing.T) {
	path := writeProgram(t)
	cf, rest, err := parseCommon("cha", []string{path})
	if err != nil {
		t.Fatalf("parseCommon: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no leftover args, got %v", rest)
	}
	if len(cf.classes) != 1 || cf.classes[0].Name != "C" {
		t.Fatalf("expected exactly class C loaded, got %v", cf.classes)
	}
	if cf.cfg.PTAVariant != "ci" {
		t.Fatalf("expected the default config (PTAVariant=ci) when --config is omitted, got %q", cf.cfg.PTAVariant)
	}
	if cf.hier == nil {
		t.Fatal("parseCommon should build a class hierarchy")
	}
}

func TestParseCommonRejectsMissingProgramArg(t *testing.T) {
	if _, _, err := parseCommon("cha", nil); err == nil {
		t.Fatal("expected an error when no program file argument is given")
	}
}

func TestParseCommonRejectsUnreadableProgram(t *testing.T) {
	if _, _, err := parseCommon("cha", []string{filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Fatal("expected an error for a program file that doesn't exist")
	}
}
