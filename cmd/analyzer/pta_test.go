package main

import (
	"os"
	"path/filepath"
	"testing"

	"git.amazon.com/pkg/tai-analyzer/cmd/analyzer/load"
)

// writeEntryConfig writes a YAML config matching every method (so CHA/PTA
// have something reachable) and returns its path.
func writeEntryConfig(t *testing.T) string {
	t.Helper()
	doc := "entry-methods:\n  - class: \"C\"\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	return path
}

func TestRunPTADefaultsToContextInsensitive(t *testing.T) {
	prog := writeProgram(t)
	cfgPath := writeEntryConfig(t)
	if err := runPTA([]string{"-config", cfgPath, prog}); err != nil {
		t.Fatalf("runPTA: %v", err)
	}
}

func TestRunPTARejectsUnknownVariant(t *testing.T) {
	prog := writeProgram(t)
	doc := "pta-variant: bogus\nentry-methods:\n  - class: \"C\"\n"
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	if err := runPTA([]string{"-config", cfgPath, prog}); err == nil {
		t.Fatal("expected an error for an unknown pta-variant")
	}
}

func TestMethodVarsCollectsDefsAndUses(t *testing.T) {
	_, byName, err := load.Load(writeProgram(t))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	m := byName["C"].DeclaredMethods()[0]
	vars := methodVars(m)
	if len(vars) == 0 {
		t.Fatal("methodVars should collect at least the method's own local var")
	}
}
