package main

import "testing"

func TestRunTaintSucceedsOnAMinimalProgram(t *testing.T) {
	path := writeProgram(t)
	cfgPath := writeEntryConfig(t)
	if err := runTaint([]string{"-config", cfgPath, path}); err != nil {
		t.Fatalf("runTaint: %v", err)
	}
}

func TestRunTaintPropagatesLoadErrors(t *testing.T) {
	if err := runTaint(nil); err == nil {
		t.Fatal("expected an error when no program file is given")
	}
}
