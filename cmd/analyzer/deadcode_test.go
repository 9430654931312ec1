package main

import "testing"

func TestRunDeadcodeSucceedsOnAMinimalProgram(t *testing.T) {
	path := writeProgram(t)
	cfgPath := writeEntryConfig(t)
	if err := runDeadcode([]string{"-config", cfgPath, path}); err != nil {
		t.Fatalf("runDeadcode: %v", err)
	}
}

func TestRunDeadcodePropagatesLoadErrors(t *testing.T) {
	if err := runDeadcode(nil); err == nil {
		t.Fatal("expected an error when no program file is given")
	}
}
