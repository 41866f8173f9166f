package main

import "testing"

func TestRunVersion(t *testing.T) {
	if err := run([]string{"version"}); err != nil {
		t.Fatalf("run(version) error = %v", err)
	}
}

func TestRunCheckMissingArgs(t *testing.T) {
	err := run([]string{"check"})
	if err == nil {
		t.Fatalf("expected check to fail without a submissions directory")
	}
}
