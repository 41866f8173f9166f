package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Fatalf("ExitCode(nil) = %d, want 0", got)
	}
	if got := ExitCode(errors.New("boom")); got != 1 {
		t.Fatalf("ExitCode(plain error) = %d, want 1", got)
	}
	if got := ExitCode(exitCodeError(ExitIssues, errors.New("2 submission(s) have format issues"))); got != ExitIssues {
		t.Fatalf("ExitCode(exitCodeError(%d)) = %d, want %d", ExitIssues, got, ExitIssues)
	}
	wrapped := fmt.Errorf("run failed: %w", exitCodeError(ExitIssues, errors.New("boom")))
	if got := ExitCode(wrapped); got != ExitIssues {
		t.Fatalf("ExitCode(wrapped) = %d, want %d", got, ExitIssues)
	}
}

func TestExitCodeErrorZeroCodePassesThrough(t *testing.T) {
	base := errors.New("boom")
	if got := exitCodeError(0, base); got != base {
		t.Fatalf("exitCodeError(0) = %v, want the original error", got)
	}
}
