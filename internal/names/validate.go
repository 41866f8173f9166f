package names

import (
	"fmt"
	"regexp"
)

const MaxAssignmentNameLength = 64

var assignmentNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateAssignmentName rejects names that cannot serve as report keys.
// Assignment names end up in file paths, index rows, and API queries, so
// the character set stays narrow.
func ValidateAssignmentName(name string) error {
	if name == "" {
		return fmt.Errorf("assignment name is required")
	}
	if len(name) > MaxAssignmentNameLength {
		return fmt.Errorf("assignment name must be at most %d characters", MaxAssignmentNameLength)
	}
	if !assignmentNamePattern.MatchString(name) {
		return fmt.Errorf("assignment name must match %q", assignmentNamePattern.String())
	}
	return nil
}
