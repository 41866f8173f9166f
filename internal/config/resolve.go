package config

import (
	"fmt"
	"strings"

	"github.com/gradekit/hwcheck/internal/names"
)

// ResolveAssignment resolves an explicit assignment name or falls back to
// current-assignment. Names without a declared profile still resolve; a
// profile only contributes defaults for reports-dir and workers.
func ResolveAssignment(cfg Config, explicitName string) (AssignmentInfo, error) {
	name := strings.TrimSpace(explicitName)
	if name == "" {
		name = strings.TrimSpace(cfg.CurrentAssignment)
		if name == "" {
			return AssignmentInfo{}, fmt.Errorf("no assignment selected: set current-assignment or pass --assignment")
		}
	}
	if err := names.ValidateAssignmentName(name); err != nil {
		return AssignmentInfo{}, err
	}

	info := AssignmentInfo{Name: name, Workers: cfg.Workers}
	if info.Workers <= 0 {
		info.Workers = DefaultWorkers
	}
	for _, a := range cfg.Assignments {
		if strings.TrimSpace(a.Name) != name {
			continue
		}
		info.ReportsDir = strings.TrimSpace(a.ReportsDir)
		if a.Workers > 0 {
			info.Workers = a.Workers
		}
		break
	}
	return info, nil
}
