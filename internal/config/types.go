package config

import (
	"fmt"
	"strings"

	"github.com/gradekit/hwcheck/internal/names"
)

const (
	EnvConfigPath     = "HWCHECK_CONFIG"
	DefaultAPIVersion = "gradekit.dev/v1"
	DefaultWorkers    = 4
)

// Config is the hwcheck CLI configuration file structure. Everything in it
// is optional; flags win over file values.
type Config struct {
	APIVersion        string       `yaml:"apiVersion,omitempty"`
	CurrentAssignment string       `yaml:"current-assignment,omitempty"`
	Workers           int          `yaml:"workers,omitempty"`
	Index             string       `yaml:"index,omitempty"`
	Assignments       []Assignment `yaml:"assignments,omitempty"`
}

// Assignment defines per-assignment defaults for the check command.
type Assignment struct {
	Name       string `yaml:"name"`
	ReportsDir string `yaml:"reports-dir,omitempty"`
	Workers    int    `yaml:"workers,omitempty"`
}

// AssignmentInfo is the resolved profile the check command runs with.
type AssignmentInfo struct {
	Name       string
	ReportsDir string
	Workers    int
}

func (c *Config) normalize() {
	if strings.TrimSpace(c.APIVersion) == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
}

// Validate checks config invariants that must hold for the file to be usable.
func (c Config) Validate() error {
	if name := strings.TrimSpace(c.CurrentAssignment); name != "" {
		if err := names.ValidateAssignmentName(name); err != nil {
			return fmt.Errorf("current-assignment: %w", err)
		}
	}

	seen := make(map[string]struct{}, len(c.Assignments))
	for i, a := range c.Assignments {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return fmt.Errorf("assignments[%d].name is required", i)
		}
		if err := names.ValidateAssignmentName(name); err != nil {
			return fmt.Errorf("assignments[%d]: %w", i, err)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("duplicate assignment name %q", name)
		}
		seen[name] = struct{}{}

		if a.Workers < 0 {
			return fmt.Errorf("assignment %q: workers must be >= 0", name)
		}
	}

	return nil
}
