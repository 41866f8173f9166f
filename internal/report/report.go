package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gradekit/hwcheck/pkg/validator"
)

// Report is the per-submission result written to disk and served over the
// API. Field order matches the wire shape graders already consume.
type Report struct {
	StudentID    *string  `json:"student_id" yaml:"student_id"`
	Filename     string   `json:"filename" yaml:"filename"`
	Assignment   string   `json:"assignment" yaml:"assignment"`
	FormatOK     bool     `json:"format_ok" yaml:"format_ok"`
	FormatIssues []string `json:"format_issues" yaml:"format_issues"`
}

// Build merges archive-level issues with document issues, zip issues first,
// and derives format_ok from the merged list. StudentID stays nil until a
// roster lookup fills it in.
func Build(filename, assignment string, studentID *string, zipIssues []string, res validator.Result) Report {
	issues := make([]string, 0, len(zipIssues)+len(res.Issues))
	issues = append(issues, zipIssues...)
	issues = append(issues, res.Messages()...)
	return Report{
		StudentID:    studentID,
		Filename:     filename,
		Assignment:   assignment,
		FormatOK:     len(issues) == 0,
		FormatIssues: issues,
	}
}

// Stem strips the final extension from a submission filename, mirroring how
// report files are named after their archive.
func Stem(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// Encode renders the report as two-space-indented JSON with a trailing
// newline.
func Encode(r Report) ([]byte, error) {
	if r.FormatIssues == nil {
		r.FormatIssues = []string{}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report for %s: %w", r.Filename, err)
	}
	return append(data, '\n'), nil
}

// WriteFile writes the report to dir/<stem>.json, replacing any previous
// report atomically. It returns the path written.
func WriteFile(dir string, r Report) (string, error) {
	data, err := Encode(r)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, Stem(r.Filename)+".json")

	tmp, err := os.CreateTemp(dir, ".report-*.json")
	if err != nil {
		return "", fmt.Errorf("create temp report in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("chmod temp report %s: %w", tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write temp report %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp report %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("replace report file %s: %w", path, err)
	}

	cleanup = false
	return path, nil
}
