package client

// ReportsQuery filters the daemon's report listing.
type ReportsQuery struct {
	Assignment string
	OnlyFailed bool
	Limit      int
	Offset     int
}

type ReportsResponse struct {
	Total   int            `json:"total" yaml:"total"`
	Reports []ReportRecord `json:"reports" yaml:"reports"`
}

type ReportRecord struct {
	RunID        string   `json:"run_id" yaml:"run_id"`
	StudentID    *string  `json:"student_id" yaml:"student_id"`
	Filename     string   `json:"filename" yaml:"filename"`
	Assignment   string   `json:"assignment" yaml:"assignment"`
	FormatOK     bool     `json:"format_ok" yaml:"format_ok"`
	FormatIssues []string `json:"format_issues" yaml:"format_issues"`
	CheckedAt    string   `json:"checked_at" yaml:"checked_at"`
}
