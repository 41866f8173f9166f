package db

// ReportRow mirrors one row of the reports table. IssuesJSON carries the
// format_issues array exactly as written to the report file; StudentID is
// nil until a roster match fills it in.
type ReportRow struct {
	ID         int64
	RunID      string
	StudentID  *string
	Filename   string
	Assignment string
	FormatOK   bool
	IssuesJSON string
	CheckedAt  string
}
