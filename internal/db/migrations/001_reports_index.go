package migrations

type Migration struct {
	Version int
	Name    string
	UpSQL   string
}

const reportsIndexSQL = `
CREATE TABLE IF NOT EXISTS reports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    student_id TEXT,
    filename TEXT NOT NULL,
    assignment TEXT NOT NULL,
    format_ok INTEGER NOT NULL,
    issues_json TEXT NOT NULL DEFAULT '[]',
    checked_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    UNIQUE(assignment, filename)
);

CREATE INDEX IF NOT EXISTS idx_reports_run_id ON reports(run_id);
CREATE INDEX IF NOT EXISTS idx_reports_assignment_format_ok ON reports(assignment, format_ok);
`

func All() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "reports_index",
			UpSQL:   reportsIndexSQL,
		},
	}
}
