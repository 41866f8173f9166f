package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type queryer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type Queries struct {
	db queryer
}

func NewQueries(db queryer) *Queries {
	return &Queries{db: db}
}

// UpsertReport records the latest check of (assignment, filename). Re-checks
// replace the previous row and refresh checked_at.
func (q *Queries) UpsertReport(ctx context.Context, in ReportRow) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO reports(run_id, student_id, filename, assignment, format_ok, issues_json)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(assignment, filename) DO UPDATE SET
  run_id=excluded.run_id,
  student_id=excluded.student_id,
  format_ok=excluded.format_ok,
  issues_json=excluded.issues_json,
  checked_at=strftime('%Y-%m-%dT%H:%M:%fZ','now')
`, in.RunID, in.StudentID, in.Filename, in.Assignment, in.FormatOK, in.IssuesJSON)
	if err != nil {
		return fmt.Errorf("upsert report: %w", err)
	}
	return nil
}

func (q *Queries) GetReport(ctx context.Context, assignment, filename string) (ReportRow, error) {
	var out ReportRow
	err := q.db.QueryRowContext(ctx, `SELECT id, run_id, student_id, filename, assignment, format_ok, issues_json, checked_at FROM reports WHERE assignment = ? AND filename = ?`, assignment, filename).
		Scan(&out.ID, &out.RunID, &out.StudentID, &out.Filename, &out.Assignment, &out.FormatOK, &out.IssuesJSON, &out.CheckedAt)
	if err != nil {
		return out, fmt.Errorf("get report: %w", err)
	}
	return out, nil
}

// ReportFilter narrows ListReports and CountReports. Zero values mean no
// constraint; Limit <= 0 disables pagination.
type ReportFilter struct {
	Assignment string
	OnlyFailed bool
	Limit      int
	Offset     int
}

func (f ReportFilter) whereClause() (string, []any) {
	clauses := []string{}
	args := []any{}
	if strings.TrimSpace(f.Assignment) != "" {
		clauses = append(clauses, "assignment = ?")
		args = append(args, f.Assignment)
	}
	if f.OnlyFailed {
		clauses = append(clauses, "format_ok = 0")
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (q *Queries) ListReports(ctx context.Context, f ReportFilter) ([]ReportRow, error) {
	where, args := f.whereClause()
	query := `SELECT id, run_id, student_id, filename, assignment, format_ok, issues_json, checked_at FROM reports` + where + ` ORDER BY assignment, filename`
	if f.Limit > 0 {
		offset := f.Offset
		if offset < 0 {
			offset = 0
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, offset)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	out := []ReportRow{}
	for rows.Next() {
		var row ReportRow
		if err := rows.Scan(&row.ID, &row.RunID, &row.StudentID, &row.Filename, &row.Assignment, &row.FormatOK, &row.IssuesJSON, &row.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report rows: %w", err)
	}
	return out, nil
}

func (q *Queries) CountReports(ctx context.Context, f ReportFilter) (int, error) {
	where, args := f.whereClause()
	var n int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return n, nil
}
