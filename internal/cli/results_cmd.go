package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gradekit/hwcheck/internal/db"
	"github.com/gradekit/hwcheck/internal/names"
	"github.com/gradekit/hwcheck/internal/output"
)

type resultsResponse struct {
	Total   int            `json:"total" yaml:"total"`
	Reports []resultRecord `json:"reports" yaml:"reports"`
}

// resultRecord mirrors the report wire format, extended with the run that
// produced the row and the check timestamp.
type resultRecord struct {
	RunID        string   `json:"run_id" yaml:"run_id"`
	StudentID    *string  `json:"student_id" yaml:"student_id"`
	Filename     string   `json:"filename" yaml:"filename"`
	Assignment   string   `json:"assignment" yaml:"assignment"`
	FormatOK     bool     `json:"format_ok" yaml:"format_ok"`
	FormatIssues []string `json:"format_issues" yaml:"format_issues"`
	CheckedAt    string   `json:"checked_at" yaml:"checked_at"`
}

func newResultsCmd() *cobra.Command {
	var (
		indexPath  string
		assignment string
		onlyFailed bool
		limit      int
		offset     int
		outputMode string
	)

	cmd := &cobra.Command{
		Use:   "results",
		Short: "List checked submissions from a results index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return err
			}
			if assignment != "" {
				if err := names.ValidateAssignmentName(assignment); err != nil {
					return err
				}
			}

			path := strings.TrimSpace(indexPath)
			if path == "" {
				path = strings.TrimSpace(rt.Config.Index)
			}
			if path == "" {
				return fmt.Errorf("no index database: pass --index or set index in config")
			}

			sqlDB, err := db.Open(db.DefaultOptions(path))
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			if err := db.RunMigrations(cmd.Context(), sqlDB); err != nil {
				return err
			}
			queries := db.NewQueries(sqlDB)

			rows, err := queries.ListReports(cmd.Context(), db.ReportFilter{
				Assignment: assignment,
				OnlyFailed: onlyFailed,
				Limit:      limit,
				Offset:     offset,
			})
			if err != nil {
				return err
			}
			total, err := queries.CountReports(cmd.Context(), db.ReportFilter{
				Assignment: assignment,
				OnlyFailed: onlyFailed,
			})
			if err != nil {
				return err
			}

			if format != output.FormatTable {
				resp, err := newResultsResponse(total, rows)
				if err != nil {
					return err
				}
				return output.WriteStructured(cmd.OutOrStdout(), format, resp)
			}

			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reports found.")
				return nil
			}

			tableRows := make([][]string, 0, len(rows))
			for _, r := range rows {
				issues, err := decodeIssues(r.IssuesJSON)
				if err != nil {
					return fmt.Errorf("decode issues for %s: %w", r.Filename, err)
				}
				firstIssue := "-"
				if len(issues) > 0 {
					firstIssue = output.Truncate(issues[0], 72)
				}
				tableRows = append(tableRows, []string{
					r.Assignment,
					r.Filename,
					output.OrNone(r.StudentID),
					strconv.FormatBool(r.FormatOK),
					strconv.Itoa(len(issues)),
					firstIssue,
					r.CheckedAt,
				})
			}
			headers := []string{"ASSIGNMENT", "FILENAME", "STUDENT", "FORMAT_OK", "ISSUES", "FIRST_ISSUE", "CHECKED_AT"}
			if err := output.WriteTable(cmd.OutOrStdout(), headers, tableRows); err != nil {
				return err
			}
			if total > len(rows) {
				fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d report(s).\n", len(rows), total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&indexPath, "index", "", "Path to the results index database")
	cmd.Flags().StringVar(&assignment, "assignment", "", "Filter by assignment name")
	cmd.Flags().BoolVar(&onlyFailed, "failed", false, "Only show submissions with format issues")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows (0 means all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip before listing")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "table", "Output format (table|json|yaml)")

	return cmd
}

func newResultsResponse(total int, rows []db.ReportRow) (resultsResponse, error) {
	resp := resultsResponse{Total: total, Reports: make([]resultRecord, 0, len(rows))}
	for _, r := range rows {
		issues, err := decodeIssues(r.IssuesJSON)
		if err != nil {
			return resultsResponse{}, fmt.Errorf("decode issues for %s: %w", r.Filename, err)
		}
		resp.Reports = append(resp.Reports, resultRecord{
			RunID:        r.RunID,
			StudentID:    r.StudentID,
			Filename:     r.Filename,
			Assignment:   r.Assignment,
			FormatOK:     r.FormatOK,
			FormatIssues: issues,
			CheckedAt:    r.CheckedAt,
		})
	}
	return resp, nil
}

func decodeIssues(issuesJSON string) ([]string, error) {
	issues := []string{}
	if strings.TrimSpace(issuesJSON) == "" {
		return issues, nil
	}
	if err := json.Unmarshal([]byte(issuesJSON), &issues); err != nil {
		return nil, err
	}
	return issues, nil
}
