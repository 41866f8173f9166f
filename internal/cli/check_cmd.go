package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gradekit/hwcheck/internal/config"
	"github.com/gradekit/hwcheck/internal/db"
	"github.com/gradekit/hwcheck/internal/output"
	"github.com/gradekit/hwcheck/internal/runner"
)

type checkResponse struct {
	RunID      string        `json:"runId" yaml:"runId"`
	Assignment string        `json:"assignment" yaml:"assignment"`
	Checked    int           `json:"checked" yaml:"checked"`
	Passed     int           `json:"passed" yaml:"passed"`
	Failed     int           `json:"failed" yaml:"failed"`
	Errored    int           `json:"errored" yaml:"errored"`
	Results    []checkResult `json:"results" yaml:"results"`
}

type checkResult struct {
	Filename string `json:"filename" yaml:"filename"`
	FormatOK bool   `json:"formatOk" yaml:"formatOk"`
	Issues   int    `json:"issues" yaml:"issues"`
	Report   string `json:"report,omitempty" yaml:"report,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newCheckCmd() *cobra.Command {
	var (
		assignment  string
		workers     int
		indexPath   string
		outputMode  string
		failNonzero bool
	)

	cmd := &cobra.Command{
		Use:   "check <submissions-dir> [reports-dir]",
		Short: "Check every zip submission in a directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return err
			}
			info, err := config.ResolveAssignment(rt.Config, assignment)
			if err != nil {
				return err
			}

			reportsDir := info.ReportsDir
			if len(args) == 2 {
				reportsDir = args[1]
			}
			if strings.TrimSpace(reportsDir) == "" {
				return fmt.Errorf("reports directory is required: pass it as the second argument or set reports-dir on the assignment")
			}

			w := workers
			if w <= 0 {
				w = info.Workers
			}

			var queries *db.Queries
			path := strings.TrimSpace(indexPath)
			if path == "" {
				path = strings.TrimSpace(rt.Config.Index)
			}
			if path != "" {
				sqlDB, err := db.Open(db.DefaultOptions(path))
				if err != nil {
					return err
				}
				defer sqlDB.Close()
				if err := db.RunMigrations(cmd.Context(), sqlDB); err != nil {
					return err
				}
				queries = db.NewQueries(sqlDB)
			}

			summary, err := runner.Run(cmd.Context(), runner.Options{
				SubmissionsDir: args[0],
				ReportsDir:     reportsDir,
				Assignment:     info.Name,
				Workers:        w,
				Index:          queries,
			})
			if err != nil {
				return err
			}

			if format != output.FormatTable {
				if err := output.WriteStructured(cmd.OutOrStdout(), format, newCheckResponse(summary)); err != nil {
					return err
				}
				return checkExitStatus(summary, failNonzero)
			}

			if len(summary.Outcomes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No submissions found.")
				return nil
			}

			rows := make([][]string, 0, len(summary.Outcomes))
			for _, o := range summary.Outcomes {
				result := "ok"
				switch {
				case o.Err != nil:
					result = "error"
				case !o.FormatOK:
					result = "issues"
				}
				report := o.ReportPath
				if report == "" {
					report = "-"
				}
				rows = append(rows, []string{o.Filename, result, strconv.Itoa(o.IssueCount), report})
			}
			if err := output.WriteTable(cmd.OutOrStdout(), []string{"FILENAME", "RESULT", "ISSUES", "REPORT"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nRun %s: %d checked, %d ok, %d with issues, %d errored\n",
				summary.RunID, len(summary.Outcomes), summary.Passed(), summary.Failed(), summary.Errored())
			for _, o := range summary.Outcomes {
				if o.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error checking %s: %v\n", o.Filename, o.Err)
				}
			}

			return checkExitStatus(summary, failNonzero)
		},
	}

	cmd.Flags().StringVar(&assignment, "assignment", "", "Assignment name (defaults to current-assignment)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent checks (defaults to the assignment profile)")
	cmd.Flags().StringVar(&indexPath, "index", "", "Also record reports in this index database")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "table", "Output format (table|json|yaml)")
	cmd.Flags().BoolVar(&failNonzero, "fail-nonzero", false, "Exit with code 3 when any submission has format issues")

	return cmd
}

func newCheckResponse(summary runner.Summary) checkResponse {
	resp := checkResponse{
		RunID:      summary.RunID,
		Assignment: summary.Assignment,
		Checked:    len(summary.Outcomes),
		Passed:     summary.Passed(),
		Failed:     summary.Failed(),
		Errored:    summary.Errored(),
		Results:    make([]checkResult, 0, len(summary.Outcomes)),
	}
	for _, o := range summary.Outcomes {
		r := checkResult{
			Filename: o.Filename,
			FormatOK: o.Err == nil && o.FormatOK,
			Issues:   o.IssueCount,
			Report:   o.ReportPath,
		}
		if o.Err != nil {
			r.Error = o.Err.Error()
		}
		resp.Results = append(resp.Results, r)
	}
	return resp
}

// checkExitStatus turns batch results into the process exit status. Reports
// are still written for the rest of the batch when some submissions errored.
func checkExitStatus(summary runner.Summary, failNonzero bool) error {
	if n := summary.Errored(); n > 0 {
		return fmt.Errorf("%d submission(s) could not be checked", n)
	}
	if failNonzero {
		if n := summary.Failed(); n > 0 {
			return exitCodeError(ExitIssues, fmt.Errorf("%d submission(s) have format issues", n))
		}
	}
	return nil
}
