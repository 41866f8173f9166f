package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gradekit/hwcheck/internal/archive"
	"github.com/gradekit/hwcheck/internal/db"
	"github.com/gradekit/hwcheck/internal/report"
	"github.com/gradekit/hwcheck/pkg/validator"
)

const defaultWorkers = 4

// Options configures one batch run. Index is optional; when set, every
// report is also upserted into the results index.
type Options struct {
	SubmissionsDir string
	ReportsDir     string
	Assignment     string
	Workers        int
	Index          *db.Queries
}

// Outcome records what happened to one submission. Err is an operational
// failure (unreadable file, report write failure); format defects live in
// the report itself.
type Outcome struct {
	Filename   string
	ReportPath string
	FormatOK   bool
	IssueCount int
	Err        error
}

// Summary describes a completed batch. Outcomes are ordered by filename.
type Summary struct {
	RunID      string
	Assignment string
	Started    time.Time
	Finished   time.Time
	Outcomes   []Outcome
}

// Passed counts submissions checked cleanly with no format issues.
func (s Summary) Passed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err == nil && o.FormatOK {
			n++
		}
	}
	return n
}

// Failed counts submissions whose report carries at least one issue.
func (s Summary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err == nil && !o.FormatOK {
			n++
		}
	}
	return n
}

// Errored counts submissions that could not be checked at all.
func (s Summary) Errored() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Run checks every zip archive directly inside SubmissionsDir and writes one
// report per archive into ReportsDir. A submission that fails to check does
// not abort the batch; its outcome carries the error instead.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if strings.TrimSpace(opts.SubmissionsDir) == "" {
		return Summary{}, fmt.Errorf("submissions directory is required")
	}
	if strings.TrimSpace(opts.ReportsDir) == "" {
		return Summary{}, fmt.Errorf("reports directory is required")
	}
	if strings.TrimSpace(opts.Assignment) == "" {
		return Summary{}, fmt.Errorf("assignment name is required")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	runID, err := NewRunID(time.Now())
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{RunID: runID, Assignment: opts.Assignment, Started: time.Now()}

	entries, err := os.ReadDir(opts.SubmissionsDir)
	if err != nil {
		return summary, fmt.Errorf("read submissions directory %s: %w", opts.SubmissionsDir, err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".zip") {
			continue
		}
		files = append(files, e.Name())
	}

	outcomes := make([]Outcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			outcomes[i] = checkOne(gctx, opts, runID, name)
			return nil
		})
	}
	_ = g.Wait()

	summary.Outcomes = outcomes
	summary.Finished = time.Now()
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

func checkOne(ctx context.Context, opts Options, runID, name string) Outcome {
	out := Outcome{Filename: name}
	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}

	insp, err := archive.InspectFile(filepath.Join(opts.SubmissionsDir, name))
	if err != nil {
		out.Err = err
		return out
	}
	var res validator.Result
	if insp.IndexHTML != nil {
		res = validator.Validate(insp.IndexHTML)
	}
	rep := report.Build(name, opts.Assignment, nil, insp.Issues, res)

	path, err := report.WriteFile(opts.ReportsDir, rep)
	if err != nil {
		out.Err = err
		return out
	}
	out.ReportPath = path
	out.FormatOK = rep.FormatOK
	out.IssueCount = len(rep.FormatIssues)

	if opts.Index != nil {
		issuesJSON, err := json.Marshal(rep.FormatIssues)
		if err != nil {
			out.Err = fmt.Errorf("marshal issues for %s: %w", name, err)
			return out
		}
		if err := opts.Index.UpsertReport(ctx, db.ReportRow{
			RunID:      runID,
			StudentID:  rep.StudentID,
			Filename:   rep.Filename,
			Assignment: rep.Assignment,
			FormatOK:   rep.FormatOK,
			IssuesJSON: string(issuesJSON),
		}); err != nil {
			out.Err = fmt.Errorf("index report for %s: %w", name, err)
			return out
		}
	}
	return out
}
