package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gradekit/hwcheck/internal/db"
)

type reportsResponse struct {
	Total   int            `json:"total"`
	Reports []reportRecord `json:"reports"`
}

// reportRecord mirrors the report wire format plus the indexing metadata.
type reportRecord struct {
	RunID        string   `json:"run_id"`
	StudentID    *string  `json:"student_id"`
	Filename     string   `json:"filename"`
	Assignment   string   `json:"assignment"`
	FormatOK     bool     `json:"format_ok"`
	FormatIssues []string `json:"format_issues"`
	CheckedAt    string   `json:"checked_at"`
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeAPIError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	if s.db == nil || s.queries == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "server is not ready", nil)
		return
	}

	query := reportsQuery{Assignment: strings.TrimSpace(r.URL.Query().Get("assignment"))}
	onlyFailed := false
	if raw := strings.TrimSpace(r.URL.Query().Get("failed")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid failed query parameter", []string{err.Error()})
			return
		}
		onlyFailed = parsed
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid limit query parameter", []string{err.Error()})
			return
		}
		query.Limit = parsed
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("offset")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid offset query parameter", []string{err.Error()})
			return
		}
		query.Offset = parsed
	}
	if err := s.validate.Struct(&query); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid reports query", validationDetails(err))
		return
	}

	rows, err := s.queries.ListReports(r.Context(), db.ReportFilter{
		Assignment: query.Assignment,
		OnlyFailed: onlyFailed,
		Limit:      query.Limit,
		Offset:     query.Offset,
	})
	if err != nil {
		s.writeInternalAPIError(w, r, "list reports", err)
		return
	}
	total, err := s.queries.CountReports(r.Context(), db.ReportFilter{
		Assignment: query.Assignment,
		OnlyFailed: onlyFailed,
	})
	if err != nil {
		s.writeInternalAPIError(w, r, "count reports", err)
		return
	}

	resp := reportsResponse{Total: total, Reports: make([]reportRecord, 0, len(rows))}
	for _, row := range rows {
		issues := []string{}
		if row.IssuesJSON != "" {
			if err := json.Unmarshal([]byte(row.IssuesJSON), &issues); err != nil {
				s.writeInternalAPIError(w, r, "decode stored issues", err, "filename", row.Filename)
				return
			}
		}
		resp.Reports = append(resp.Reports, reportRecord{
			RunID:        row.RunID,
			StudentID:    row.StudentID,
			Filename:     row.Filename,
			Assignment:   row.Assignment,
			FormatOK:     row.FormatOK,
			FormatIssues: issues,
			CheckedAt:    row.CheckedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
