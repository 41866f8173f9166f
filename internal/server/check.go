package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gradekit/hwcheck/internal/archive"
	"github.com/gradekit/hwcheck/internal/db"
	"github.com/gradekit/hwcheck/internal/report"
	"github.com/gradekit/hwcheck/internal/runner"
	"github.com/gradekit/hwcheck/pkg/validator"
)

// multipartMemoryBytes bounds how much of the form is held in memory before
// spilling to disk; the request body itself is capped by MaxBytesReader.
const multipartMemoryBytes = 32 << 20

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeAPIError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	if s.db == nil || s.queries == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "server is not ready", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())
	defer r.Body.Close()

	if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeAPIError(w, http.StatusRequestEntityTooLarge, "archive too large",
				[]string{fmt.Sprintf("maximum allowed size is %d bytes", s.cfg.MaxUploadBytes())})
			return
		}
		writeAPIError(w, http.StatusBadRequest, "invalid multipart form", []string{err.Error()})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	req := checkRequest{
		Assignment: strings.TrimSpace(r.FormValue("assignment")),
		StudentID:  strings.TrimSpace(r.FormValue("student_id")),
	}
	if req.Assignment == "" {
		req.Assignment = s.cfg.DefaultAssignment
	}
	if err := s.validate.Struct(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid check request", validationDetails(err))
		return
	}

	file, header, err := r.FormFile("archive")
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "archive file field is required", []string{err.Error()})
		return
	}
	defer file.Close()

	filename := filepath.Base(strings.TrimSpace(header.Filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		writeAPIError(w, http.StatusBadRequest, "archive filename is required", nil)
		return
	}
	if !strings.EqualFold(filepath.Ext(filename), ".zip") {
		writeAPIError(w, http.StatusBadRequest, "archive must be a .zip file", nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeInternalAPIError(w, r, "read uploaded archive", err, "filename", filename)
		return
	}

	insp := archive.Inspect(bytes.NewReader(data), int64(len(data)))
	var res validator.Result
	if insp.IndexHTML != nil {
		res = validator.Validate(insp.IndexHTML)
	}

	var studentID *string
	if req.StudentID != "" {
		studentID = &req.StudentID
	}
	rep := report.Build(filename, req.Assignment, studentID, insp.Issues, res)

	runID, err := runner.NewRunID(time.Now())
	if err != nil {
		s.writeInternalAPIError(w, r, "generate run id", err)
		return
	}
	issuesJSON, err := json.Marshal(rep.FormatIssues)
	if err != nil {
		s.writeInternalAPIError(w, r, "encode report issues", err, "filename", filename)
		return
	}
	if err := s.queries.UpsertReport(r.Context(), db.ReportRow{
		RunID:      runID,
		StudentID:  studentID,
		Filename:   rep.Filename,
		Assignment: rep.Assignment,
		FormatOK:   rep.FormatOK,
		IssuesJSON: string(issuesJSON),
	}); err != nil {
		s.writeInternalAPIError(w, r, "index report", err, "filename", filename)
		return
	}

	s.logger.InfoContext(r.Context(), "submission checked",
		"filename", filename,
		"assignment", rep.Assignment,
		"format_ok", rep.FormatOK,
		"issues", len(rep.FormatIssues),
	)
	writeJSON(w, http.StatusOK, rep)
}
