package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gradekit/hwcheck/internal/report"
)

const defaultTimeout = 60 * time.Second

// APIClient talks to a running hwcheckd instance.
type APIClient struct {
	httpClient *http.Client
	baseURL    string
}

func New(baseURL string) (*APIClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("server url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("server url %q must use http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("server url %q is missing a host", baseURL)
	}
	return &APIClient{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
	}, nil
}

// CheckArchive uploads one zip archive and returns the daemon's report.
func (c *APIClient) CheckArchive(ctx context.Context, filename string, archive io.Reader, assignment, studentID string) (report.Report, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if assignment = strings.TrimSpace(assignment); assignment != "" {
		if err := mw.WriteField("assignment", assignment); err != nil {
			return report.Report{}, fmt.Errorf("encode assignment field: %w", err)
		}
	}
	if studentID = strings.TrimSpace(studentID); studentID != "" {
		if err := mw.WriteField("student_id", studentID); err != nil {
			return report.Report{}, fmt.Errorf("encode student_id field: %w", err)
		}
	}
	fw, err := mw.CreateFormFile("archive", filename)
	if err != nil {
		return report.Report{}, fmt.Errorf("encode archive field: %w", err)
	}
	if _, err := io.Copy(fw, archive); err != nil {
		return report.Report{}, fmt.Errorf("read archive %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return report.Report{}, fmt.Errorf("finish upload body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/check", body)
	if err != nil {
		return report.Report{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out report.Report
	if err := c.do(req, &out); err != nil {
		return report.Report{}, err
	}
	return out, nil
}

// ListReports fetches indexed reports matching the query.
func (c *APIClient) ListReports(ctx context.Context, q ReportsQuery) (ReportsResponse, error) {
	path := "/api/v1/reports"
	query := url.Values{}
	if v := strings.TrimSpace(q.Assignment); v != "" {
		query.Set("assignment", v)
	}
	if q.OnlyFailed {
		query.Set("failed", "true")
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		query.Set("offset", strconv.Itoa(q.Offset))
	}
	if encoded := query.Encode(); encoded != "" {
		path = path + "?" + encoded
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return ReportsResponse{}, err
	}
	var out ReportsResponse
	if err := c.do(req, &out); err != nil {
		return ReportsResponse{}, err
	}
	return out, nil
}

func (c *APIClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *APIClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("reach hwcheckd at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return mapAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode api response: %w", err)
	}
	return nil
}

type apiErrorPayload struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

func mapAPIError(resp *http.Response) error {
	payload := apiErrorPayload{}
	body, _ := io.ReadAll(resp.Body)
	if len(body) > 0 {
		_ = json.Unmarshal(body, &payload)
	}
	msg := strings.TrimSpace(payload.Error)
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = "request failed"
	}
	if len(payload.Details) > 0 {
		msg = msg + ": " + strings.Join(payload.Details, "; ")
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("invalid request: %s", msg)
	case http.StatusRequestEntityTooLarge:
		return fmt.Errorf("archive too large: %s", msg)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("server unavailable: %s", msg)
	default:
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error (%d): %s (check hwcheckd logs)", resp.StatusCode, msg)
		}
		return fmt.Errorf("request failed (%d): %s", resp.StatusCode, msg)
	}
}
