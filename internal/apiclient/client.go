// Package apiclient talks to the findings-pipeline dashboard API. Each
// method issues one request and returns a typed snapshot or a classified
// error; methods never touch shared view state.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/scanpulse/scanpulse/internal/models"
)

// Client fetches resource snapshots from the dashboard API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an API client. Timeout semantics are delegated to the
// underlying transport; a timed-out fetch surfaces as a transport error.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// getJSON issues GET baseURL+path?query and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &Error{Kind: KindServer, Op: op, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindDecode, Op: op, Err: err}
	}
	return nil
}

// Stats returns aggregate statistics, scoped to one repo when scope is
// non-empty.
func (c *Client) Stats(ctx context.Context, scope string) (*models.StatsSnapshot, error) {
	q := url.Values{}
	if scope != "" {
		q.Set("repo", scope)
	}
	var snap models.StatsSnapshot
	if err := c.getJSON(ctx, "stats", "/api/stats", q, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Projects returns all tracked projects.
func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.getJSON(ctx, "projects", "/api/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Filters returns the distinct facet values for the filter menus.
func (c *Client) Filters(ctx context.Context) (*models.FilterOptions, error) {
	var opts models.FilterOptions
	if err := c.getJSON(ctx, "filters", "/api/filters", nil, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// FindingsQuery carries the pagination and filter parameters for a paged
// findings fetch.
type FindingsQuery struct {
	Page     int
	PerPage  int
	Repo     string
	Tool     string
	Severity string
}

// Findings returns one page of the findings table.
func (c *Client) Findings(ctx context.Context, fq FindingsQuery) (*models.FindingsPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(fq.Page))
	q.Set("per_page", strconv.Itoa(fq.PerPage))
	if fq.Repo != "" {
		q.Set("repo", fq.Repo)
	}
	if fq.Tool != "" {
		q.Set("tool", fq.Tool)
	}
	if fq.Severity != "" {
		q.Set("severity", fq.Severity)
	}

	var page models.FindingsPage
	if err := c.getJSON(ctx, "findings", "/api/findings/all", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// flatFinding mirrors the unpaginated endpoint, which names the verdict
// field differently and omits the fix flag.
type flatFinding struct {
	ID           int     `json:"id"`
	Tool         string  `json:"tool"`
	Severity     string  `json:"severity"`
	RiskScore    float64 `json:"risk_score"`
	Location     string  `json:"location"`
	Project      string  `json:"project"`
	Verdict      string  `json:"verdict"`
	AIConfidence float64 `json:"ai_confidence"`
}

// FindingsFallback retries against the simpler unpaginated endpoint and
// synthesizes a single-page result from it.
func (c *Client) FindingsFallback(ctx context.Context, repo string) (*models.FindingsPage, error) {
	q := url.Values{}
	if repo != "" {
		q.Set("repo", repo)
	}
	var flat []flatFinding
	if err := c.getJSON(ctx, "findings-fallback", "/api/findings", q, &flat); err != nil {
		return nil, err
	}

	rows := make([]models.FindingSummary, 0, len(flat))
	for _, f := range flat {
		rows = append(rows, models.FindingSummary{
			ID:           f.ID,
			Tool:         f.Tool,
			Severity:     f.Severity,
			RiskScore:    f.RiskScore,
			Location:     f.Location,
			Project:      f.Project,
			AIVerdict:    f.Verdict,
			AIConfidence: f.AIConfidence,
		})
	}

	perPage := len(rows)
	if perPage == 0 {
		perPage = 1
	}
	return &models.FindingsPage{
		Findings: rows,
		Total:    len(rows),
		Page:     1,
		PerPage:  perPage,
		Fallback: true,
	}, nil
}

// FindingDetail returns the full record for one finding.
func (c *Client) FindingDetail(ctx context.Context, id int) (*models.FindingDetail, error) {
	// The backend answers a missing id with 200 {"error": "..."} rather
	// than a 404.
	var body struct {
		models.FindingDetail
		Error string `json:"error"`
	}
	if err := c.getJSON(ctx, "finding-detail", fmt.Sprintf("/api/finding/%d", id), nil, &body); err != nil {
		return nil, err
	}
	if body.Error != "" {
		return nil, &Error{Kind: KindServer, Op: "finding-detail", Err: fmt.Errorf("%s", body.Error)}
	}
	return &body.FindingDetail, nil
}

// Activity returns the currently running scans.
func (c *Client) Activity(ctx context.Context) ([]models.ActivityEntry, error) {
	var entries []models.ActivityEntry
	if err := c.getJSON(ctx, "activity", "/api/activity", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Progress returns the fine-grained progress of one scan. The backend
// reports a degraded progress store as 200 {"error": "..."}; that surfaces
// as a server failure so callers keep the last known value instead of
// rendering a zeroed record.
func (c *Client) Progress(ctx context.Context, scanID int) (*models.ScanProgress, error) {
	var body struct {
		models.ScanProgress
		Error string `json:"error"`
	}
	if err := c.getJSON(ctx, "progress", fmt.Sprintf("/api/scan/%d/progress", scanID), nil, &body); err != nil {
		return nil, err
	}
	if body.Error != "" {
		return nil, &Error{Kind: KindServer, Op: "progress", Err: fmt.Errorf("%s", body.Error)}
	}
	prog := body.ScanProgress
	if prog.ProgressPct > 100 {
		prog.ProgressPct = 100
	}
	return &prog, nil
}

// deleteResponse covers the shapes the delete endpoint can answer with.
type deleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// DeleteProject removes a project and all its scans. A server-reported
// failure is returned as a KindServer error carrying the server's message.
func (c *Client) DeleteProject(ctx context.Context, repo string) error {
	q := url.Values{}
	q.Set("repo", repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/project?"+q.Encode(), nil)
	if err != nil {
		return &Error{Kind: KindTransport, Op: "delete-project", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Op: "delete-project", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	var body deleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if resp.StatusCode == http.StatusOK {
			// A 200 with an unreadable body still counts as deleted.
			return nil
		}
		// Non-2xx with a non-JSON body: the status line is the most useful
		// message the user can get.
		return &Error{Kind: KindServer, Op: "delete-project", Err: fmt.Errorf("%s", resp.Status)}
	}

	if body.Error != "" {
		return &Error{Kind: KindServer, Op: "delete-project", Err: fmt.Errorf("%s", body.Error)}
	}
	if resp.StatusCode != http.StatusOK || body.Status == "error" {
		msg := body.Message
		if msg == "" {
			msg = resp.Status
		}
		return &Error{Kind: KindServer, Op: "delete-project", Err: fmt.Errorf("%s", msg)}
	}
	return nil
}
