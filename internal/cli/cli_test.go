package cli

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/scanpulse/scanpulse/internal/config"
)

// --- Test helpers ---

// captureStdout runs fn and returns whatever it printed to os.Stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// withTestConfig points the global cfg at a test backend for the duration
// of the test.
func withTestConfig(t *testing.T, baseURL string) {
	t.Helper()
	old := cfg
	c := config.DefaultConfig()
	c.APIURL = baseURL
	c.HTTPTimeout = 2 * time.Second
	cfg = c
	t.Cleanup(func() { cfg = old })
}

// --- status ---

func TestStatusTextOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stats" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total_scans": 12,
			"total_findings": 47,
			"total_repos": 3,
			"severity": {"critical": 4, "high": 11, "medium": 20, "low": 12}
		}`))
	}))
	defer srv.Close()
	withTestConfig(t, srv.URL)

	statusRepo = ""
	statusFormat = "text"
	t.Cleanup(func() { statusFormat = "" })

	output := captureStdout(t, func() {
		if err := runStatus(statusCmd, nil); err != nil {
			t.Errorf("runStatus: %v", err)
		}
	})

	if !strings.Contains(output, "Findings: 47") {
		t.Errorf("missing findings total:\n%s", output)
	}
	if !strings.Contains(output, "critical=4") {
		t.Errorf("missing severity breakdown:\n%s", output)
	}
}

func TestStatusScopedQuery(t *testing.T) {
	var gotRepo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRepo = r.URL.Query().Get("repo")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	withTestConfig(t, srv.URL)

	statusRepo = "org/api"
	statusFormat = "json"
	t.Cleanup(func() { statusRepo = ""; statusFormat = "" })

	output := captureStdout(t, func() {
		if err := runStatus(statusCmd, nil); err != nil {
			t.Errorf("runStatus: %v", err)
		}
	})

	if gotRepo != "org/api" {
		t.Errorf("repo query = %q, want org/api", gotRepo)
	}
	if !strings.Contains(output, "{") {
		t.Errorf("expected JSON output, got:\n%s", output)
	}
}

func TestStatusServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	defer srv.Close()
	withTestConfig(t, srv.URL)

	err := runStatus(statusCmd, nil)
	if err == nil {
		t.Fatal("expected an error from a 502 backend")
	}
	if !strings.Contains(err.Error(), "HTTP 502") {
		t.Errorf("error = %v, want the HTTP status surfaced", err)
	}
}

// --- findings ---

func TestFindingsPagedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/findings/all" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("severity"); got != "Critical" {
			t.Errorf("severity query = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"findings": [{"id": 9, "severity": "Critical", "tool": "semgrep", "project": "org/api", "location": "main.go:10"}],
			"total": 16,
			"page": 2,
			"per_page": 15
		}`))
	}))
	defer srv.Close()
	withTestConfig(t, srv.URL)

	findingsSeverity = "Critical"
	findingsPage = 2
	t.Cleanup(func() { findingsSeverity = ""; findingsPage = 1 })

	output := captureStdout(t, func() {
		if err := runFindings(findingsCmd, nil); err != nil {
			t.Errorf("runFindings: %v", err)
		}
	})

	if !strings.Contains(output, "semgrep") {
		t.Errorf("missing finding row:\n%s", output)
	}
	if !strings.Contains(output, "Page 2/2 (16 total)") {
		t.Errorf("missing pagination footer:\n%s", output)
	}
}

func TestFindingsFallsBackToFlatEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/findings/all":
			http.Error(w, "no such route", http.StatusNotFound)
		case "/api/findings":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id": 3, "severity": "High", "tool": "bandit", "project": "org/web", "verdict": "true_positive"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	withTestConfig(t, srv.URL)

	output := captureStdout(t, func() {
		if err := runFindings(findingsCmd, nil); err != nil {
			t.Errorf("runFindings: %v", err)
		}
	})

	if !strings.Contains(output, "bandit") {
		t.Errorf("fallback row missing:\n%s", output)
	}
}

func TestFindingsRejectsBadPage(t *testing.T) {
	withTestConfig(t, "http://127.0.0.1:1")

	findingsPage = 0
	t.Cleanup(func() { findingsPage = 1 })

	if err := runFindings(findingsCmd, nil); err == nil {
		t.Error("expected an error for --page 0")
	}
}

// --- init-config ---

func TestInitConfigPrintsValidSample(t *testing.T) {
	output := captureStdout(t, func() {
		initConfigCmd.Run(initConfigCmd, nil)
	})

	if !strings.Contains(output, "api_url:") {
		t.Errorf("sample config missing api_url:\n%s", output)
	}
	if !strings.Contains(output, "poll_fast:") {
		t.Errorf("sample config missing poll cadences:\n%s", output)
	}
}
