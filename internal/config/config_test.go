package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.APIURL != "http://localhost:8001" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.PollFast != 5*time.Second || cfg.PollSlow != 15*time.Second || cfg.PollProgress != 2*time.Second {
		t.Errorf("cadences = %v/%v/%v", cfg.PollFast, cfg.PollSlow, cfg.PollProgress)
	}
	if cfg.PerPage != 15 {
		t.Errorf("PerPage = %d", cfg.PerPage)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scanpulse.yaml")
	content := `api_url: http://dash.example:9000
poll_fast: 3s
per_page: 25
format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.APIURL != "http://dash.example:9000" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.PollFast != 3*time.Second {
		t.Errorf("PollFast = %v", cfg.PollFast)
	}
	if cfg.PerPage != 25 {
		t.Errorf("PerPage = %d", cfg.PerPage)
	}
	// Unset fields keep defaults.
	if cfg.PollSlow != 15*time.Second {
		t.Errorf("PollSlow = %v, want default", cfg.PollSlow)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"empty api_url", func(c *Config) { c.APIURL = "" }, false},
		{"bad format", func(c *Config) { c.Format = "xml" }, false},
		{"zero cadence", func(c *Config) { c.PollFast = 0 }, false},
		{"negative per_page", func(c *Config) { c.PerPage = -1 }, false},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }, false},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		err := cfg.Validate()
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
