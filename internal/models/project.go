package models

// Project is one tracked repository. Identity is the owner/repo name.
type Project struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Branch   string `json:"branch"`
	IsActive bool   `json:"is_active"`
	LastRun  string `json:"last_run"`
}

// ActivityEntry is one in-flight scan from the activity feed.
type ActivityEntry struct {
	ID        int    `json:"id"`
	Project   string `json:"project"`
	Provider  string `json:"provider"`
	Status    string `json:"status"`
	StartTime string `json:"start_time"`
	Branch    string `json:"branch"`
}

// ScanProgress is the fine-grained progress of one scan.
type ScanProgress struct {
	ScanID      int    `json:"scan_id"`
	Status      string `json:"status"`
	Stage       string `json:"stage"`
	StepDesc    string `json:"step_description"`
	Step        int    `json:"step"`
	TotalSteps  int    `json:"total_steps"`
	ProgressPct int    `json:"progress_percent"`
}
