// Package models defines the snapshot types returned by the findings
// pipeline API. Each type is a complete replacement value for one resource;
// snapshots are never partially merged.
package models

// StatsSnapshot is the aggregate statistics payload from /api/stats.
// Numeric fields absent from the response decode to zero.
type StatsSnapshot struct {
	TotalScans    int              `json:"total_scans"`
	TotalFindings int              `json:"total_findings"`
	TotalRepos    int              `json:"total_repos"`
	Severity      SeverityCounts   `json:"severity"`
	AIMetrics     AIMetrics        `json:"ai_metrics"`
	DevSecOps     DevSecOpsMetrics `json:"devsecops_metrics"`
	SystemHealth  SystemHealth     `json:"system_health"`
}

// SeverityCounts is the severity breakdown of all findings in scope.
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// AIMetrics summarizes triage-agent performance.
type AIMetrics struct {
	FalsePositives int     `json:"false_positives"`
	AutoFixed      int     `json:"auto_fixed"`
	EfficacyPct    float64 `json:"efficacy_percent"`
	ConfidenceAvg  float64 `json:"confidence_avg"`
}

// DevSecOpsMetrics carries the pipeline-level metrics and the trend variant.
type DevSecOpsMetrics struct {
	MTTFHours        float64        `json:"mttf_hours"`
	MTTFAIHours      float64        `json:"mttf_ai_hours"`
	MTTFManualHours  float64        `json:"mttf_manual_hours"`
	CIDistribution   map[string]int `json:"ci_distribution"`
	ToolDistribution map[string]int `json:"tool_distribution"`
	RiskPerRepo      []RepoRisk     `json:"risk_per_repo"`
	TrendData        TrendData      `json:"trend_data"`
}

// RepoRisk ranks one repository by accumulated risk score.
type RepoRisk struct {
	Repo string  `json:"repo"`
	Risk float64 `json:"risk"`
}

// SystemHealth reports backend component status.
type SystemHealth struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
	Status   string `json:"status"`
}
