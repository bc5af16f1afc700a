package models

// FindingSummary is one row of the findings table.
type FindingSummary struct {
	ID           int     `json:"id"`
	Tool         string  `json:"tool"`
	Severity     string  `json:"severity"`
	RiskScore    float64 `json:"risk_score"`
	Location     string  `json:"location"`
	Project      string  `json:"project"`
	AIVerdict    string  `json:"ai_verdict"`
	AIConfidence float64 `json:"ai_confidence"`
	HasFix       bool    `json:"has_fix"`
}

// FindingsPage is a fully replaced page of finding summaries. Server-side
// sort and filtering can reorder rows between polls, so pages are never
// patched incrementally.
type FindingsPage struct {
	Findings []FindingSummary `json:"findings"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PerPage  int              `json:"per_page"`

	// Fallback is set when the page was synthesized from the unpaginated
	// endpoint; pagination controls are disabled for that render cycle.
	Fallback bool `json:"-"`
}

// FindingDetail is the full record for one finding, loaded on demand.
type FindingDetail struct {
	ID               int     `json:"id"`
	Tool             string  `json:"tool"`
	RuleID           string  `json:"rule_id"`
	Severity         string  `json:"severity"`
	RiskScore        float64 `json:"risk_score"`
	File             string  `json:"file"`
	Line             int     `json:"line"`
	Message          string  `json:"message"`
	Snippet          string  `json:"snippet"`
	AIVerdict        string  `json:"ai_verdict"`
	AIConfidence     float64 `json:"ai_confidence"`
	AIReasoning      string  `json:"ai_reasoning"`
	RemediationPatch string  `json:"remediation_patch"`
	PRURL            string  `json:"pr_url"`
	Project          string  `json:"project"`
	CreatedAt        string  `json:"created_at"`
}

// FilterOptions lists the distinct facet values for the filter menus.
type FilterOptions struct {
	Repos      []string `json:"repos"`
	Tools      []string `json:"tools"`
	Severities []string `json:"severities"`
}
