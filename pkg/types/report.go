// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ReportSummary is the headline block of a void report.
type ReportSummary struct {
	VoidMapID    string  `json:"void_map_id" yaml:"void_map_id"`
	TotalGaps    int     `json:"total_gaps" yaml:"total_gaps"`
	VoidDensity  float64 `json:"void_density" yaml:"void_density"`
	Navigability float64 `json:"navigability" yaml:"navigability"`
	Connectivity float64 `json:"connectivity" yaml:"connectivity"`
}

// CriticalFinding is one blocking gap surfaced at the top of the report.
type CriticalFinding struct {
	GapID       string       `json:"gap_id" yaml:"gap_id"`
	Description string       `json:"description" yaml:"description"`
	Type        VoidType     `json:"type" yaml:"type"`
	Certainty   GapCertainty `json:"certainty" yaml:"certainty"`
}

// PathStep is one step of a navigation plan. Strategies populate different
// subsets of the optional fields.
type PathStep struct {
	GapID       string `json:"gap_id" yaml:"gap_id"`
	Description string `json:"description" yaml:"description"`
	Action      string `json:"action" yaml:"action"`

	EstimatedCost float64 `json:"estimated_cost,omitempty" yaml:"estimated_cost,omitempty"`
	EstimatedTime float64 `json:"estimated_time,omitempty" yaml:"estimated_time,omitempty"`

	// Rationale explains why this step was chosen (boundary skirting).
	Rationale string `json:"rationale,omitempty" yaml:"rationale,omitempty"`

	// BridgeType and BoundaryConditions are set by void bridging.
	BridgeType         string   `json:"bridge_type,omitempty" yaml:"bridge_type,omitempty"`
	BoundaryConditions []string `json:"boundary_conditions,omitempty" yaml:"boundary_conditions,omitempty"`

	// Circumvention and Risk are set by constraint circumvention.
	Circumvention string `json:"circumvention,omitempty" yaml:"circumvention,omitempty"`
	Risk          string `json:"risk,omitempty" yaml:"risk,omitempty"`
}

// NavigationPlan is the ordered remediation path produced by one
// navigation strategy.
type NavigationPlan struct {
	Strategy string     `json:"strategy" yaml:"strategy"`
	Path     []PathStep `json:"path" yaml:"path"`
	Summary  string     `json:"summary" yaml:"summary"`

	TotalEstimatedCost float64 `json:"total_estimated_cost,omitempty" yaml:"total_estimated_cost,omitempty"`
	TotalEstimatedTime float64 `json:"total_estimated_time,omitempty" yaml:"total_estimated_time,omitempty"`

	// CoreGapsAvoided counts the high-centrality gaps boundary skirting
	// routed around.
	CoreGapsAvoided int `json:"core_gaps_avoided,omitempty" yaml:"core_gaps_avoided,omitempty"`

	BridgingTechnique string `json:"bridging_technique,omitempty" yaml:"bridging_technique,omitempty"`
	Warning           string `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// ClusterDigest is the report's compact view of one gap cluster.
type ClusterDigest struct {
	ID   string   `json:"id" yaml:"id"`
	Size int      `json:"size" yaml:"size"`
	Type VoidType `json:"type" yaml:"type"`
}

// Patterns aggregates distribution statistics and derived insights over a
// void map's gaps.
type Patterns struct {
	VoidDensity             float64        `json:"void_density" yaml:"void_density"`
	GapDistribution         map[string]int `json:"gap_distribution" yaml:"gap_distribution"`
	CriticalityDistribution map[string]int `json:"criticality_distribution" yaml:"criticality_distribution"`
	CertaintyDistribution   map[string]int `json:"certainty_distribution" yaml:"certainty_distribution"`
	FillabilityRate         float64        `json:"fillability_rate" yaml:"fillability_rate"`
	Insights                []string       `json:"insights" yaml:"insights"`
}

// Report is the full analysis output for one comparison. It serializes
// losslessly to JSON: enum values as their names, timestamps as RFC 3339.
// Per prd006-reporting R1.
type Report struct {
	Summary          ReportSummary     `json:"summary" yaml:"summary"`
	CriticalFindings []CriticalFinding `json:"critical_findings" yaml:"critical_findings"`
	NavigationPlan   NavigationPlan    `json:"navigation_plan" yaml:"navigation_plan"`
	GapClusters      []ClusterDigest   `json:"gap_clusters" yaml:"gap_clusters"`
	Patterns         Patterns          `json:"patterns" yaml:"patterns"`
	Recommendations  []string          `json:"recommendations" yaml:"recommendations"`
}
