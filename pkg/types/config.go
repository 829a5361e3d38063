package types

// EngineConfig holds settings for the discovery engine.
type EngineConfig struct {
	// Depth is how deep to explore voids (default 3).
	Depth int `json:"depth" yaml:"depth"`

	// Rigor scales overall mapping confidence, in [0,1] (default 0.8).
	Rigor float64 `json:"rigor" yaml:"rigor"`
}

// ClusterConfig holds settings for gap clustering.
type ClusterConfig struct {
	// MaxClusters caps the number of clusters returned (default 5).
	MaxClusters int `json:"max_clusters" yaml:"max_clusters"`

	// Method selects the clustering method: semantic, structural, or
	// strategic (default semantic).
	Method string `json:"method" yaml:"method"`
}

// NavigationConfig holds settings for void navigation.
type NavigationConfig struct {
	// Strategy selects the navigation strategy: gap_hopping,
	// boundary_skirting, void_bridging, or constraint_circumvention
	// (default gap_hopping).
	Strategy string `json:"strategy" yaml:"strategy"`
}

// AnalysisConfig groups all stage configurations for one analysis run.
type AnalysisConfig struct {
	Engine     EngineConfig     `json:"engine" yaml:"engine"`
	Cluster    ClusterConfig    `json:"cluster" yaml:"cluster"`
	Navigation NavigationConfig `json:"navigation" yaml:"navigation"`
}
