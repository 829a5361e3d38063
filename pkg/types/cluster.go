// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// GapCluster is a named grouping of related gaps. Clusters reference gaps
// by value and id but never own them: a gap may appear in several cluster
// views of the same void map. Clusters are recomputed fresh on every
// clustering call and never mutated after return.
type GapCluster struct {
	ID string `json:"id" yaml:"id"`

	// Gaps are the member gaps.
	Gaps []Gap `json:"gaps" yaml:"gaps"`

	// Centroid maps feature name to the mean value across members.
	Centroid map[string]float64 `json:"centroid" yaml:"centroid"`

	// Density is the size-normalized measure: member count over 10.
	Density float64 `json:"density" yaml:"density"`

	// Boundary lists the ids of the most atypical members.
	Boundary []string `json:"boundary,omitempty" yaml:"boundary,omitempty"`

	// CoreGaps lists the ids of the most representative members.
	CoreGaps []string `json:"core_gaps,omitempty" yaml:"core_gaps,omitempty"`

	// ClusterType is the dominant void type among members.
	ClusterType VoidType `json:"cluster_type" yaml:"cluster_type"`

	// StrategicImportance is the max member criticality weight times the
	// cluster density.
	StrategicImportance float64 `json:"strategic_importance" yaml:"strategic_importance"`

	// FillSequence optionally orders member gap ids for filling.
	FillSequence []string `json:"fill_sequence,omitempty" yaml:"fill_sequence,omitempty"`
}

// ComputeStrategicImportance rederives StrategicImportance from the
// members' canonical criticality weights and the cluster density.
func (c *GapCluster) ComputeStrategicImportance() {
	if len(c.Gaps) == 0 {
		c.StrategicImportance = 0
		return
	}
	maxWeight := 0.0
	for i := range c.Gaps {
		if w := CriticalityWeight(c.Gaps[i].Criticality); w > maxWeight {
			maxWeight = w
		}
	}
	c.StrategicImportance = maxWeight * c.Density
}
