// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for void mapping: schemaless
// state values, gaps, void maps, clusters, and the report surface.
// Implements: prd001-gap-model (R1-R4).
package types

import "time"

// VoidType categorizes what kind of thing is missing.
type VoidType string

const (
	DependencyGap  VoidType = "DEPENDENCY_GAP"  // missing parts or components
	InformationGap VoidType = "INFORMATION_GAP" // missing knowledge or data
	ConstraintGap  VoidType = "CONSTRAINT_GAP"  // missing permissions or headroom
	CapabilityGap  VoidType = "CAPABILITY_GAP"  // missing skills or tools
	ConceptualGap  VoidType = "CONCEPTUAL_GAP"  // missing understanding
	CausalGap      VoidType = "CAUSAL_GAP"      // missing causal relationships
	TemporalGap    VoidType = "TEMPORAL_GAP"    // missing temporal understanding
	EthicalGap     VoidType = "ETHICAL_GAP"     // missing ethical considerations
)

// AllVoidTypes lists every void type in a fixed order. Clustering uses the
// position in this slice as a normalized feature.
var AllVoidTypes = []VoidType{
	DependencyGap,
	InformationGap,
	ConstraintGap,
	CapabilityGap,
	ConceptualGap,
	CausalGap,
	TemporalGap,
	EthicalGap,
}

// TypeIndex returns the position of t in AllVoidTypes, or -1.
func TypeIndex(t VoidType) int {
	for i, vt := range AllVoidTypes {
		if vt == t {
			return i
		}
	}
	return -1
}

// GapCertainty is the confidence that a gap genuinely exists.
type GapCertainty string

const (
	Definite     GapCertainty = "DEFINITE"     // gap definitely exists
	Hypothesized GapCertainty = "HYPOTHESIZED" // gap likely exists
	Speculative  GapCertainty = "SPECULATIVE"  // gap might exist
	Emergent     GapCertainty = "EMERGENT"     // gap emerges from system dynamics
)

// GapCriticality is the ordinal severity of a gap, BLOCKING highest.
type GapCriticality string

const (
	Blocking GapCriticality = "BLOCKING" // cannot reach the goal without filling
	High     GapCriticality = "HIGH"     // significantly impedes progress
	Medium   GapCriticality = "MEDIUM"   // slows progress
	Low      GapCriticality = "LOW"      // minor impediment
	Unknown  GapCriticality = "UNKNOWN"  // impact unclear
)

// criticalityWeights is the single canonical criticality scoring table.
// Every place criticality is scored (density, sort order, navigation
// priority, cluster features, strategic importance) uses this table (R2.1).
var criticalityWeights = map[GapCriticality]float64{
	Blocking: 1.0,
	High:     0.7,
	Medium:   0.4,
	Low:      0.2,
	Unknown:  0.5,
}

// certaintyWeights is the single canonical certainty scoring table (R2.2).
var certaintyWeights = map[GapCertainty]float64{
	Definite:     1.0,
	Hypothesized: 0.7,
	Speculative:  0.3,
	Emergent:     0.5,
}

// CriticalityWeight returns the canonical weight for c; unrecognized
// values score 0.5, same as UNKNOWN.
func CriticalityWeight(c GapCriticality) float64 {
	if w, ok := criticalityWeights[c]; ok {
		return w
	}
	return 0.5
}

// CertaintyWeight returns the canonical weight for c; unrecognized values
// score 0.5.
func CertaintyWeight(c GapCertainty) float64 {
	if w, ok := certaintyWeights[c]; ok {
		return w
	}
	return 0.5
}

// Evidence is one structured record supporting a gap's existence.
type Evidence map[string]string

// NegativeShape describes the "shape" of what is missing. Its fields are
// pure functions of the gap's other attributes and must be recomputed via
// RecomputeNegativeShape whenever those change; they are never mutated
// independently (R3.4).
type NegativeShape struct {
	// Dimensionality is how many distinct dimensions the gap spans.
	Dimensionality int `json:"dimensionality" yaml:"dimensionality"`

	// Connectivity counts the gap's declared dependencies.
	Connectivity int `json:"connectivity" yaml:"connectivity"`

	// Opacity is 1 minus clarity: how poorly the gap is understood.
	Opacity float64 `json:"opacity" yaml:"opacity"`

	// EdgeSharpness is how crisply the gap's boundaries are defined.
	EdgeSharpness float64 `json:"edge_sharpness" yaml:"edge_sharpness"`

	// VoidDepth scales the gap's size by its criticality weight.
	VoidDepth float64 `json:"void_depth" yaml:"void_depth"`
}

// Gap is one discovered discrepancy between the current and goal states.
// Per prd001-gap-model R3.
type Gap struct {
	// ID is unique within its void map and immutable after creation.
	ID string `json:"id" yaml:"id"`

	// Description is the human-readable statement of what is missing.
	Description string `json:"description" yaml:"description"`

	// VoidType categorizes the gap.
	VoidType VoidType `json:"void_type" yaml:"void_type"`

	// Domains tags the gap with free-form domain names (e.g. "security").
	Domains []string `json:"domains" yaml:"domains"`

	// Evidence lists the records supporting the gap's existence.
	Evidence []Evidence `json:"evidence" yaml:"evidence"`

	// Manifestations describes how the gap shows up in practice.
	Manifestations []string `json:"manifestations" yaml:"manifestations"`

	Criticality GapCriticality `json:"criticality" yaml:"criticality"`
	Certainty   GapCertainty   `json:"certainty" yaml:"certainty"`

	// Size estimates how large the gap is, in [0,1].
	Size float64 `json:"size" yaml:"size"`

	// Clarity is how clearly defined the gap is, in [0,1].
	Clarity float64 `json:"clarity" yaml:"clarity"`

	// Dependencies lists gap ids that must be resolved before this one.
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	// Blockers lists gap ids this gap blocks.
	Blockers []string `json:"blockers,omitempty" yaml:"blockers,omitempty"`

	// DiscoveredBy names the discovery strategy that produced the gap.
	DiscoveredBy string `json:"discovered_by" yaml:"discovered_by"`

	// DiscoveryTime is when the gap was discovered.
	DiscoveryTime time.Time `json:"discovery_time" yaml:"discovery_time"`

	// Fillable reports whether the gap is believed addressable at all.
	Fillable bool `json:"fillable" yaml:"fillable"`

	// FillMethods lists candidate ways to fill the gap.
	FillMethods []string `json:"fill_methods,omitempty" yaml:"fill_methods,omitempty"`

	// FillCost and FillTime are non-negative effort estimates.
	FillCost float64 `json:"fill_cost" yaml:"fill_cost"`
	FillTime float64 `json:"fill_time" yaml:"fill_time"`

	// NegativeShape is derived; see RecomputeNegativeShape.
	NegativeShape NegativeShape `json:"negative_shape" yaml:"negative_shape"`

	// BoundaryConditions describe where the gap begins and ends.
	BoundaryConditions []string `json:"boundary_conditions,omitempty" yaml:"boundary_conditions,omitempty"`
}

// Weight is the gap's scoring weight: criticality weight times certainty
// weight, per the canonical tables.
func (g *Gap) Weight() float64 {
	return CriticalityWeight(g.Criticality) * CertaintyWeight(g.Certainty)
}

// RecomputeNegativeShape rederives the negative-shape fields from the
// gap's current attributes.
func (g *Gap) RecomputeNegativeShape() {
	evidenceStrength := float64(len(g.Evidence)) / 5
	if evidenceStrength > 1.0 {
		evidenceStrength = 1.0
	}
	g.NegativeShape = NegativeShape{
		Dimensionality: g.estimateDimensionality(),
		Connectivity:   len(g.Dependencies),
		Opacity:        1.0 - g.Clarity,
		EdgeSharpness:  (g.Clarity + evidenceStrength) / 2,
		VoidDepth:      g.Size * CriticalityWeight(g.Criticality),
	}
}

// estimateDimensionality counts distinct domains plus distinct
// manifestations, capped at 5.
func (g *Gap) estimateDimensionality() int {
	seen := map[string]bool{}
	for _, d := range g.Domains {
		seen[d] = true
	}
	n := len(seen)
	seen = map[string]bool{}
	for _, m := range g.Manifestations {
		seen[m] = true
	}
	n += len(seen)
	if n > 5 {
		return 5
	}
	return n
}
