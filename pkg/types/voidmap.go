// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// GapEdge is one undirected edge of the gap relationship graph, labeled
// with the kind of relationship between the two gaps.
type GapEdge struct {
	Source       string `json:"source" yaml:"source"`
	Target       string `json:"target" yaml:"target"`
	Relationship string `json:"relationship" yaml:"relationship"`
}

// VoidMap is the complete comparison result for one (current, goal) pair:
// every discovered gap, the relationship graph over them, and the derived
// void metrics. Once discovery and metric computation finish it is treated
// as immutable. Per prd001-gap-model R4.
type VoidMap struct {
	// ID is derived deterministically from the two input states, so
	// identical inputs reproduce the same id.
	ID string `json:"id" yaml:"id"`

	// Current and Goal are the input states, stored verbatim.
	Current State `json:"current" yaml:"current"`
	Goal    State `json:"goal" yaml:"goal"`

	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Gaps is ordered by criticality weight, highest first.
	Gaps []Gap `json:"gaps" yaml:"gaps"`

	// Edges is the undirected relationship graph over gap ids.
	Edges []GapEdge `json:"edges" yaml:"edges"`

	// VoidDensity is the weighted fraction of possible gaps actually
	// found, in [0,1].
	VoidDensity float64 `json:"void_density" yaml:"void_density"`

	// Connectivity is the edge density of the relationship graph.
	Connectivity float64 `json:"connectivity" yaml:"connectivity"`

	// Navigability is 1 minus the maximum betweenness centrality: a proxy
	// for how bottlenecked the gap space is.
	Navigability float64 `json:"navigability" yaml:"navigability"`

	DiscoveryMethod  string  `json:"discovery_method" yaml:"discovery_method"`
	ExplorationDepth int     `json:"exploration_depth" yaml:"exploration_depth"`
	Confidence       float64 `json:"confidence" yaml:"confidence"`
}

// GapByID returns the gap with the given id, or nil.
func (vm *VoidMap) GapByID(id string) *Gap {
	for i := range vm.Gaps {
		if vm.Gaps[i].ID == id {
			return &vm.Gaps[i]
		}
	}
	return nil
}

// GapIDs returns the ids of all gaps in order.
func (vm *VoidMap) GapIDs() []string {
	ids := make([]string, len(vm.Gaps))
	for i := range vm.Gaps {
		ids[i] = vm.Gaps[i].ID
	}
	return ids
}

// TotalWeight sums the scoring weight of every gap.
func (vm *VoidMap) TotalWeight() float64 {
	total := 0.0
	for i := range vm.Gaps {
		total += vm.Gaps[i].Weight()
	}
	return total
}

// EstimatePossibleGaps estimates the space of gaps the input pair could
// plausibly produce: keys the goal has that the current state lacks, type
// mismatches on shared keys, and numeric value differences on shared keys.
// The estimate is a heuristic normalizer for void density; it is not
// reconciled against the discovered gap list.
func (vm *VoidMap) EstimatePossibleGaps() []string {
	var possible []string

	for _, key := range vm.Goal.SortedKeys() {
		if _, ok := vm.Current[key]; !ok {
			possible = append(possible, fmt.Sprintf("missing_%s_in_current", key))
		}
	}

	for _, key := range vm.Current.SortedKeys() {
		goalVal, ok := vm.Goal[key]
		if !ok {
			continue
		}
		curVal := vm.Current[key]
		if curVal.TypeName() != goalVal.TypeName() {
			possible = append(possible, "type_mismatch_"+key)
			continue
		}
		if curVal.Kind() == KindNumber && curVal.AsNumber() != goalVal.AsNumber() {
			possible = append(possible, "value_gap_"+key)
		}
	}

	return possible
}
