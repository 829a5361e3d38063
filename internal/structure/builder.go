// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package structure builds the gap relationship graph of a void map and
// derives its structural metrics: connectivity, navigability, and void
// density. It also provides the dependency-topology analyses (bottlenecks,
// resolution simulation, drift tracking).
// Implements: prd003-void-structure (R1-R3).
package structure

import (
	"github.com/pdiddy/voidmap/internal/graph"
	"github.com/pdiddy/voidmap/pkg/types"
)

// Relationship labels for gap edges.
const (
	RelSibling            = "sibling"
	RelRequiresCapability = "requires_capability"
	RelInformsCausality   = "informs_causality"
	RelRelated            = "related"
)

// possibleGapFloor divides the total gap weight when the possible-gap
// estimate is empty.
const possibleGapFloor = 10.0

// BuildRelationshipGraph constructs the undirected relationship graph over
// the void map's gaps and computes connectivity, navigability, and void
// density in place. The gap entries themselves carry the node attributes
// (type, criticality, certainty); Edges records the labeled adjacency.
// Never returns an error: every metric is defined for degenerate graphs
// (R1.4).
func BuildRelationshipGraph(vm *types.VoidMap) {
	g := graph.NewGraph()
	for i := range vm.Gaps {
		g.AddNode(vm.Gaps[i].ID)
	}

	vm.Edges = nil
	for i := range vm.Gaps {
		for j := i + 1; j < len(vm.Gaps); j++ {
			a, b := &vm.Gaps[i], &vm.Gaps[j]
			if !related(a, b) {
				continue
			}
			g.AddEdge(a.ID, b.ID)
			vm.Edges = append(vm.Edges, types.GapEdge{
				Source:       a.ID,
				Target:       b.ID,
				Relationship: relationship(a, b),
			})
		}
	}

	vm.Connectivity = g.Density()

	// Betweenness is total: every node gets a centrality (all zeros below
	// three nodes), so navigability needs no exception fallback. An empty
	// graph leaves it at 0.
	if g.NodeCount() > 0 {
		maxCent := 0.0
		for _, c := range graph.Betweenness(g) {
			if c > maxCent {
				maxCent = c
			}
		}
		vm.Navigability = 1.0 - maxCent
	}

	vm.VoidDensity = voidDensity(vm)
}

// RelationGraph rebuilds the undirected graph from a void map's stored
// edge list, for algorithms that run after discovery.
func RelationGraph(vm *types.VoidMap) *graph.Graph {
	g := graph.NewGraph()
	for i := range vm.Gaps {
		g.AddNode(vm.Gaps[i].ID)
	}
	for _, e := range vm.Edges {
		g.AddEdge(e.Source, e.Target)
	}
	return g
}

// DependencyGraph builds the directed prerequisite graph over gaps: an
// edge dep -> gap for every declared dependency that is itself a gap in
// the map.
func DependencyGraph(vm *types.VoidMap) *graph.Digraph {
	d := graph.NewDigraph()
	for i := range vm.Gaps {
		d.AddNode(vm.Gaps[i].ID)
	}
	for i := range vm.Gaps {
		for _, dep := range vm.Gaps[i].Dependencies {
			if vm.GapByID(dep) != nil {
				d.AddEdge(dep, vm.Gaps[i].ID)
			}
		}
	}
	return d
}

// related applies the edge rule: same void type, a dependency gap paired
// with a capability or information gap, a causal gap paired with an
// information gap, or any domain-tag overlap.
func related(a, b *types.Gap) bool {
	if a.VoidType == b.VoidType {
		return true
	}
	if a.VoidType == types.DependencyGap &&
		(b.VoidType == types.CapabilityGap || b.VoidType == types.InformationGap) {
		return true
	}
	if a.VoidType == types.CausalGap && b.VoidType == types.InformationGap {
		return true
	}
	return domainsOverlap(a.Domains, b.Domains)
}

func relationship(a, b *types.Gap) string {
	switch {
	case a.VoidType == b.VoidType:
		return RelSibling
	case a.VoidType == types.DependencyGap && b.VoidType == types.CapabilityGap,
		a.VoidType == types.CapabilityGap && b.VoidType == types.DependencyGap:
		return RelRequiresCapability
	case a.VoidType == types.CausalGap && b.VoidType == types.InformationGap,
		a.VoidType == types.InformationGap && b.VoidType == types.CausalGap:
		return RelInformsCausality
	}
	return RelRelated
}

func domainsOverlap(a, b []string) bool {
	for _, da := range a {
		for _, db := range b {
			if da == db {
				return true
			}
		}
	}
	return false
}

// voidDensity weighs every gap by its canonical criticality and certainty
// weights and normalizes by the estimated number of possible gaps, falling
// back to a fixed divisor when the estimate is empty. The estimate is a
// heuristic normalizer, not a ground-truth count. Result clamped to [0,1].
func voidDensity(vm *types.VoidMap) float64 {
	if len(vm.Gaps) == 0 {
		return 0
	}

	total := vm.TotalWeight()

	var density float64
	if estimated := len(vm.EstimatePossibleGaps()); estimated > 0 {
		density = total / float64(estimated)
	} else {
		density = total / possibleGapFloor
	}

	if density > 1 {
		return 1
	}
	if density < 0 {
		return 0
	}
	return density
}
