// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package navigate plans routes through a mapped void. A navigation plan
// never mutates the void map: it proposes an ordering or a technique and
// records the trade-offs in each step.
// Implements: prd005-navigation (R1-R5).
package navigate

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/voidmap/internal/graph"
	"github.com/pdiddy/voidmap/internal/structure"
	"github.com/pdiddy/voidmap/pkg/types"
)

// Navigation strategy names.
const (
	GapHopping              = "gap_hopping"
	BoundarySkirting        = "boundary_skirting"
	VoidBridging            = "void_bridging"
	ConstraintCircumvention = "constraint_circumvention"
)

// NavigationRecord is one diagnostic history entry per plan.
type NavigationRecord struct {
	MapID     string    `json:"map_id" yaml:"map_id"`
	Strategy  string    `json:"strategy" yaml:"strategy"`
	Summary   string    `json:"summary" yaml:"summary"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Navigator plans traversals of a void map.
type Navigator struct {
	warn io.Writer

	mu      sync.Mutex
	history []NavigationRecord
}

// New builds a navigator. warn may be nil.
func New(warn io.Writer) *Navigator {
	if warn == nil {
		warn = io.Discard
	}
	return &Navigator{warn: warn}
}

// Navigate plans a route through the void map using the named strategy.
// Unknown strategies warn and fall back to gap hopping.
func (n *Navigator) Navigate(vm *types.VoidMap, strategy string) types.NavigationPlan {
	var plan types.NavigationPlan
	switch strategy {
	case "", GapHopping:
		plan = gapHopping(vm)
	case BoundarySkirting:
		plan = boundarySkirting(vm)
	case VoidBridging:
		plan = voidBridging(vm)
	case ConstraintCircumvention:
		plan = constraintCircumvention(vm)
	default:
		fmt.Fprintf(n.warn, "warning: unknown navigation strategy %q, using %s\n", strategy, GapHopping)
		plan = gapHopping(vm)
	}

	n.mu.Lock()
	n.history = append(n.history, NavigationRecord{
		MapID:     vm.ID,
		Strategy:  plan.Strategy,
		Summary:   plan.Summary,
		Timestamp: time.Now().UTC(),
	})
	n.mu.Unlock()

	return plan
}

// History returns a copy of the navigation history.
func (n *Navigator) History() []NavigationRecord {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]NavigationRecord, len(n.history))
	copy(out, n.history)
	return out
}

// gapHopping orders fillable gaps so that every gap appears after all of
// its in-map prerequisites: a weighted topological order where the
// heaviest available gap is always filled next (R2).
func gapHopping(vm *types.VoidMap) types.NavigationPlan {
	plan := types.NavigationPlan{Strategy: GapHopping}

	d := structure.DependencyGraph(vm)

	// Fillable roots seed the frontier; dependents join once every
	// predecessor has been filled.
	var frontier []string
	for _, id := range d.Nodes() {
		g := vm.GapByID(id)
		if g != nil && g.Fillable && d.InDegree(id) == 0 {
			frontier = append(frontier, id)
		}
	}

	filled := make(map[string]bool)
	for len(frontier) > 0 {
		// Heaviest gap first; earliest frontier entry breaks ties.
		best := 0
		for i := 1; i < len(frontier); i++ {
			if vm.GapByID(frontier[i]).Weight() > vm.GapByID(frontier[best]).Weight() {
				best = i
			}
		}
		id := frontier[best]
		frontier = append(frontier[:best], frontier[best+1:]...)

		g := vm.GapByID(id)
		filled[id] = true
		plan.Path = append(plan.Path, types.PathStep{
			GapID:         g.ID,
			Description:   g.Description,
			Action:        fmt.Sprintf("Fill %s gap", g.VoidType),
			EstimatedCost: g.FillCost,
			EstimatedTime: g.FillTime,
		})
		plan.TotalEstimatedCost += g.FillCost
		plan.TotalEstimatedTime += g.FillTime

		for _, succ := range d.Successors(id) {
			if filled[succ] || contains(frontier, succ) {
				continue
			}
			ready := true
			for _, pred := range d.Predecessors(succ) {
				if !filled[pred] {
					ready = false
					break
				}
			}
			if ready {
				frontier = append(frontier, succ)
			}
		}
	}

	plan.Summary = fmt.Sprintf("Fill %d gaps in dependency order", len(plan.Path))
	return plan
}

// boundarySkirting routes around the void's core: gaps at or above the
// median betweenness centrality are avoided, and up to five fillable
// peripheral gaps form the path (R3). When centralities are uniform the
// whole map counts as core and the path is empty; the summary says so.
func boundarySkirting(vm *types.VoidMap) types.NavigationPlan {
	plan := types.NavigationPlan{Strategy: BoundarySkirting}

	g := structure.RelationGraph(vm)
	centrality := graph.Betweenness(g)
	median := medianCentrality(centrality)

	for i := range vm.Gaps {
		gap := &vm.Gaps[i]
		if centrality[gap.ID] >= median {
			plan.CoreGapsAvoided++
			continue
		}
		if !gap.Fillable || len(plan.Path) >= 5 {
			continue
		}
		plan.Path = append(plan.Path, types.PathStep{
			GapID:       gap.ID,
			Description: gap.Description,
			Action:      "Address peripheral gap",
			Rationale:   "Lower centrality makes this easier to address",
		})
	}

	plan.Summary = fmt.Sprintf("Skirt %d core gaps via %d peripheral ones",
		plan.CoreGapsAvoided, len(plan.Path))
	return plan
}

// voidBridging spans up to three of the clearest fillable gaps that have
// declared boundary conditions, proposing a bridge construct per void
// type (R4).
func voidBridging(vm *types.VoidMap) types.NavigationPlan {
	plan := types.NavigationPlan{
		Strategy:          VoidBridging,
		BridgingTechnique: "Identify and connect boundary conditions",
	}

	var candidates []*types.Gap
	for i := range vm.Gaps {
		g := &vm.Gaps[i]
		if g.Fillable && len(g.BoundaryConditions) > 0 {
			candidates = append(candidates, g)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Clarity > candidates[j].Clarity
	})
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}

	for _, g := range candidates {
		plan.Path = append(plan.Path, types.PathStep{
			GapID:              g.ID,
			Description:        g.Description,
			Action:             "Construct bridge",
			BridgeType:         bridgeType(g.VoidType),
			BoundaryConditions: g.BoundaryConditions,
		})
	}

	plan.Summary = fmt.Sprintf("Bridge %d gaps via their boundary conditions", len(plan.Path))
	return plan
}

func bridgeType(t types.VoidType) string {
	switch t {
	case types.InformationGap:
		return "information_pipeline"
	case types.DependencyGap:
		return "dependency_interface"
	case types.CapabilityGap:
		return "capability_proxy"
	case types.ConceptualGap:
		return "conceptual_metaphor"
	}
	return "general_bridge"
}

// constraintCircumvention proposes up to two workarounds per constraint
// gap, keyed off keywords in the gap description. Circumvention carries
// risk, so every step is flagged and the plan warns (R5).
func constraintCircumvention(vm *types.VoidMap) types.NavigationPlan {
	plan := types.NavigationPlan{
		Strategy: ConstraintCircumvention,
		Warning:  "Circumvention may introduce new risks",
	}

	count := 0
	for i := range vm.Gaps {
		g := &vm.Gaps[i]
		if g.VoidType != types.ConstraintGap {
			continue
		}
		count++
		suggestions := circumventions(g.Description)
		if len(suggestions) > 2 {
			suggestions = suggestions[:2]
		}
		for _, s := range suggestions {
			plan.Path = append(plan.Path, types.PathStep{
				GapID:         g.ID,
				Description:   g.Description,
				Action:        "Circumvent constraint",
				Circumvention: s,
				Risk:          "moderate",
			})
		}
	}

	plan.Summary = fmt.Sprintf("Circumvent %d constraint gaps", count)
	return plan
}

func circumventions(description string) []string {
	switch {
	case containsAny(description, "resource", "budget", "fund"):
		return []string{"resource_sharing", "efficiency_improvement", "alternative_resource", "phased_approach"}
	case containsAny(description, "time", "deadline", "schedule"):
		return []string{"parallel_processing", "critical_path_optimization", "milestone_revision", "time_extension_request"}
	case containsAny(description, "legal", "ethical", "compliance", "regulat"):
		return []string{"alternative_approach", "stakeholder_negotiation", "regulatory_consultation", "compliance_demonstration"}
	}
	return []string{"workaround_development", "requirement_relaxation", "alternative_solution", "problem_redefinition"}
}

// medianCentrality returns the median of the centrality values, averaging
// the middle pair for even counts. No values yield 0.
func medianCentrality(centrality map[string]float64) float64 {
	if len(centrality) == 0 {
		return 0
	}
	values := make([]float64, 0, len(centrality))
	for _, v := range centrality {
		values = append(values, v)
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
