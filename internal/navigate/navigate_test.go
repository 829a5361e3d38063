// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package navigate

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/voidmap/pkg/types"
)

func gap(id string, vt types.VoidType, crit types.GapCriticality) types.Gap {
	return types.Gap{
		ID:          id,
		Description: "missing " + id,
		VoidType:    vt,
		Criticality: crit,
		Certainty:   types.Definite,
		Fillable:    true,
		Clarity:     0.5,
	}
}

func TestGapHoppingRespectsDependencies(t *testing.T) {
	a := gap("a", types.DependencyGap, types.Low)
	b := gap("b", types.DependencyGap, types.Blocking)
	b.Dependencies = []string{"a"}
	c := gap("c", types.DependencyGap, types.Medium)
	c.Dependencies = []string{"b"}

	vm := &types.VoidMap{ID: "vm1", Gaps: []types.Gap{a, b, c}}
	plan := New(nil).Navigate(vm, GapHopping)

	if plan.Strategy != GapHopping {
		t.Errorf("strategy = %q", plan.Strategy)
	}
	order := stepIDs(plan)
	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("path = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("path = %v, want %v", order, want)
		}
	}
}

func TestGapHoppingPicksHeaviestFirst(t *testing.T) {
	low := gap("low", types.DependencyGap, types.Low)
	blocking := gap("blocking", types.DependencyGap, types.Blocking)

	vm := &types.VoidMap{Gaps: []types.Gap{low, blocking}}
	plan := New(nil).Navigate(vm, GapHopping)

	order := stepIDs(plan)
	if len(order) != 2 || order[0] != "blocking" {
		t.Errorf("path = %v, want blocking first", order)
	}
}

func TestGapHoppingSkipsUnfillableRoots(t *testing.T) {
	stuck := gap("stuck", types.ConstraintGap, types.Blocking)
	stuck.Fillable = false
	ok := gap("ok", types.DependencyGap, types.Low)

	vm := &types.VoidMap{Gaps: []types.Gap{stuck, ok}}
	plan := New(nil).Navigate(vm, GapHopping)

	order := stepIDs(plan)
	if len(order) != 1 || order[0] != "ok" {
		t.Errorf("path = %v, want only the fillable gap", order)
	}
}

func TestGapHoppingSumsCosts(t *testing.T) {
	a := gap("a", types.DependencyGap, types.Medium)
	a.FillCost, a.FillTime = 3, 2
	b := gap("b", types.DependencyGap, types.Medium)
	b.FillCost, b.FillTime = 4, 1

	vm := &types.VoidMap{Gaps: []types.Gap{a, b}}
	plan := New(nil).Navigate(vm, GapHopping)

	if plan.TotalEstimatedCost != 7 {
		t.Errorf("total cost = %v, want 7", plan.TotalEstimatedCost)
	}
	if plan.TotalEstimatedTime != 3 {
		t.Errorf("total time = %v, want 3", plan.TotalEstimatedTime)
	}
}

func TestBoundarySkirtingAvoidsCore(t *testing.T) {
	// Chain a-b-c-d-e: the three inner gaps carry the centrality, the
	// endpoints are peripheral.
	names := []string{"a", "b", "c", "d", "e"}
	vm := &types.VoidMap{}
	for _, name := range names {
		vm.Gaps = append(vm.Gaps, gap(name, types.DependencyGap, types.Medium))
	}
	for i := 0; i+1 < len(names); i++ {
		vm.Edges = append(vm.Edges, types.GapEdge{Source: names[i], Target: names[i+1]})
	}

	plan := New(nil).Navigate(vm, BoundarySkirting)

	if plan.CoreGapsAvoided != 3 {
		t.Errorf("core gaps avoided = %d, want the 3 inner gaps", plan.CoreGapsAvoided)
	}
	order := stepIDs(plan)
	if len(order) != 2 || order[0] != "a" || order[1] != "e" {
		t.Errorf("path = %v, want the endpoints [a e]", order)
	}
	for _, step := range plan.Path {
		if step.Rationale == "" {
			t.Errorf("step %s missing rationale", step.GapID)
		}
	}
}

func TestBoundarySkirtingUniformCentrality(t *testing.T) {
	// No edges: every centrality ties at the median, so the whole map is
	// core and the path stays empty.
	vm := &types.VoidMap{Gaps: []types.Gap{
		gap("a", types.DependencyGap, types.Medium),
		gap("b", types.EthicalGap, types.Low),
	}}

	plan := New(nil).Navigate(vm, BoundarySkirting)
	if len(plan.Path) != 0 {
		t.Errorf("path = %v, want empty", stepIDs(plan))
	}
	if plan.CoreGapsAvoided != 2 {
		t.Errorf("core gaps avoided = %d, want 2", plan.CoreGapsAvoided)
	}
}

func TestVoidBridgingSelectsClearestWithBoundaries(t *testing.T) {
	bridgeable := gap("info", types.InformationGap, types.Medium)
	bridgeable.Clarity = 0.9
	bridgeable.BoundaryConditions = []string{"starts at ingestion"}

	noBoundary := gap("vague", types.InformationGap, types.Medium)
	noBoundary.Clarity = 1.0 // clearest, but nothing to anchor a bridge to

	conceptual := gap("concept", types.ConceptualGap, types.Low)
	conceptual.Clarity = 0.4
	conceptual.BoundaryConditions = []string{"ends at shared vocabulary"}

	vm := &types.VoidMap{Gaps: []types.Gap{noBoundary, conceptual, bridgeable}}
	plan := New(nil).Navigate(vm, VoidBridging)

	order := stepIDs(plan)
	if len(order) != 2 {
		t.Fatalf("path = %v, want 2 bridgeable gaps", order)
	}
	if order[0] != "info" {
		t.Errorf("path = %v, want clearest bridgeable gap first", order)
	}
	if plan.Path[0].BridgeType != "information_pipeline" {
		t.Errorf("bridge type = %q", plan.Path[0].BridgeType)
	}
	if plan.Path[1].BridgeType != "conceptual_metaphor" {
		t.Errorf("bridge type = %q", plan.Path[1].BridgeType)
	}
	if plan.BridgingTechnique == "" {
		t.Error("plan missing bridging technique")
	}
}

func TestConstraintCircumvention(t *testing.T) {
	budget := gap("budget", types.ConstraintGap, types.High)
	budget.Description = "insufficient budget for expansion"
	deadline := gap("deadline", types.ConstraintGap, types.Medium)
	deadline.Description = "deadline too close"
	dep := gap("dep", types.DependencyGap, types.High)

	vm := &types.VoidMap{Gaps: []types.Gap{budget, deadline, dep}}
	plan := New(nil).Navigate(vm, ConstraintCircumvention)

	if plan.Warning == "" {
		t.Error("plan missing risk warning")
	}
	if len(plan.Path) != 4 { // two suggestions per constraint gap
		t.Fatalf("path = %v, want 4 steps", stepIDs(plan))
	}
	if plan.Path[0].Circumvention != "resource_sharing" {
		t.Errorf("first circumvention = %q, want resource_sharing", plan.Path[0].Circumvention)
	}
	if plan.Path[2].Circumvention != "parallel_processing" {
		t.Errorf("deadline circumvention = %q, want parallel_processing", plan.Path[2].Circumvention)
	}
	for _, step := range plan.Path {
		if step.GapID == "dep" {
			t.Error("non-constraint gap in circumvention path")
		}
		if step.Risk != "moderate" {
			t.Errorf("step risk = %q", step.Risk)
		}
	}
}

func TestUnknownStrategyFallsBack(t *testing.T) {
	var warnings bytes.Buffer
	vm := &types.VoidMap{Gaps: []types.Gap{gap("a", types.DependencyGap, types.Medium)}}

	plan := New(&warnings).Navigate(vm, "teleport")

	if plan.Strategy != GapHopping {
		t.Errorf("strategy = %q, want fallback %s", plan.Strategy, GapHopping)
	}
	if !strings.Contains(warnings.String(), "teleport") {
		t.Errorf("warning %q does not name the unknown strategy", warnings.String())
	}
}

func TestNavigateRecordsHistory(t *testing.T) {
	n := New(nil)
	vm := &types.VoidMap{ID: "vm42", Gaps: []types.Gap{gap("a", types.DependencyGap, types.Medium)}}

	n.Navigate(vm, GapHopping)
	n.Navigate(vm, VoidBridging)

	history := n.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].MapID != "vm42" || history[0].Strategy != GapHopping {
		t.Errorf("history[0] = %+v", history[0])
	}
	if history[1].Strategy != VoidBridging {
		t.Errorf("history[1] = %+v", history[1])
	}
}

func TestEmptyVoidMapPlans(t *testing.T) {
	vm := &types.VoidMap{ID: "empty"}
	for _, strategy := range []string{GapHopping, BoundarySkirting, VoidBridging, ConstraintCircumvention} {
		plan := New(nil).Navigate(vm, strategy)
		if len(plan.Path) != 0 {
			t.Errorf("%s produced steps for an empty map: %v", strategy, stepIDs(plan))
		}
	}
}

func stepIDs(plan types.NavigationPlan) []string {
	out := make([]string, len(plan.Path))
	for i, s := range plan.Path {
		out[i] = s.GapID
	}
	return out
}
