// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"testing"

	"github.com/pdiddy/voidmap/pkg/types"
)

func TestContrastiveTypeMismatch(t *testing.T) {
	current := state(t, map[string]any{"count": "three"})
	goal := state(t, map[string]any{"count": float64(3)})

	gaps, err := contrastiveAnalysis{}.Discover(current, goal, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(gaps) != 1 {
		t.Fatalf("gaps = %d, want 1", len(gaps))
	}
	g := gaps[0]
	if g.ID != "type_mismatch_count" {
		t.Errorf("id = %q", g.ID)
	}
	if g.Criticality != types.Medium || g.Certainty != types.Definite {
		t.Errorf("scored %s/%s, want MEDIUM/DEFINITE", g.Criticality, g.Certainty)
	}
	if g.Evidence[0]["current_type"] != "string" || g.Evidence[0]["goal_type"] != "number" {
		t.Errorf("evidence = %v", g.Evidence[0])
	}
}

func TestDependencyWalkChains(t *testing.T) {
	current := state(t, map[string]any{})
	goal := state(t, map[string]any{"app": true})
	ctx := &types.Context{Dependencies: map[string][]string{
		"app":      {"runtime"},
		"runtime":  {"hardware"},
		"hardware": nil,
	}}

	gaps, err := dependencyWalk{}.Discover(current, goal, ctx)
	if err != nil {
		t.Fatal(err)
	}
	// Only app is a goal attribute, so only its chain root is reported.
	if len(gaps) != 1 {
		t.Fatalf("gaps = %v, want [unmet_dep_runtime]", ids(gaps))
	}
	if gaps[0].ID != "unmet_dep_runtime" {
		t.Errorf("id = %q", gaps[0].ID)
	}
	if gaps[0].Criticality != types.High || gaps[0].Certainty != types.Hypothesized {
		t.Errorf("scored %s/%s, want HIGH/HYPOTHESIZED", gaps[0].Criticality, gaps[0].Certainty)
	}
}

func TestDependencyWalkWiresChainedGaps(t *testing.T) {
	current := state(t, map[string]any{})
	// Both chain links are goal attributes, so both missing prerequisites
	// surface and the deeper one must come first.
	goal := state(t, map[string]any{"app": true, "runtime": true})
	ctx := &types.Context{Dependencies: map[string][]string{
		"app":     {"runtime"},
		"runtime": {"hardware"},
	}}

	gaps, err := dependencyWalk{}.Discover(current, goal, ctx)
	if err != nil {
		t.Fatal(err)
	}
	byID := map[string]types.Gap{}
	for _, g := range gaps {
		byID[g.ID] = g
	}

	runtimeGap, ok := byID["unmet_dep_runtime"]
	if !ok {
		t.Fatalf("gaps = %v, missing unmet_dep_runtime", ids(gaps))
	}
	hardwareGap, ok := byID["unmet_dep_hardware"]
	if !ok {
		t.Fatalf("gaps = %v, missing unmet_dep_hardware", ids(gaps))
	}

	if len(runtimeGap.Dependencies) != 1 || runtimeGap.Dependencies[0] != "unmet_dep_hardware" {
		t.Errorf("runtime deps = %v, want [unmet_dep_hardware]", runtimeGap.Dependencies)
	}
	if len(hardwareGap.Blockers) != 1 || hardwareGap.Blockers[0] != "unmet_dep_runtime" {
		t.Errorf("hardware blockers = %v, want [unmet_dep_runtime]", hardwareGap.Blockers)
	}
}

func TestConstraintPropagation(t *testing.T) {
	current := state(t, map[string]any{"budget": float64(40), "staff": float64(10)})
	goal := state(t, map[string]any{})
	ctx := &types.Context{Constraints: map[string]float64{
		"budget":  100, // measurable shortfall of 60%
		"staff":   8,   // satisfied
		"licence": 1,   // not measured at all
	}}

	gaps, err := constraintPropagation{}.Discover(current, goal, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(gaps) != 2 {
		t.Fatalf("gaps = %v, want budget and licence", ids(gaps))
	}

	budget := gaps[0]
	if budget.ID != "constraint_budget" {
		t.Fatalf("first gap = %q, want constraint_budget (sorted)", budget.ID)
	}
	if budget.VoidType != types.ConstraintGap {
		t.Errorf("void type = %s", budget.VoidType)
	}
	if budget.Certainty != types.Definite || budget.Criticality != types.High {
		t.Errorf("budget scored %s/%s, want DEFINITE/HIGH", budget.Certainty, budget.Criticality)
	}
	if len(budget.BoundaryConditions) == 0 {
		t.Error("budget gap has no boundary conditions")
	}

	licence := gaps[1]
	if licence.Certainty != types.Hypothesized || licence.Criticality != types.Medium {
		t.Errorf("licence scored %s/%s, want HYPOTHESIZED/MEDIUM", licence.Certainty, licence.Criticality)
	}
}

func TestCounterfactualExploration(t *testing.T) {
	current := state(t, map[string]any{"revenue": float64(50), "strategy": "organic"})
	goal := state(t, map[string]any{"revenue": float64(100), "strategy": "acquisition"})

	gaps, err := counterfactualExploration{}.Discover(current, goal, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(gaps) != 2 {
		t.Fatalf("gaps = %v, want 2", ids(gaps))
	}

	byID := map[string]types.Gap{}
	for _, g := range gaps {
		byID[g.ID] = g
	}

	rev := byID["value_gap_revenue"]
	if rev.VoidType != types.InformationGap {
		t.Errorf("revenue void type = %s, want INFORMATION_GAP", rev.VoidType)
	}
	if rev.Size != 0.5 { // |100-50|/100
		t.Errorf("revenue size = %v, want 0.5", rev.Size)
	}

	strat := byID["divergent_attr_strategy"]
	if strat.VoidType != types.CausalGap {
		t.Errorf("strategy void type = %s, want CAUSAL_GAP", strat.VoidType)
	}
	if strat.Certainty != types.Speculative {
		t.Errorf("strategy certainty = %s, want SPECULATIVE", strat.Certainty)
	}
}

func TestBoundaryProbing(t *testing.T) {
	current := state(t, map[string]any{"legacy_system": "v1", "shared": true})
	goal := state(t, map[string]any{"shared": true})

	gaps, err := boundaryProbing{}.Discover(current, goal, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(gaps) != 1 {
		t.Fatalf("gaps = %v, want 1", ids(gaps))
	}
	g := gaps[0]
	if g.ID != "obsolete_attr_legacy_system" {
		t.Errorf("id = %q", g.ID)
	}
	if g.VoidType != types.TemporalGap {
		t.Errorf("void type = %s, want TEMPORAL_GAP", g.VoidType)
	}
}

func TestInferDomains(t *testing.T) {
	ctx := &types.Context{DomainMappings: map[string][]string{
		"financial": {"budget", "revenue"},
		"security":  {"auth", "credential"},
	}}

	tests := []struct {
		key  string
		want []string
	}{
		{"annual_budget", []string{"general", "financial"}},
		{"auth_token", []string{"general", "security"}},
		{"widget", []string{"general"}},
	}
	for _, tt := range tests {
		got := inferDomains(tt.key, ctx)
		if len(got) != len(tt.want) {
			t.Errorf("inferDomains(%s) = %v, want %v", tt.key, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("inferDomains(%s) = %v, want %v", tt.key, got, tt.want)
				break
			}
		}
	}
}

func ids(gaps []types.Gap) []string {
	out := make([]string, len(gaps))
	for i := range gaps {
		out[i] = gaps[i].ID
	}
	return out
}
