// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/voidmap/pkg/types"
)

// contrastiveAnalysis is the baseline strategy: attribute-by-attribute
// comparison of the two states. It finds goal attributes missing from the
// current state and attributes whose value types disagree (R2.1).
type contrastiveAnalysis struct{}

func (contrastiveAnalysis) Name() string { return "contrastive_analysis" }

func (contrastiveAnalysis) Discover(current, goal types.State, ctx *types.Context) ([]types.Gap, error) {
	var gaps []types.Gap

	for _, key := range goal.SortedKeys() {
		if _, ok := current[key]; ok {
			continue
		}
		gaps = append(gaps, types.Gap{
			ID:          "missing_attr_" + key,
			Description: fmt.Sprintf("Attribute %q exists in the goal state but not in the current state", key),
			VoidType:    types.DependencyGap,
			Domains:     inferDomains(key, ctx),
			Evidence: []types.Evidence{{
				"type": "direct_comparison",
				"key":  key,
			}},
			Manifestations: []string{fmt.Sprintf("Missing %s attribute", key)},
			Criticality:    types.Unknown,
			Certainty:      types.Definite,
			Size:           0.5,
			Clarity:        0.7,
			Fillable:       true,
			FillMethods:    []string{"acquire_" + key},
		})
	}

	for _, key := range current.SortedKeys() {
		goalVal, ok := goal[key]
		if !ok {
			continue
		}
		curVal := current[key]
		if curVal.TypeName() == goalVal.TypeName() {
			continue
		}
		gaps = append(gaps, types.Gap{
			ID:          "type_mismatch_" + key,
			Description: fmt.Sprintf("Attribute %q is a %s in the current state but a %s in the goal state", key, curVal.TypeName(), goalVal.TypeName()),
			VoidType:    types.DependencyGap,
			Domains:     inferDomains(key, ctx),
			Evidence: []types.Evidence{{
				"type":         "type_comparison",
				"key":          key,
				"current_type": curVal.TypeName(),
				"goal_type":    goalVal.TypeName(),
			}},
			Manifestations: []string{fmt.Sprintf("Type conversion needed for %s", key)},
			Criticality:    types.Medium,
			Certainty:      types.Definite,
			Size:           0.4,
			Clarity:        0.8,
			Fillable:       true,
			FillMethods:    []string{"convert_" + key},
		})
	}

	return gaps, nil
}

// dependencyWalk follows the declared dependency chains in the context and
// reports prerequisites of goal attributes that the current state does not
// provide. Chained missing prerequisites are wired together through the
// Dependencies/Blockers links so navigation sees a real ordering (R2.2).
type dependencyWalk struct{}

func (dependencyWalk) Name() string { return "dependency_walk" }

func (dependencyWalk) Discover(current, goal types.State, ctx *types.Context) ([]types.Gap, error) {
	if ctx == nil || len(ctx.Dependencies) == 0 {
		return nil, nil
	}

	features := make([]string, 0, len(ctx.Dependencies))
	for f := range ctx.Dependencies {
		features = append(features, f)
	}
	sort.Strings(features)

	var gaps []types.Gap
	index := make(map[string]int) // gap id -> position in gaps

	for _, feature := range features {
		if _, ok := goal[feature]; !ok {
			continue
		}
		for _, prereq := range ctx.Dependencies[feature] {
			if _, ok := current[prereq]; ok {
				continue
			}
			id := "unmet_dep_" + prereq
			if at, seen := index[id]; seen {
				gaps[at].Manifestations = append(gaps[at].Manifestations,
					fmt.Sprintf("Blocks %s", feature))
				continue
			}
			index[id] = len(gaps)
			gaps = append(gaps, types.Gap{
				ID:          id,
				Description: fmt.Sprintf("Prerequisite %q required by %q is not present in the current state", prereq, feature),
				VoidType:    types.DependencyGap,
				Domains:     inferDomains(prereq, ctx),
				Evidence: []types.Evidence{{
					"type":     "dependency_trace",
					"feature":  feature,
					"requires": prereq,
				}},
				Manifestations: []string{fmt.Sprintf("Blocks %s", feature)},
				Criticality:    types.High,
				Certainty:      types.Hypothesized,
				Size:           0.5,
				Clarity:        0.6,
				Fillable:       true,
				FillMethods:    []string{"provision_" + prereq},
			})
		}
	}

	// Wire chains: if a missing prerequisite itself has missing
	// prerequisites, the deeper gap must be filled first.
	for i := range gaps {
		prereq := strings.TrimPrefix(gaps[i].ID, "unmet_dep_")
		for _, deeper := range ctx.Dependencies[prereq] {
			at, ok := index["unmet_dep_"+deeper]
			if !ok {
				continue
			}
			gaps[i].Dependencies = append(gaps[i].Dependencies, gaps[at].ID)
			gaps[at].Blockers = append(gaps[at].Blockers, gaps[i].ID)
		}
	}

	return gaps, nil
}

// constraintPropagation checks every declared constraint threshold against
// the current state. A numeric attribute below its threshold is a definite
// constraint gap sized by the shortfall; a missing attribute is a
// hypothesized one (R2.3).
type constraintPropagation struct{}

func (constraintPropagation) Name() string { return "constraint_propagation" }

func (constraintPropagation) Discover(current, goal types.State, ctx *types.Context) ([]types.Gap, error) {
	if ctx == nil || len(ctx.Constraints) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(ctx.Constraints))
	for n := range ctx.Constraints {
		names = append(names, n)
	}
	sort.Strings(names)

	var gaps []types.Gap
	for _, name := range names {
		threshold := ctx.Constraints[name]

		val, present := current[name]
		if present && val.Kind() == types.KindNumber && val.AsNumber() >= threshold {
			continue
		}

		g := types.Gap{
			ID:       "constraint_" + name,
			VoidType: types.ConstraintGap,
			Domains:  inferDomains(name, ctx),
			Evidence: []types.Evidence{{
				"type":       "constraint_check",
				"constraint": name,
				"threshold":  fmt.Sprintf("%g", threshold),
			}},
			Fillable:           true,
			FillMethods:        []string{"increase_" + name, "renegotiate_threshold"},
			BoundaryConditions: []string{fmt.Sprintf("requires %s >= %g", name, threshold)},
		}

		if present && val.Kind() == types.KindNumber {
			have := val.AsNumber()
			shortfall := 0.0
			if threshold != 0 {
				shortfall = (threshold - have) / math.Abs(threshold)
			}
			g.Description = fmt.Sprintf("Constraint %q requires at least %g but the current state has %g", name, threshold, have)
			g.Evidence[0]["current"] = fmt.Sprintf("%g", have)
			g.Certainty = types.Definite
			g.Criticality = types.Medium
			if shortfall > 0.5 {
				g.Criticality = types.High
			}
			g.Size = math.Min(1, math.Max(0, shortfall))
			g.Clarity = 0.8
			g.Manifestations = []string{fmt.Sprintf("Shortfall of %g on %s", threshold-have, name)}
		} else {
			g.Description = fmt.Sprintf("Constraint %q requires at least %g but the current state does not measure it", name, threshold)
			g.Certainty = types.Hypothesized
			g.Criticality = types.Medium
			g.Size = 0.5
			g.Clarity = 0.4
			g.Manifestations = []string{fmt.Sprintf("No measurement for %s", name)}
		}

		gaps = append(gaps, g)
	}

	return gaps, nil
}

// counterfactualExploration looks at attributes present in both states with
// equal types but different values and speculates about what separates
// them: numeric deltas become information gaps, other divergences hint at
// an unmodeled causal factor (R2.4).
type counterfactualExploration struct{}

func (counterfactualExploration) Name() string { return "counterfactual_exploration" }

func (counterfactualExploration) Discover(current, goal types.State, ctx *types.Context) ([]types.Gap, error) {
	var gaps []types.Gap

	for _, key := range goal.SortedKeys() {
		curVal, ok := current[key]
		if !ok {
			continue
		}
		goalVal := goal[key]
		if curVal.TypeName() != goalVal.TypeName() || curVal.Equal(goalVal) {
			continue
		}

		if curVal.Kind() == types.KindNumber {
			have, want := curVal.AsNumber(), goalVal.AsNumber()
			scale := math.Max(math.Max(math.Abs(have), math.Abs(want)), 1)
			gaps = append(gaps, types.Gap{
				ID:          "value_gap_" + key,
				Description: fmt.Sprintf("Attribute %q is %g in the current state but %g in the goal state", key, have, want),
				VoidType:    types.InformationGap,
				Domains:     inferDomains(key, ctx),
				Evidence: []types.Evidence{{
					"type":    "value_comparison",
					"key":     key,
					"current": fmt.Sprintf("%g", have),
					"goal":    fmt.Sprintf("%g", want),
				}},
				Manifestations: []string{fmt.Sprintf("Value shift needed on %s", key)},
				Criticality:    types.Low,
				Certainty:      types.Speculative,
				Size:           math.Min(1, math.Abs(want-have)/scale),
				Clarity:        0.5,
				Fillable:       true,
				FillMethods:    []string{"adjust_" + key},
			})
			continue
		}

		gaps = append(gaps, types.Gap{
			ID:          "divergent_attr_" + key,
			Description: fmt.Sprintf("Attribute %q diverges between the states for no recorded reason", key),
			VoidType:    types.CausalGap,
			Domains:     inferDomains(key, ctx),
			Evidence: []types.Evidence{{
				"type": "value_comparison",
				"key":  key,
			}},
			Manifestations: []string{fmt.Sprintf("Unexplained divergence on %s", key)},
			Criticality:    types.Low,
			Certainty:      types.Speculative,
			Size:           0.4,
			Clarity:        0.3,
			Fillable:       true,
			FillMethods:    []string{"investigate_" + key},
		})
	}

	return gaps, nil
}

// boundaryProbing probes the edge of the transition: attributes present in
// the current state with no counterpart in the goal state may need to be
// retired on the way there (R2.5).
type boundaryProbing struct{}

func (boundaryProbing) Name() string { return "boundary_probing" }

func (boundaryProbing) Discover(current, goal types.State, ctx *types.Context) ([]types.Gap, error) {
	var gaps []types.Gap

	for _, key := range current.SortedKeys() {
		if _, ok := goal[key]; ok {
			continue
		}
		gaps = append(gaps, types.Gap{
			ID:          "obsolete_attr_" + key,
			Description: fmt.Sprintf("Attribute %q exists in the current state but has no counterpart in the goal state", key),
			VoidType:    types.TemporalGap,
			Domains:     inferDomains(key, ctx),
			Evidence: []types.Evidence{{
				"type": "boundary_probe",
				"key":  key,
			}},
			Manifestations:     []string{fmt.Sprintf("%s may need retirement during the transition", key)},
			Criticality:        types.Low,
			Certainty:          types.Hypothesized,
			Size:               0.3,
			Clarity:            0.6,
			Fillable:           true,
			FillMethods:        []string{"retire_" + key},
			BoundaryConditions: []string{fmt.Sprintf("ends when %s is retired", key)},
		})
	}

	return gaps, nil
}

// inferDomains tags a gap with every context domain whose keywords appear
// in the attribute name, always including the catch-all "general" tag.
func inferDomains(key string, ctx *types.Context) []string {
	domains := []string{"general"}
	if ctx == nil || len(ctx.DomainMappings) == 0 {
		return domains
	}

	names := make([]string, 0, len(ctx.DomainMappings))
	for d := range ctx.DomainMappings {
		names = append(names, d)
	}
	sort.Strings(names)

	lower := strings.ToLower(key)
	for _, d := range names {
		for _, kw := range ctx.DomainMappings[d] {
			if strings.Contains(lower, strings.ToLower(kw)) {
				domains = append(domains, d)
				break
			}
		}
	}
	return domains
}
