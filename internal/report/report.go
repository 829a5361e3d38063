// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles the full analysis output for one comparison:
// void mapping, navigation, clustering, pattern statistics, and derived
// recommendations. The post-mapping stages are independent of each other
// and run concurrently.
// Implements: prd006-reporting (R1-R4).
package report

import (
	"context"
	"fmt"
	"io"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/voidmap/internal/cluster"
	"github.com/pdiddy/voidmap/internal/discover"
	"github.com/pdiddy/voidmap/internal/navigate"
	"github.com/pdiddy/voidmap/pkg/types"
)

// Analyzer runs the full pipeline and assembles a report.
type Analyzer struct {
	engine    *discover.Engine
	clusterer *cluster.Clusterer
	navigator *navigate.Navigator
	cfg       types.AnalysisConfig
}

// NewAnalyzer wires the pipeline stages from one configuration.
// Diagnostics from every stage go to warn (may be nil).
func NewAnalyzer(cfg types.AnalysisConfig, warn io.Writer) *Analyzer {
	return &Analyzer{
		engine:    discover.NewEngine(cfg.Engine, warn),
		clusterer: cluster.New(cfg.Cluster, warn),
		navigator: navigate.New(warn),
		cfg:       cfg,
	}
}

// Engine exposes the underlying discovery engine for callers that need
// the map cache or drift rate.
func (a *Analyzer) Engine() *discover.Engine { return a.engine }

// Analyze maps the void between the two states and produces the full
// report. Mapping runs first since every other stage consumes the void
// map; navigation, clustering, and pattern analysis then run in parallel.
func (a *Analyzer) Analyze(ctx context.Context, current, goal types.State, actx *types.Context) (*types.Report, error) {
	vm := a.engine.MapVoid(current, goal, actx)

	var (
		plan     types.NavigationPlan
		clusters []types.GapCluster
		patterns types.Patterns
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		plan = a.navigator.Navigate(vm, a.cfg.Navigation.Strategy)
		return nil
	})
	g.Go(func() error {
		clusters = a.clusterer.Cluster(vm, a.cfg.Cluster.Method)
		return nil
	})
	g.Go(func() error {
		patterns = AnalyzePatterns(vm)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assembling report: %w", err)
	}

	return BuildReport(vm, plan, clusters, patterns), nil
}

// BuildReport assembles the report surface from the computed pieces.
func BuildReport(vm *types.VoidMap, plan types.NavigationPlan, clusters []types.GapCluster, patterns types.Patterns) *types.Report {
	r := &types.Report{
		Summary: types.ReportSummary{
			VoidMapID:    vm.ID,
			TotalGaps:    len(vm.Gaps),
			VoidDensity:  vm.VoidDensity,
			Navigability: vm.Navigability,
			Connectivity: vm.Connectivity,
		},
		CriticalFindings: criticalFindings(vm),
		NavigationPlan:   plan,
		Patterns:         patterns,
		Recommendations:  recommendations(vm, patterns),
	}
	for _, c := range clusters {
		r.GapClusters = append(r.GapClusters, types.ClusterDigest{
			ID:   c.ID,
			Size: len(c.Gaps),
			Type: c.ClusterType,
		})
	}
	return r
}

// criticalFindings surfaces the first three blocking gaps. Gaps are
// already sorted by criticality, so these are the map's worst.
func criticalFindings(vm *types.VoidMap) []types.CriticalFinding {
	var findings []types.CriticalFinding
	for i := range vm.Gaps {
		g := &vm.Gaps[i]
		if g.Criticality != types.Blocking {
			continue
		}
		findings = append(findings, types.CriticalFinding{
			GapID:       g.ID,
			Description: g.Description,
			Type:        g.VoidType,
			Certainty:   g.Certainty,
		})
		if len(findings) == 3 {
			break
		}
	}
	return findings
}

// AnalyzePatterns computes the distribution statistics and insight lines
// for a void map. An empty map yields empty distributions and no insights.
func AnalyzePatterns(vm *types.VoidMap) types.Patterns {
	p := types.Patterns{
		VoidDensity:             vm.VoidDensity,
		GapDistribution:         map[string]int{},
		CriticalityDistribution: map[string]int{},
		CertaintyDistribution:   map[string]int{},
	}
	if len(vm.Gaps) == 0 {
		return p
	}

	fillable := 0
	for i := range vm.Gaps {
		g := &vm.Gaps[i]
		p.GapDistribution[string(g.VoidType)]++
		p.CriticalityDistribution[string(g.Criticality)]++
		p.CertaintyDistribution[string(g.Certainty)]++
		if g.Fillable {
			fillable++
		}
	}
	p.FillabilityRate = float64(fillable) / float64(len(vm.Gaps))

	if t, n := dominantEntry(p.GapDistribution); n > 0 {
		p.Insights = append(p.Insights,
			fmt.Sprintf("Most voids are %s gaps (%d of %d)", t, n, len(vm.Gaps)))
	}
	if p.FillabilityRate > 0.7 {
		p.Insights = append(p.Insights, "Most gaps appear fillable (optimistic scenario)")
	} else if p.FillabilityRate < 0.3 {
		p.Insights = append(p.Insights, "Many gaps appear unfillable (pessimistic scenario)")
	}
	if blocking := p.CriticalityDistribution[string(types.Blocking)]; blocking > 0 {
		p.Insights = append(p.Insights,
			fmt.Sprintf("%d blocking gaps must be addressed first", blocking))
	}

	return p
}

// dominantEntry returns the key with the highest count, ties broken
// alphabetically for determinism.
func dominantEntry(dist map[string]int) (string, int) {
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, bestN := "", 0
	for _, k := range keys {
		if dist[k] > bestN {
			best, bestN = k, dist[k]
		}
	}
	return best, bestN
}

// recommendations derives the action items from the map's shape. Thresholds
// follow the report contract: extreme density in either direction, the
// constraint/dependency balance, low fillability, and blocking pile-ups.
func recommendations(vm *types.VoidMap, p types.Patterns) []string {
	var recs []string

	if vm.VoidDensity > 0.8 {
		recs = append(recs, "Void density is very high: consider redefining the goal state")
	} else if vm.VoidDensity < 0.2 {
		recs = append(recs, "Proceed cautiously: the void is sparse and likely navigable")
	}

	if p.GapDistribution[string(types.ConstraintGap)] > p.GapDistribution[string(types.DependencyGap)] {
		recs = append(recs, "Constraints dominate: negotiate or circumvent them before acquiring dependencies")
	}

	if len(vm.Gaps) > 0 && p.FillabilityRate < 0.3 {
		recs = append(recs, "Few gaps are fillable: explore alternative paths to the goal")
	}

	if blocking := p.CriticalityDistribution[string(types.Blocking)]; blocking > 2 {
		recs = append(recs, fmt.Sprintf("Address the %d blocking gaps before anything else", blocking))
	}

	return recs
}
