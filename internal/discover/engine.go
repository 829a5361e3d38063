// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover runs the gap discovery strategies over a pair of state
// descriptions and assembles the resulting void map. Each strategy is
// independent and fail-soft: one failing strategy never aborts a mapping.
// Implements: prd002-discovery (R1-R5).
package discover

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/voidmap/internal/structure"
	"github.com/pdiddy/voidmap/pkg/types"
)

const (
	defaultDepth = 3
	defaultRigor = 0.8
)

// Strategy discovers gaps between two states. Implementations must be
// side-effect free over their inputs.
type Strategy interface {
	Name() string
	Discover(current, goal types.State, ctx *types.Context) ([]types.Gap, error)
}

// MappingRecord is one diagnostic history entry per strategy invocation.
// History never feeds back into scoring.
type MappingRecord struct {
	MapID     string    `json:"map_id" yaml:"map_id"`
	Strategy  string    `json:"strategy" yaml:"strategy"`
	GapsFound int       `json:"gaps_found" yaml:"gaps_found"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Engine maps the void between state pairs. It owns the process-lifetime
// map cache and mapping history; both live until Reset or the engine is
// discarded, and are never evicted automatically (R5.2).
type Engine struct {
	depth      int
	rigor      float64
	strategies []Strategy
	warn       io.Writer

	mu      sync.Mutex
	maps    map[string]*types.VoidMap
	history []MappingRecord
	drift   *structure.DriftTracker
}

// NewEngine builds an engine with the fixed, ordered strategy table:
// contrastive analysis first, then dependency walk, constraint
// propagation, counterfactual exploration, and boundary probing. The
// order matters: deduplication keeps the first occurrence of a gap, so
// earlier strategies win. Diagnostics go to warn (may be nil).
func NewEngine(cfg types.EngineConfig, warn io.Writer) *Engine {
	depth := cfg.Depth
	if depth <= 0 {
		depth = defaultDepth
	}
	rigor := cfg.Rigor
	if rigor <= 0 || rigor > 1 {
		rigor = defaultRigor
	}
	if warn == nil {
		warn = io.Discard
	}
	return &Engine{
		depth: depth,
		rigor: rigor,
		strategies: []Strategy{
			contrastiveAnalysis{},
			dependencyWalk{},
			constraintPropagation{},
			counterfactualExploration{},
			boundaryProbing{},
		},
		warn:  warn,
		maps:  make(map[string]*types.VoidMap),
		drift: &structure.DriftTracker{},
	}
}

// MapVoid maps the void between the current and goal states. ctx may be
// nil. The returned void map is complete: gaps discovered, deduplicated,
// sorted by criticality, relationship graph built, and metrics computed.
// The map is cached by id; identical inputs reproduce the same id.
func (e *Engine) MapVoid(current, goal types.State, ctx *types.Context) *types.VoidMap {
	if ctx == nil {
		ctx = &types.Context{}
	}

	vm := &types.VoidMap{
		ID:               types.DeriveVoidMapID(current, goal),
		Current:          current,
		Goal:             goal,
		Timestamp:        time.Now().UTC(),
		DiscoveryMethod:  "full_spectrum",
		ExplorationDepth: e.depth,
	}

	var all []types.Gap
	for _, s := range e.strategies {
		gaps, err := s.Discover(current, goal, ctx)
		if err != nil {
			fmt.Fprintf(e.warn, "warning: discovery strategy %s failed: %v\n", s.Name(), err)
			e.record(MappingRecord{
				MapID:     vm.ID,
				Strategy:  s.Name(),
				Timestamp: time.Now().UTC(),
			})
			continue
		}
		for i := range gaps {
			gaps[i].DiscoveredBy = s.Name()
			if gaps[i].DiscoveryTime.IsZero() {
				gaps[i].DiscoveryTime = vm.Timestamp
			}
		}
		all = append(all, gaps...)
		e.record(MappingRecord{
			MapID:     vm.ID,
			Strategy:  s.Name(),
			GapsFound: len(gaps),
			Timestamp: time.Now().UTC(),
		})
	}

	unique := deduplicate(all)
	ensureUniqueIDs(unique)
	for i := range unique {
		unique[i].RecomputeNegativeShape()
	}

	// Highest criticality first; stable so strategy order breaks ties.
	sort.SliceStable(unique, func(i, j int) bool {
		return types.CriticalityWeight(unique[i].Criticality) >
			types.CriticalityWeight(unique[j].Criticality)
	})

	vm.Gaps = unique
	structure.BuildRelationshipGraph(vm)
	vm.Confidence = e.confidence(vm)

	e.drift.Record(vm.VoidDensity, vm.Timestamp)

	e.mu.Lock()
	e.maps[vm.ID] = vm
	e.mu.Unlock()

	return vm
}

// Map returns a cached void map by id.
func (e *Engine) Map(id string) (*types.VoidMap, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	vm, ok := e.maps[id]
	return vm, ok
}

// History returns a copy of the mapping history.
func (e *Engine) History() []MappingRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]MappingRecord, len(e.history))
	copy(out, e.history)
	return out
}

// DriftRate reports the void-density drift across every mapping this
// engine has run: positive means voids are shrinking over time.
func (e *Engine) DriftRate() float64 { return e.drift.Rate() }

// Reset clears the map cache, history, and drift record.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.maps = make(map[string]*types.VoidMap)
	e.history = nil
	e.drift = &structure.DriftTracker{}
}

func (e *Engine) record(r MappingRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = append(e.history, r)
}

// confidence scales the engine's rigor by the mean certainty weight of the
// discovered gaps; an empty void scores full confidence in its emptiness.
func (e *Engine) confidence(vm *types.VoidMap) float64 {
	if len(vm.Gaps) == 0 {
		return e.rigor
	}
	total := 0.0
	for i := range vm.Gaps {
		total += types.CertaintyWeight(vm.Gaps[i].Certainty)
	}
	return e.rigor * total / float64(len(vm.Gaps))
}

// deduplicate merges gaps whose descriptions match case-insensitively
// after trimming; the first occurrence wins (R3.1).
func deduplicate(gaps []types.Gap) []types.Gap {
	seen := make(map[string]bool, len(gaps))
	unique := make([]types.Gap, 0, len(gaps))
	for _, g := range gaps {
		key := strings.ToLower(strings.TrimSpace(g.Description))
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, g)
	}
	return unique
}

// ensureUniqueIDs suffixes any id collision surviving deduplication, so
// ids stay unique within the void map.
func ensureUniqueIDs(gaps []types.Gap) {
	seen := make(map[string]int, len(gaps))
	for i := range gaps {
		id := gaps[i].ID
		if n, ok := seen[id]; ok {
			seen[id] = n + 1
			gaps[i].ID = fmt.Sprintf("%s_%d", id, n+1)
		}
		seen[gaps[i].ID] = 1
	}
}
