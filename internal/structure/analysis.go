// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"sort"

	"github.com/pdiddy/voidmap/pkg/types"
)

// Bottlenecks returns the ids of gaps under the most prerequisite
// pressure: in-degree centrality over the dependency graph, highest first,
// zero-centrality gaps omitted. These are the chokepoints of the fill
// order.
func Bottlenecks(vm *types.VoidMap) []string {
	d := DependencyGraph(vm)
	centrality := d.InDegreeCentrality()

	ids := make([]string, 0, len(centrality))
	for id, c := range centrality {
		if c > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		if centrality[ids[i]] != centrality[ids[j]] {
			return centrality[ids[i]] > centrality[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

// SimulateResolution answers the what-if: which gaps would collapse if
// gapID were filled. A dependent gap collapses only once every one of its
// in-map prerequisites has collapsed. The returned set includes gapID
// itself and is ordered by collapse wave. Unknown ids yield nil.
func SimulateResolution(vm *types.VoidMap, gapID string) []string {
	if vm.GapByID(gapID) == nil {
		return nil
	}

	collapsed := map[string]bool{gapID: true}
	result := []string{gapID}
	queue := []string{gapID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for i := range vm.Gaps {
			g := &vm.Gaps[i]
			if collapsed[g.ID] || !dependsOn(g, current) {
				continue
			}
			if allDepsCollapsed(vm, g, collapsed) {
				collapsed[g.ID] = true
				result = append(result, g.ID)
				queue = append(queue, g.ID)
			}
		}
	}

	return result
}

func dependsOn(g *types.Gap, id string) bool {
	for _, dep := range g.Dependencies {
		if dep == id {
			return true
		}
	}
	return false
}

// allDepsCollapsed checks every dependency that refers to a gap actually
// present in the map; dangling references do not block collapse.
func allDepsCollapsed(vm *types.VoidMap, g *types.Gap, collapsed map[string]bool) bool {
	for _, dep := range g.Dependencies {
		if vm.GapByID(dep) != nil && !collapsed[dep] {
			return false
		}
	}
	return true
}
