// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import "sort"

// GreedyModularityCommunities partitions the graph by greedy modularity
// maximization: every node starts in its own community and the pair of
// connected communities whose merge yields the largest positive modularity
// gain is merged, until no merge improves modularity. Communities are
// returned largest first, members sorted. A graph with no edges yields one
// singleton community per node.
func GreedyModularityCommunities(g *Graph) [][]string {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil
	}

	m := g.EdgeCount()
	if m == 0 {
		out := make([][]string, len(nodes))
		for i, v := range nodes {
			out[i] = []string{v}
		}
		return out
	}

	// Community assignment, sum of member degrees, and member lists.
	comm := make(map[string]int, len(nodes))
	members := make(map[int][]string, len(nodes))
	degSum := make(map[int]float64, len(nodes))
	for i, v := range nodes {
		comm[v] = i
		members[i] = []string{v}
		degSum[i] = float64(g.Degree(v))
	}

	twoM := float64(2 * m)

	for {
		// Count edges between every pair of distinct communities.
		between := make(map[[2]int]float64)
		for _, v := range nodes {
			for _, w := range g.Neighbors(v) {
				cv, cw := comm[v], comm[w]
				if cv == cw {
					continue
				}
				if cv > cw {
					cv, cw = cw, cv
				}
				between[[2]int{cv, cw}] += 0.5 // each edge visited from both ends
			}
		}
		if len(between) == 0 {
			break
		}

		// Pick the merge with the best modularity gain, deterministically.
		pairs := make([][2]int, 0, len(between))
		for p := range between {
			pairs = append(pairs, p)
		}
		sort.Slice(pairs, func(i, j int) bool {
			if pairs[i][0] != pairs[j][0] {
				return pairs[i][0] < pairs[j][0]
			}
			return pairs[i][1] < pairs[j][1]
		})

		bestGain := 0.0
		var bestPair [2]int
		found := false
		for _, p := range pairs {
			gain := between[p]/float64(m) - 2*(degSum[p[0]]/twoM)*(degSum[p[1]]/twoM)
			if gain > bestGain {
				bestGain = gain
				bestPair = p
				found = true
			}
		}
		if !found {
			break
		}

		keep, drop := bestPair[0], bestPair[1]
		for _, v := range members[drop] {
			comm[v] = keep
		}
		members[keep] = append(members[keep], members[drop]...)
		degSum[keep] += degSum[drop]
		delete(members, drop)
		delete(degSum, drop)
	}

	out := make([][]string, 0, len(members))
	for _, ms := range members {
		sorted := make([]string, len(ms))
		copy(sorted, ms)
		sort.Strings(sorted)
		out = append(out, sorted)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i][0] < out[j][0]
	})
	return out
}
