// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

// Betweenness computes normalized betweenness centrality for every node
// using Brandes' algorithm over unweighted shortest paths. Values are
// normalized by (n-1)(n-2) so they fall in [0,1]; graphs with fewer than
// three nodes yield all zeros. Disconnected graphs are handled naturally:
// unreachable pairs simply contribute nothing.
func Betweenness(g *Graph) map[string]float64 {
	nodes := g.Nodes()
	cb := make(map[string]float64, len(nodes))
	for _, v := range nodes {
		cb[v] = 0
	}

	for _, s := range nodes {
		// Single-source shortest paths by BFS.
		stack := make([]string, 0, len(nodes))
		preds := make(map[string][]string, len(nodes))
		sigma := map[string]float64{s: 1}
		dist := map[string]int{s: 0}

		queue := []string{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range g.Neighbors(v) {
				if _, seen := dist[w]; !seen {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		// Back-propagate dependencies.
		delta := make(map[string]float64, len(stack))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	// Each unordered pair was counted from both endpoints; the (n-1)(n-2)
	// divisor folds in the factor of two for undirected graphs.
	n := len(nodes)
	if n > 2 {
		scale := 1.0 / float64((n-1)*(n-2))
		for v := range cb {
			cb[v] *= scale
		}
	} else {
		for v := range cb {
			cb[v] = 0
		}
	}

	return cb
}
