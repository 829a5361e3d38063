// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph provides a small adjacency-set graph abstraction with the
// algorithms void analysis needs: density, betweenness centrality, greedy
// modularity communities, and in-degree centrality. It is deliberately
// generic over string node ids. Implements: prd003-void-structure (R4).
package graph

import "sort"

// Graph is an undirected graph over string node ids. Node insertion order
// is preserved so traversals are deterministic.
type Graph struct {
	order []string
	adj   map[string]map[string]struct{}
}

// NewGraph returns an empty undirected graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[string]map[string]struct{})}
}

// AddNode adds a node if not already present.
func (g *Graph) AddNode(id string) {
	if _, ok := g.adj[id]; ok {
		return
	}
	g.adj[id] = make(map[string]struct{})
	g.order = append(g.order, id)
}

// AddEdge adds an undirected edge, inserting missing endpoints.
// Self-loops are ignored.
func (g *Graph) AddEdge(a, b string) {
	if a == b {
		return
	}
	g.AddNode(a)
	g.AddNode(b)
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// HasEdge reports whether an edge connects a and b.
func (g *Graph) HasEdge(a, b string) bool {
	if nbrs, ok := g.adj[a]; ok {
		_, ok := nbrs[b]
		return ok
	}
	return false
}

// Nodes returns the node ids in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Neighbors returns the sorted neighbor ids of a node.
func (g *Graph) Neighbors(id string) []string {
	nbrs := g.adj[id]
	out := make([]string, 0, len(nbrs))
	for n := range nbrs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Degree returns the number of neighbors of a node.
func (g *Graph) Degree(id string) int { return len(g.adj[id]) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, nbrs := range g.adj {
		total += len(nbrs)
	}
	return total / 2
}

// Density returns edges over possible edges: 2m/(n(n-1)). A graph with
// one node or fewer has density 0.
func (g *Graph) Density() float64 {
	n := g.NodeCount()
	if n <= 1 {
		return 0
	}
	return float64(2*g.EdgeCount()) / float64(n*(n-1))
}

// Digraph is a directed graph over string node ids.
type Digraph struct {
	order []string
	succ  map[string]map[string]struct{}
	pred  map[string]map[string]struct{}
}

// NewDigraph returns an empty directed graph.
func NewDigraph() *Digraph {
	return &Digraph{
		succ: make(map[string]map[string]struct{}),
		pred: make(map[string]map[string]struct{}),
	}
}

// AddNode adds a node if not already present.
func (d *Digraph) AddNode(id string) {
	if _, ok := d.succ[id]; ok {
		return
	}
	d.succ[id] = make(map[string]struct{})
	d.pred[id] = make(map[string]struct{})
	d.order = append(d.order, id)
}

// AddEdge adds a directed edge from -> to, inserting missing endpoints.
func (d *Digraph) AddEdge(from, to string) {
	if from == to {
		return
	}
	d.AddNode(from)
	d.AddNode(to)
	d.succ[from][to] = struct{}{}
	d.pred[to][from] = struct{}{}
}

// HasNode reports whether id is in the graph.
func (d *Digraph) HasNode(id string) bool {
	_, ok := d.succ[id]
	return ok
}

// Nodes returns the node ids in insertion order.
func (d *Digraph) Nodes() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// InDegree returns the number of incoming edges of a node.
func (d *Digraph) InDegree(id string) int { return len(d.pred[id]) }

// Successors returns the sorted ids reachable by one outgoing edge.
func (d *Digraph) Successors(id string) []string {
	out := make([]string, 0, len(d.succ[id]))
	for n := range d.succ[id] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Predecessors returns the sorted ids with an edge into id.
func (d *Digraph) Predecessors(id string) []string {
	out := make([]string, 0, len(d.pred[id]))
	for n := range d.pred[id] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// NodeCount returns the number of nodes.
func (d *Digraph) NodeCount() int { return len(d.order) }

// InDegreeCentrality returns each node's in-degree divided by n-1.
// Graphs with one node or fewer yield zeros.
func (d *Digraph) InDegreeCentrality() map[string]float64 {
	out := make(map[string]float64, len(d.order))
	n := d.NodeCount()
	for _, id := range d.order {
		if n <= 1 {
			out[id] = 0
			continue
		}
		out[id] = float64(d.InDegree(id)) / float64(n-1)
	}
	return out
}
