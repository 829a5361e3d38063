// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cluster groups the gaps of a void map into clusters by one of
// three methods: semantic (similarity of type, domains, and description),
// structural (communities in the relationship graph), or strategic (type
// and criticality buckets). All methods are deterministic for a given
// void map.
// Implements: prd004-clustering (R1-R4).
package cluster

import (
	"crypto/sha256"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/voidmap/internal/graph"
	"github.com/pdiddy/voidmap/internal/structure"
	"github.com/pdiddy/voidmap/pkg/types"
)

const (
	defaultMaxClusters = 5

	// similarityThreshold must be strictly exceeded for a gap to join an
	// existing semantic cluster.
	similarityThreshold = 0.6
)

// Clusterer groups gaps. Warnings (unknown method, structural fallback) go
// to warn.
type Clusterer struct {
	maxClusters int
	warn        io.Writer
}

// New builds a clusterer from cfg. warn may be nil.
func New(cfg types.ClusterConfig, warn io.Writer) *Clusterer {
	maxClusters := cfg.MaxClusters
	if maxClusters <= 0 {
		maxClusters = defaultMaxClusters
	}
	if warn == nil {
		warn = io.Discard
	}
	return &Clusterer{maxClusters: maxClusters, warn: warn}
}

// Cluster groups the void map's gaps using the named method. An unknown
// method warns and falls back to semantic. An empty void map yields no
// clusters.
func (c *Clusterer) Cluster(vm *types.VoidMap, method string) []types.GapCluster {
	if len(vm.Gaps) == 0 {
		return nil
	}

	var clusters []types.GapCluster
	switch method {
	case "", "semantic":
		method = "semantic"
		clusters = c.semantic(vm.Gaps)
	case "structural":
		clusters = c.structural(vm)
		if clusters == nil {
			fmt.Fprintf(c.warn, "warning: structural clustering found no communities, using semantic\n")
			method = "semantic"
			clusters = c.semantic(vm.Gaps)
		}
	case "strategic":
		clusters = c.strategic(vm.Gaps)
	default:
		fmt.Fprintf(c.warn, "warning: unknown clustering method %q, using semantic\n", method)
		method = "semantic"
		clusters = c.semantic(vm.Gaps)
	}

	for i := range clusters {
		finishCluster(&clusters[i], method)
	}

	if method == "strategic" {
		sort.SliceStable(clusters, func(i, j int) bool {
			return clusters[i].StrategicImportance > clusters[j].StrategicImportance
		})
	} else {
		sort.SliceStable(clusters, func(i, j int) bool {
			return len(clusters[i].Gaps) > len(clusters[j].Gaps)
		})
	}

	if len(clusters) > c.maxClusters {
		clusters = clusters[:c.maxClusters]
	}
	return clusters
}

// semantic greedily assigns each gap to the first cluster whose seed it
// resembles closely enough, otherwise it seeds a new cluster. Gap order is
// the void map's order, so results are stable.
func (c *Clusterer) semantic(gaps []types.Gap) []types.GapCluster {
	var clusters []types.GapCluster
	for i := range gaps {
		placed := false
		for j := range clusters {
			if similarity(&gaps[i], &clusters[j].Gaps[0]) > similarityThreshold {
				clusters[j].Gaps = append(clusters[j].Gaps, gaps[i])
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, types.GapCluster{Gaps: []types.Gap{gaps[i]}})
		}
	}
	return clusters
}

// structural clusters by community detection over the relationship graph.
// Returns nil when detection yields no communities; the caller falls back
// to semantic and labels the clusters accordingly.
func (c *Clusterer) structural(vm *types.VoidMap) []types.GapCluster {
	g := structure.RelationGraph(vm)
	communities := graph.GreedyModularityCommunities(g)

	var clusters []types.GapCluster
	for _, community := range communities {
		cl := types.GapCluster{}
		for _, id := range community {
			if member := vm.GapByID(id); member != nil {
				cl.Gaps = append(cl.Gaps, *member)
			}
		}
		if len(cl.Gaps) > 0 {
			clusters = append(clusters, cl)
		}
	}
	return clusters
}

// strategic buckets gaps by (void type, criticality) pairs.
func (c *Clusterer) strategic(gaps []types.Gap) []types.GapCluster {
	type bucket struct {
		t types.VoidType
		c types.GapCriticality
	}
	buckets := make(map[bucket][]types.Gap)
	var order []bucket
	for i := range gaps {
		b := bucket{gaps[i].VoidType, gaps[i].Criticality}
		if _, ok := buckets[b]; !ok {
			order = append(order, b)
		}
		buckets[b] = append(buckets[b], gaps[i])
	}

	clusters := make([]types.GapCluster, 0, len(order))
	for _, b := range order {
		clusters = append(clusters, types.GapCluster{Gaps: buckets[b]})
	}
	return clusters
}

// similarity scores two gaps in [0,1]: void type match, domain overlap,
// and description word overlap.
func similarity(a, b *types.Gap) float64 {
	typeScore := 0.3
	if a.VoidType == b.VoidType {
		typeScore = 1.0
	}
	return 0.4*typeScore +
		0.3*jaccard(a.Domains, b.Domains) +
		0.3*jaccard(words(a.Description), words(b.Description))
}

func words(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	setA := make(map[string]bool, len(a))
	for _, x := range a {
		setA[x] = true
	}
	setB := make(map[string]bool, len(b))
	for _, x := range b {
		setB[x] = true
	}
	inter := 0
	for x := range setA {
		if setB[x] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// finishCluster derives every secondary attribute of a cluster from its
// members: id, centroid, density, type, boundary/core members, importance.
func finishCluster(cl *types.GapCluster, method string) {
	cl.ID = clusterID(method, cl.Gaps)
	cl.Centroid = centroid(cl.Gaps)
	cl.Density = float64(len(cl.Gaps)) / 10
	cl.ClusterType = dominantType(cl.Gaps)
	cl.Boundary, cl.CoreGaps = boundaryAndCore(cl.Gaps, cl.Centroid)
	cl.ComputeStrategicImportance()
}

// clusterID derives a stable id from the method and member ids.
func clusterID(method string, gaps []types.Gap) string {
	ids := make([]string, len(gaps))
	for i := range gaps {
		ids[i] = gaps[i].ID
	}
	sort.Strings(ids)
	sum := sha256.Sum256([]byte(strings.Join(ids, "\x00")))
	return fmt.Sprintf("cluster_%s_%x", method, sum[:4])
}

// featureVector maps a gap onto the numeric feature space used for
// centroids and deviation ranking.
func featureVector(g *types.Gap) map[string]float64 {
	f := map[string]float64{
		"type":        float64(types.TypeIndex(g.VoidType)) / float64(len(types.AllVoidTypes)),
		"criticality": types.CriticalityWeight(g.Criticality),
		"certainty":   types.CertaintyWeight(g.Certainty),
		"size":        g.Size,
		"clarity":     g.Clarity,
		"fillable":    0,
	}
	if g.Fillable {
		f["fillable"] = 1
	}
	for _, domain := range []string{"financial", "temporal", "capability", "information"} {
		key := "domain_" + domain
		f[key] = 0
		for _, d := range g.Domains {
			if d == domain {
				f[key] = 1
				break
			}
		}
	}
	return f
}

func centroid(gaps []types.Gap) map[string]float64 {
	sum := map[string]float64{}
	for i := range gaps {
		for k, v := range featureVector(&gaps[i]) {
			sum[k] += v
		}
	}
	for k := range sum {
		sum[k] /= float64(len(gaps))
	}
	return sum
}

func dominantType(gaps []types.Gap) types.VoidType {
	counts := make(map[types.VoidType]int)
	for i := range gaps {
		counts[gaps[i].VoidType]++
	}
	best := gaps[0].VoidType
	for _, t := range types.AllVoidTypes {
		if counts[t] > counts[best] {
			best = t
		}
	}
	return best
}

// boundaryAndCore ranks members by summed absolute deviation from the
// centroid across every feature: the three farthest are the boundary, the
// three closest the core. Singleton clusters have neither.
func boundaryAndCore(gaps []types.Gap, cent map[string]float64) (boundary, core []string) {
	if len(gaps) < 2 {
		return nil, nil
	}

	type ranked struct {
		id  string
		dev float64
	}
	rankings := make([]ranked, len(gaps))
	for i := range gaps {
		dev := 0.0
		for k, v := range featureVector(&gaps[i]) {
			dev += math.Abs(v - cent[k])
		}
		rankings[i] = ranked{id: gaps[i].ID, dev: dev}
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].dev != rankings[j].dev {
			return rankings[i].dev > rankings[j].dev
		}
		return rankings[i].id < rankings[j].id
	})

	n := 3
	if n > len(rankings) {
		n = len(rankings)
	}
	for i := 0; i < n; i++ {
		boundary = append(boundary, rankings[i].id)
	}
	for i := len(rankings) - 1; i >= len(rankings)-n; i-- {
		core = append(core, rankings[i].id)
	}
	return boundary, core
}
