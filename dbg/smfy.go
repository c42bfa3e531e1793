package dbg

import (
	"fmt"
	"math/rand"

	"github.com/chadmdt/debruijn-tp/utils"
)

// PathAverageWeight returns the mean weight over every edge running between
// nodes of path, the weight of the subgraph path induces. A subgraph
// without edges weighs zero.
func (g *DBG) PathAverageWeight(path []string) float64 {
	inPath := make(map[string]struct{}, len(path))
	for _, n := range path {
		inPath[n] = struct{}{}
	}
	sum, num := 0, 0
	for u := range inPath {
		for v, w := range g.out[u] {
			if _, ok := inPath[v]; ok {
				sum += w
				num++
			}
		}
	}
	if num == 0 {
		return 0
	}
	return float64(sum) / float64(num)
}

// first index carrying the maximum value
func argmaxFloat64(vals []float64) int {
	best := 0
	for i, v := range vals {
		if v > vals[best] {
			best = i
		}
	}
	return best
}

// selectBestPath keeps one path of paths and removes the others. The
// strongest average weight wins, on a weight tie the longest path wins, on
// a full tie rng draws, so one seed always keeps the same path.
func (g *DBG) selectBestPath(paths [][]string, deleteEntry, deleteSink bool, rng *rand.Rand) {
	if len(paths) == 0 {
		return
	}
	weights := make([]float64, len(paths))
	lengths := make([]float64, len(paths))
	for i, p := range paths {
		weights[i] = g.PathAverageWeight(p)
		lengths[i] = float64(len(p))
	}
	var best int
	if utils.Stdev(weights) > 0 {
		best = argmaxFloat64(weights)
	} else if utils.Stdev(lengths) > 0 {
		best = argmaxFloat64(lengths)
	} else {
		best = rng.Intn(len(paths))
	}
	g.removePaths(paths, best, deleteEntry, deleteSink)
}

// removePaths deletes every path of paths except paths[keep]. deleteEntry
// and deleteSink extend the deletion to a losing path's first and last
// node. Nodes the kept path runs through always survive, a losing path may
// share more than its extremities with the winner.
func (g *DBG) removePaths(paths [][]string, keep int, deleteEntry, deleteSink bool) {
	kept := make(map[string]struct{}, len(paths[keep]))
	for _, n := range paths[keep] {
		kept[n] = struct{}{}
	}
	for i, path := range paths {
		if i == keep {
			continue
		}
		lo, hi := 0, len(path)
		if !deleteEntry {
			lo = 1
		}
		if !deleteSink {
			hi--
		}
		if lo >= hi {
			continue
		}
		for _, node := range path[lo:hi] {
			if _, ok := kept[node]; ok {
				continue
			}
			g.DeleteNode(node)
		}
	}
}

// every node reaching src walking edges backwards, mapped to its distance
func (g *DBG) ancestorDepths(src string) map[string]int {
	depths := map[string]int{src: 0}
	queue := []string{src}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for v := range g.in[u] {
			if _, ok := depths[v]; !ok {
				depths[v] = depths[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return depths
}

// CommonAncestor returns the common ancestor of a and b lying closest to
// the pair, smallest summed backward distance first and lexicographic order
// on a distance tie. A node counts as its own ancestor, so for a feeding b
// the call returns a itself.
func (g *DBG) CommonAncestor(a, b string) (string, bool) {
	da := g.ancestorDepths(a)
	db := g.ancestorDepths(b)
	best, bestDist := "", -1
	for n, d1 := range da {
		d2, ok := db[n]
		if !ok {
			continue
		}
		if d := d1 + d2; bestDist < 0 || d < bestDist || (d == bestDist && n < best) {
			best, bestDist = n, d
		}
	}
	if bestDist < 0 {
		return "", false
	}
	return best, true
}

// SolveBubble enumerates the simple paths between ancestor and descendant
// and applies the selection policy on them. Fewer than two paths is nothing
// to resolve. Reports whether the graph lost a node or an edge, paths with
// interleaved cycle residue can tie without anything left to delete.
func (g *DBG) SolveBubble(ancestor, descendant string, rng *rand.Rand) bool {
	paths := g.AllSimplePaths(ancestor, descendant)
	if len(paths) < 2 {
		return false
	}
	nodes, edges := g.NodeCount(), g.EdgeCount()
	g.selectBestPath(paths, false, false, rng)
	return g.NodeCount() < nodes || g.EdgeCount() < edges
}

// popBubble scans for one resolvable bubble, a node with two predecessors
// sharing a common ancestor beside the node itself, and resolves it.
// Reports whether the graph changed.
func (g *DBG) popBubble(rng *rand.Rand) bool {
	for _, node := range g.Nodes() {
		preds := g.Predecessors(node)
		if len(preds) < 2 {
			continue
		}
		for i := 0; i < len(preds); i++ {
			for j := i + 1; j < len(preds); j++ {
				anc, ok := g.CommonAncestor(preds[i], preds[j])
				if !ok || anc == node {
					continue
				}
				if g.SolveBubble(anc, node, rng) {
					return true
				}
			}
		}
	}
	return false
}

// SimplifyBubbles resolves bubbles until a full scan finds none. Every
// round deletes at least one node or edge, so the loop is bounded by the
// graph size.
func (g *DBG) SimplifyBubbles(rng *rand.Rand) {
	for g.popBubble(rng) {
	}
}

// popEntryTip scans for one junction fed by two or more paths from the
// starting nodes and prunes every path but the best, entry nodes included.
// Reports whether the graph changed.
func (g *DBG) popEntryTip(rng *rand.Rand) bool {
	starts := g.StartingNodes()
	if len(starts) == 0 {
		return false
	}
	for _, node := range g.Nodes() {
		if len(g.in[node]) < 2 {
			continue
		}
		var paths [][]string
		for _, s := range starts {
			paths = append(paths, g.AllSimplePaths(s, node)...)
		}
		if len(paths) < 2 {
			continue
		}
		nodes, edges := g.NodeCount(), g.EdgeCount()
		g.selectBestPath(paths, true, false, rng)
		if g.NodeCount() < nodes || g.EdgeCount() < edges {
			return true
		}
	}
	return false
}

// SolveEntryTips prunes entry tips until a full scan finds none.
func (g *DBG) SolveEntryTips(rng *rand.Rand) {
	for g.popEntryTip(rng) {
	}
}

// popOutTip mirrors popEntryTip on the outgoing side, a node branching into
// two or more paths towards the sink nodes keeps only the best one, sinks
// included. Reports whether the graph changed.
func (g *DBG) popOutTip(rng *rand.Rand) bool {
	sinks := g.SinkNodes()
	if len(sinks) == 0 {
		return false
	}
	for _, node := range g.Nodes() {
		if len(g.out[node]) < 2 {
			continue
		}
		var paths [][]string
		for _, t := range sinks {
			paths = append(paths, g.AllSimplePaths(node, t)...)
		}
		if len(paths) < 2 {
			continue
		}
		nodes, edges := g.NodeCount(), g.EdgeCount()
		g.selectBestPath(paths, false, true, rng)
		if g.NodeCount() < nodes || g.EdgeCount() < edges {
			return true
		}
	}
	return false
}

// SolveOutTips prunes out tips until a full scan finds none.
func (g *DBG) SolveOutTips(rng *rand.Rand) {
	for g.popOutTip(rng) {
	}
}

// Simplify runs bubble, entry tip and out tip resolution in that order
// until one whole round leaves the graph untouched. Tip pruning can expose
// new bubbles and bubble popping can expose new tips, the joint fixed point
// covers both.
func (g *DBG) Simplify(rng *rand.Rand) {
	deleteNodeNum, deleteEdgeNum := g.NodeCount(), g.EdgeCount()
	for {
		nodes, edges := g.NodeCount(), g.EdgeCount()
		g.SimplifyBubbles(rng)
		g.SolveEntryTips(rng)
		g.SolveOutTips(rng)
		if g.NodeCount() == nodes && g.EdgeCount() == edges {
			break
		}
	}
	deleteNodeNum -= g.NodeCount()
	deleteEdgeNum -= g.EdgeCount()
	fmt.Printf("[Simplify] deleted node number is : %d\n\tdeleted edge number is : %d\n", deleteNodeNum, deleteEdgeNum)
}
