package dbg

import (
	"log"
	"sort"
)

// DBG is a weighted de Bruijn graph over the prefix and suffix nodes of a
// kmer count table. Every kmer of length k contributes one directed edge
// from its length k-1 prefix to its length k-1 suffix, weighted by the kmer
// count. After construction the graph only ever shrinks, simplification
// deletes nodes and their incident edges in place.
type DBG struct {
	kmerlen int
	out     map[string]map[string]int      // node -> successor -> edge weight
	in      map[string]map[string]struct{} // node -> predecessor set
	edges   int
}

// NewDBG returns an empty graph for kmers of length kmerlen.
func NewDBG(kmerlen int) *DBG {
	return &DBG{
		kmerlen: kmerlen,
		out:     make(map[string]map[string]int),
		in:      make(map[string]map[string]struct{}),
	}
}

// BuildDBG builds the graph from a kmer count table. Distinct kmers map to
// distinct (prefix, suffix) pairs for any ksize above one, so no weight
// merging happens on the usual path.
func BuildDBG(counts map[string]int, kmerlen int) *DBG {
	g := NewDBG(kmerlen)
	for km, cnt := range counts {
		if len(km) != kmerlen {
			log.Fatalf("[BuildDBG] kmer: %s len != kmerlen: %d\n", km, kmerlen)
		}
		g.AddEdge(km[:len(km)-1], km[1:], cnt)
	}
	return g
}

func (g *DBG) Kmerlen() int { return g.kmerlen }

// AddNode inserts node, inserting twice changes nothing.
func (g *DBG) AddNode(node string) {
	if _, ok := g.out[node]; ok {
		return
	}
	g.out[node] = make(map[string]int)
	g.in[node] = make(map[string]struct{})
}

// AddEdge inserts the directed edge u->v carrying weight, adding missing
// endpoints on the way. Weights of duplicate pairs accumulate, duplicates
// only arise for ksize 1 where every kmer collapses onto the empty node and
// summing keeps the build independent of map iteration order.
func (g *DBG) AddEdge(u, v string, weight int) {
	g.AddNode(u)
	g.AddNode(v)
	if _, ok := g.out[u][v]; !ok {
		g.edges++
	}
	g.out[u][v] += weight
	g.in[v][u] = struct{}{}
}

func (g *DBG) HasNode(node string) bool {
	_, ok := g.out[node]
	return ok
}

// EdgeWeight returns the weight of u->v and whether that edge exists.
func (g *DBG) EdgeWeight(u, v string) (int, bool) {
	w, ok := g.out[u][v]
	return w, ok
}

func (g *DBG) NodeCount() int { return len(g.out) }

func (g *DBG) EdgeCount() int { return g.edges }

func (g *DBG) InDegree(node string) int { return len(g.in[node]) }

func (g *DBG) OutDegree(node string) int { return len(g.out[node]) }

// Nodes returns every node in lexicographic order, all scans iterate this
// way so one seed always replays the same run.
func (g *DBG) Nodes() []string {
	nodes := make([]string, 0, len(g.out))
	for n := range g.out {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}

// Successors returns the targets of node's outgoing edges in lexicographic
// order.
func (g *DBG) Successors(node string) []string {
	succs := make([]string, 0, len(g.out[node]))
	for v := range g.out[node] {
		succs = append(succs, v)
	}
	sort.Strings(succs)
	return succs
}

// Predecessors returns the sources of node's incoming edges in
// lexicographic order.
func (g *DBG) Predecessors(node string) []string {
	preds := make([]string, 0, len(g.in[node]))
	for u := range g.in[node] {
		preds = append(preds, u)
	}
	sort.Strings(preds)
	return preds
}

// DeleteNode removes node and every edge touching it. Deleting an absent
// node changes nothing, overlapping losing paths hit the same node twice.
func (g *DBG) DeleteNode(node string) {
	if !g.HasNode(node) {
		return
	}
	for v := range g.out[node] {
		delete(g.in[v], node)
		g.edges--
	}
	for u := range g.in[node] {
		delete(g.out[u], node)
		g.edges--
	}
	delete(g.out, node)
	delete(g.in, node)
}

// StartingNodes returns the nodes without a single incoming edge, sorted.
func (g *DBG) StartingNodes() (starts []string) {
	for n := range g.out {
		if len(g.in[n]) == 0 {
			starts = append(starts, n)
		}
	}
	sort.Strings(starts)
	return starts
}

// SinkNodes returns the nodes without a single outgoing edge, sorted.
func (g *DBG) SinkNodes() (sinks []string) {
	for n := range g.out {
		if len(g.out[n]) == 0 {
			sinks = append(sinks, n)
		}
	}
	sort.Strings(sinks)
	return sinks
}

// HasPath reports whether dst is reachable from src along directed edges.
func (g *DBG) HasPath(src, dst string) bool {
	if !g.HasNode(src) || !g.HasNode(dst) {
		return false
	}
	if src == dst {
		return true
	}
	seen := map[string]bool{src: true}
	queue := []string{src}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for v := range g.out[u] {
			if v == dst {
				return true
			}
			if !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	return false
}

// AllSimplePaths returns every directed src to dst path visiting no node
// twice, in depth first order over sorted successors. The per path visited
// set keeps repeat induced cycles from being walked, so the enumeration
// always terminates. A node paired with itself yields nothing.
func (g *DBG) AllSimplePaths(src, dst string) (paths [][]string) {
	if !g.HasNode(src) || !g.HasNode(dst) || src == dst {
		return nil
	}
	onPath := map[string]bool{src: true}
	path := []string{src}
	var walk func(u string)
	walk = func(u string) {
		if u == dst {
			p := make([]string, len(path))
			copy(p, path)
			paths = append(paths, p)
			return
		}
		for _, v := range g.Successors(u) {
			if onPath[v] {
				continue
			}
			onPath[v] = true
			path = append(path, v)
			walk(v)
			path = path[:len(path)-1]
			delete(onPath, v)
		}
	}
	walk(src)
	return paths
}
