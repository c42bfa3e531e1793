package dbg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDBG(t *testing.T) {
	counts := map[string]int{"ABCDE": 2, "BCDEF": 1}
	g := BuildDBG(counts, 5)

	assert.Equal(t, 5, g.Kmerlen())
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []string{"ABCD", "BCDE", "CDEF"}, g.Nodes())

	w, ok := g.EdgeWeight("ABCD", "BCDE")
	require.True(t, ok)
	assert.Equal(t, 2, w)
	w, ok = g.EdgeWeight("BCDE", "CDEF")
	require.True(t, ok)
	assert.Equal(t, 1, w)
	_, ok = g.EdgeWeight("BCDE", "ABCD")
	assert.False(t, ok)
}

func TestBuildDBGSelfLoop(t *testing.T) {
	// a homopolymer kmer loops its node onto itself
	g := BuildDBG(map[string]int{"AAA": 4}, 3)
	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
	w, ok := g.EdgeWeight("AA", "AA")
	require.True(t, ok)
	assert.Equal(t, 4, w)
	// the loop feeds the node, so it is neither start nor sink
	assert.Empty(t, g.StartingNodes())
	assert.Empty(t, g.SinkNodes())

	g.DeleteNode("AA")
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestStartingAndSinkNodes(t *testing.T) {
	g := NewDBG(3)
	g.AddEdge("AB", "BC", 1)
	g.AddEdge("BC", "CD", 1)
	g.AddEdge("XY", "BC", 1)

	assert.Equal(t, []string{"AB", "XY"}, g.StartingNodes())
	assert.Equal(t, []string{"CD"}, g.SinkNodes())
	assert.Equal(t, 2, g.InDegree("BC"))
	assert.Equal(t, 1, g.OutDegree("BC"))
	assert.Equal(t, []string{"AB", "XY"}, g.Predecessors("BC"))
	assert.Equal(t, []string{"BC"}, g.Successors("AB"))
}

func TestDeleteNode(t *testing.T) {
	g := NewDBG(3)
	g.AddEdge("AB", "BC", 1)
	g.AddEdge("BC", "CD", 2)
	g.AddEdge("AB", "BD", 1)
	require.Equal(t, 4, g.NodeCount())
	require.Equal(t, 3, g.EdgeCount())

	g.DeleteNode("BC")
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
	assert.False(t, g.HasNode("BC"))
	assert.Equal(t, []string{"BD"}, g.Successors("AB"))
	assert.Equal(t, 0, g.InDegree("CD"))

	// deleting again changes nothing
	g.DeleteNode("BC")
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
}

func TestHasPath(t *testing.T) {
	g := NewDBG(3)
	g.AddEdge("AB", "BC", 1)
	g.AddEdge("BC", "CD", 1)
	g.AddNode("ZZ")

	assert.True(t, g.HasPath("AB", "CD"))
	assert.True(t, g.HasPath("AB", "AB"))
	assert.False(t, g.HasPath("CD", "AB"))
	assert.False(t, g.HasPath("AB", "ZZ"))
	assert.False(t, g.HasPath("AB", "QQ"))
}

func TestAllSimplePaths(t *testing.T) {
	g := NewDBG(2)
	g.AddEdge("A", "B", 1)
	g.AddEdge("A", "C", 1)
	g.AddEdge("B", "D", 1)
	g.AddEdge("C", "D", 1)

	paths := g.AllSimplePaths("A", "D")
	require.Len(t, paths, 2)
	// depth first over sorted successors, B branch walks first
	assert.Equal(t, []string{"A", "B", "D"}, paths[0])
	assert.Equal(t, []string{"A", "C", "D"}, paths[1])

	assert.Nil(t, g.AllSimplePaths("A", "A"))
	assert.Nil(t, g.AllSimplePaths("D", "A"))
	assert.Nil(t, g.AllSimplePaths("A", "QQ"))
}

func TestAllSimplePathsCycle(t *testing.T) {
	// repeat induced cycle must not trap the walk
	g := NewDBG(2)
	g.AddEdge("A", "B", 1)
	g.AddEdge("B", "C", 1)
	g.AddEdge("C", "A", 1)
	g.AddEdge("B", "D", 1)

	paths := g.AllSimplePaths("A", "D")
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"A", "B", "D"}, paths[0])

	// self loop on the source is skipped the same way
	g.AddEdge("A", "A", 1)
	paths = g.AllSimplePaths("A", "D")
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"A", "B", "D"}, paths[0])
}
