package contig

import (
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chadmdt/debruijn-tp/dbg"
	"github.com/chadmdt/debruijn-tp/kmer"
)

func TestAssembleChain(t *testing.T) {
	g := dbg.BuildDBG(map[string]int{"ABC": 1, "BCD": 1}, 3)
	contigs := Assemble(g)
	require.Len(t, contigs, 1)
	assert.Equal(t, "ABCD", contigs[0].Seq)
	assert.Equal(t, 4, contigs[0].Len)
}

func TestAssembleSingleReadRoundTrip(t *testing.T) {
	// an unbranched read comes back out whole
	read := "TCAGCGCAT"
	counts := kmer.CountKmers([][]byte{[]byte(read)}, 4)
	g := dbg.BuildDBG(counts, 4)
	contigs := Assemble(g)
	require.Len(t, contigs, 1)
	assert.Equal(t, read, contigs[0].Seq)
	assert.Equal(t, len(read), contigs[0].Len)
}

func TestAssembleDisjointChains(t *testing.T) {
	g := dbg.NewDBG(3)
	g.AddEdge("AB", "BC", 1)
	g.AddEdge("XY", "YZ", 1)
	contigs := Assemble(g)
	// cross pairs reach nothing and contribute nothing, sorted start
	// order fixes the output order
	require.Len(t, contigs, 2)
	assert.Equal(t, "ABC", contigs[0].Seq)
	assert.Equal(t, "XYZ", contigs[1].Seq)
}

func TestAssembleBranchingGraph(t *testing.T) {
	// unsimplified fork yields one contig per start sink path
	g := dbg.NewDBG(3)
	g.AddEdge("AB", "BC", 2)
	g.AddEdge("BC", "CD", 2)
	g.AddEdge("BC", "CE", 1)
	contigs := Assemble(g)
	require.Len(t, contigs, 2)
	assert.Equal(t, "ABCD", contigs[0].Seq)
	assert.Equal(t, "ABCE", contigs[1].Seq)
}

func TestAssembleEmptyGraph(t *testing.T) {
	assert.Empty(t, Assemble(dbg.NewDBG(3)))
}

func TestAssembleTwoVariantReads(t *testing.T) {
	// the doubly covered variant survives simplification and comes back
	// as the one contig
	reads := [][]byte{
		[]byte("ACTGCTACGG"),
		[]byte("ACTGCTACGG"),
		[]byte("ACTGCTATGG"),
	}
	counts := kmer.CountKmers(reads, 5)
	g := dbg.BuildDBG(counts, 5)
	g.Simplify(rand.New(rand.NewSource(9001)))

	contigs := Assemble(g)
	require.Len(t, contigs, 1)
	assert.Equal(t, "ACTGCTACGG", contigs[0].Seq)
	assert.Equal(t, 10, contigs[0].Len)
}

func TestSave(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "contigs.fasta")
	contigs := []Contig{
		{Seq: strings.Repeat("ACGT", 30), Len: 120},
		{Seq: "ACGT", Len: 4},
	}
	require.NoError(t, Save(contigs, fn))

	data, err := os.ReadFile(fn)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, ">contig_0 len=120", lines[0])
	assert.Len(t, lines[1], 80)
	assert.Len(t, lines[2], 40)
	assert.Equal(t, ">contig_1 len=4", lines[3])
	assert.Equal(t, "ACGT", lines[4])

	// read the records back through the fasta reader
	fp, err := os.Open(fn)
	require.NoError(t, err)
	defer fp.Close()
	rd := fasta.NewReader(fp, linear.NewSeq("", nil, alphabet.DNA))
	for i, want := range contigs {
		s, err := rd.Read()
		require.NoError(t, err)
		l := s.(*linear.Seq)
		b := make([]byte, len(l.Seq))
		for j, v := range l.Seq {
			b[j] = byte(v)
		}
		assert.Equal(t, want.Seq, string(b), "contig %d", i)
	}
	_, err = rd.Read()
	assert.Equal(t, io.EOF, err)
}

func TestSaveEmpty(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "contigs.fasta")
	require.NoError(t, Save(nil, fn))
	data, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Empty(t, data)
}
