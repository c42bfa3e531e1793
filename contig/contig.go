package contig

import (
	"fmt"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/chadmdt/debruijn-tp/dbg"
)

// contigs wrap at the usual fasta line width
const FastaLineWidth = 80

// Contig is one assembled sequence and its length.
type Contig struct {
	Seq string
	Len int
}

// Assemble reconstructs one contig per simple path running from a starting
// node to a sink node of the simplified graph. A contig begins as the
// starting node text and grows by the last character of every following
// node, consecutive nodes overlap on all but one character. Start sink
// pairs without a connecting path contribute nothing. Enumeration order is
// sorted so output order is stable for a fixed seed.
func Assemble(g *dbg.DBG) (contigs []Contig) {
	for _, start := range g.StartingNodes() {
		for _, sink := range g.SinkNodes() {
			if !g.HasPath(start, sink) {
				continue
			}
			for _, path := range g.AllSimplePaths(start, sink) {
				var sb strings.Builder
				sb.WriteString(path[0])
				for _, node := range path[1:] {
					sb.WriteByte(node[len(node)-1])
				}
				seq := sb.String()
				contigs = append(contigs, Contig{Seq: seq, Len: len(seq)})
			}
		}
	}
	return contigs
}

// Save writes contigs to fn in fasta form, one '>contig_<index> len=<length>'
// record per contig with the sequence wrapped at FastaLineWidth columns.
func Save(contigs []Contig, fn string) error {
	fp, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer fp.Close()
	w := fasta.NewWriter(fp, FastaLineWidth)
	for i, ctg := range contigs {
		s := linear.NewSeq(fmt.Sprintf("contig_%d", i), alphabet.BytesToLetters([]byte(ctg.Seq)), alphabet.DNA)
		s.Desc = fmt.Sprintf("len=%d", ctg.Len)
		if _, err := w.Write(s); err != nil {
			return fmt.Errorf("file: %v write contig_%d failed, err: %v", fn, i, err)
		}
	}
	return nil
}
