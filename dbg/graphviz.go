package dbg

import (
	"fmt"
	"os"
	"strconv"

	"github.com/awalterschulze/gographviz"
)

// edges at or under this weight draw dashed
const lowWeightEdge = 3

// WriteGraphviz dumps the graph in DOT form to graphfn, one box per node
// labelled with its text and one labelled edge per kmer. Weak edges draw
// dashed so the strong backbone stands out when plotting.
func (g *DBG) WriteGraphviz(graphfn string) error {
	// create a new graph
	viz := gographviz.NewGraph()
	viz.SetName("G")
	viz.SetDir(true)
	viz.SetStrict(false)
	for _, node := range g.Nodes() {
		attr := make(map[string]string)
		attr["color"] = "Green"
		attr["shape"] = "box"
		viz.AddNode("G", strconv.Quote(node), attr)
	}
	for _, u := range g.Nodes() {
		for _, v := range g.Successors(u) {
			w, _ := g.EdgeWeight(u, v)
			attr := make(map[string]string)
			attr["label"] = strconv.Quote("w:" + strconv.Itoa(w))
			if w <= lowWeightEdge {
				attr["color"] = "Blue"
				attr["style"] = "dashed"
			}
			viz.AddEdge(strconv.Quote(u), strconv.Quote(v), true, attr)
		}
	}
	gfp, err := os.Create(graphfn)
	if err != nil {
		return fmt.Errorf("file: %v create failed, err: %v", graphfn, err)
	}
	defer gfp.Close()
	if _, err := gfp.WriteString(viz.String()); err != nil {
		return fmt.Errorf("file: %v write DOT failed, err: %v", graphfn, err)
	}
	return nil
}
