package main

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/jwaldrip/odin/cli"

	"github.com/chadmdt/debruijn-tp/contig"
	"github.com/chadmdt/debruijn-tp/dbg"
	"github.com/chadmdt/debruijn-tp/kmer"
	"github.com/chadmdt/debruijn-tp/utils"
)

const Kmerdef = 22
const Seeddef = 9001

var app = cli.New("1.0.0", "de Bruijn graph assembler for short sequence reads", func(c cli.Command) {})

func init() {
	go func() {
		log.Println(http.ListenAndServe("localhost:6092", nil))
	}()
	app.DefineIntFlag("K", Kmerdef, "kmer length")
	app.DefineInt64Flag("S", Seeddef, "seed of the tie breaking random source")
	asm := app.DefineSubCommand("asm", "assemble reads into contigs", Asm)
	{
		asm.DefineStringFlag("i", "", "input reads file(*.fa|fasta|fq|fastq[.gz] or *.bam)")
		asm.DefineStringFlag("o", "contigs.fasta", "output contigs file")
		asm.DefineStringFlag("f", "", "output dot graph file")
		asm.DefineStringFlag("G", "", "output graph dump file")
		asm.DefineIntFlag("MinKmerFreq", 1, "Min Kmer Freq allown store")
	}
	dot := app.DefineSubCommand("dot", "write a graph dump as dot file", Dot)
	{
		dot.DefineStringFlag("g", "", "input graph dump file")
		dot.DefineStringFlag("o", "graph.dot", "output dot graph file")
	}
	stat := app.DefineSubCommand("stat", "report size and weight stats of a graph dump", Stat)
	{
		stat.DefineStringFlag("g", "", "input graph dump file")
	}
}

type AsmOptions struct {
	utils.ArgsOpt
	Input       string
	Output      string
	GraphFn     string
	DumpFn      string
	MinKmerFreq int
}

func checkAsmArgs(c cli.Command) (opt AsmOptions, suc bool) {
	opt.Input = c.Flag("i").String()
	if opt.Input == "" {
		log.Fatalf("[checkAsmArgs] args 'i' not set\n")
	}
	opt.Output = c.Flag("o").String()
	if opt.Output == "" {
		log.Fatalf("[checkAsmArgs] args 'o' not set\n")
	}
	opt.GraphFn = c.Flag("f").String()
	opt.DumpFn = c.Flag("G").String()
	var ok bool
	opt.MinKmerFreq, ok = c.Flag("MinKmerFreq").Get().(int)
	if !ok {
		log.Fatalf("[checkAsmArgs] args 'MinKmerFreq' : %v set error\n", c.Flag("MinKmerFreq").String())
	}
	return opt, true
}

func Asm(c cli.Command) {
	gOpt, suc := utils.CheckGlobalArgs(c.Parent())
	if suc == false {
		log.Fatalf("[Asm] check global Arguments error, opt: %v\n", gOpt)
	}
	opt, suc := checkAsmArgs(c)
	if suc == false {
		log.Fatalf("[Asm] check Arguments error, opt: %v\n", opt)
	}
	opt.ArgsOpt = gOpt
	fmt.Printf("[Asm] opt: %v\n", opt)
	if err := kmer.CheckReadsFile(opt.Input); err != nil {
		log.Fatalf("[Asm] check reads file failed, err: %v\n", err)
	}
	t0 := time.Now()
	reads, err := kmer.LoadReads(opt.Input)
	if err != nil {
		log.Fatalf("[Asm] load reads failed, err: %v\n", err)
	}
	fmt.Printf("[Asm] loaded reads number is: %d\n", len(reads))
	counts := kmer.CountKmers(reads, opt.Kmer)
	fmt.Printf("[Asm] counted distinct kmer number is: %d\n", len(counts))
	if opt.MinKmerFreq > 1 {
		dropped := kmer.FilterLowFreq(counts, opt.MinKmerFreq)
		fmt.Printf("[Asm] dropped low freq kmer number is: %d\n", dropped)
	}
	g := dbg.BuildDBG(counts, opt.Kmer)
	fmt.Printf("[Asm] built graph, node number is: %d, edge number is: %d\n", g.NodeCount(), g.EdgeCount())
	rng := rand.New(rand.NewSource(opt.Seed))
	g.Simplify(rng)
	fmt.Printf("[Asm] simplified graph, node number is: %d, edge number is: %d\n", g.NodeCount(), g.EdgeCount())
	contigs := contig.Assemble(g)
	if err := contig.Save(contigs, opt.Output); err != nil {
		log.Fatalf("[Asm] save contigs failed, err: %v\n", err)
	}
	fmt.Printf("[Asm] wrote contigs number is: %d, file: %s\n", len(contigs), opt.Output)
	if opt.GraphFn != "" {
		if err := g.WriteGraphviz(opt.GraphFn); err != nil {
			log.Fatalf("[Asm] write dot graph failed, err: %v\n", err)
		}
	}
	if opt.DumpFn != "" {
		if err := g.Store(opt.DumpFn); err != nil {
			log.Fatalf("[Asm] store graph failed, err: %v\n", err)
		}
	}
	t1 := time.Now()
	fmt.Printf("assembly took %v to run\n", t1.Sub(t0))
}

func Dot(c cli.Command) {
	dumpFn := c.Flag("g").String()
	if dumpFn == "" {
		log.Fatalf("[Dot] args 'g' not set\n")
	}
	graphFn := c.Flag("o").String()
	if graphFn == "" {
		log.Fatalf("[Dot] args 'o' not set\n")
	}
	g, err := dbg.Load(dumpFn)
	if err != nil {
		log.Fatalf("[Dot] load graph dump failed, err: %v\n", err)
	}
	if err := g.WriteGraphviz(graphFn); err != nil {
		log.Fatalf("[Dot] write dot graph failed, err: %v\n", err)
	}
	fmt.Printf("[Dot] wrote node number is: %d, edge number is: %d, file: %s\n", g.NodeCount(), g.EdgeCount(), graphFn)
}

func Stat(c cli.Command) {
	dumpFn := c.Flag("g").String()
	if dumpFn == "" {
		log.Fatalf("[Stat] args 'g' not set\n")
	}
	g, err := dbg.Load(dumpFn)
	if err != nil {
		log.Fatalf("[Stat] load graph dump failed, err: %v\n", err)
	}
	fmt.Printf("[Stat] kmer length: %d\n", g.Kmerlen())
	fmt.Printf("[Stat] node number is: %d, edge number is: %d\n", g.NodeCount(), g.EdgeCount())
	fmt.Printf("[Stat] starting node number is: %d, sink node number is: %d\n", len(g.StartingNodes()), len(g.SinkNodes()))
	var weights []float64
	wmin, wmax := 0, 0
	for _, u := range g.Nodes() {
		for _, v := range g.Successors(u) {
			w, _ := g.EdgeWeight(u, v)
			if len(weights) == 0 {
				wmin, wmax = w, w
			} else {
				wmin = utils.MinInt(wmin, w)
				wmax = utils.MaxInt(wmax, w)
			}
			weights = append(weights, float64(w))
		}
	}
	if len(weights) > 0 {
		fmt.Printf("[Stat] edge weight min: %d, max: %d, mean: %.2f, stdev: %.2f\n", wmin, wmax, utils.Mean(weights), utils.Stdev(weights))
	}
}

func main() {
	app.Start()
}
