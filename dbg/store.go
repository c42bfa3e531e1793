package dbg

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/klauspost/compress/zstd"
)

const storeTag = "DBGv1"

// Store writes the graph to fn as one zstd stream, a header line carrying
// the tag, kmer size, node and edge counts and the xxhash64 of the body,
// then one V line per node and one E line per edge in sorted order. Node
// text is quoted, reads are never validated so a node can carry any byte.
func (g *DBG) Store(fn string) error {
	var body bytes.Buffer
	for _, node := range g.Nodes() {
		fmt.Fprintf(&body, "V\t%q\n", node)
	}
	for _, u := range g.Nodes() {
		for _, v := range g.Successors(u) {
			w, _ := g.EdgeWeight(u, v)
			fmt.Fprintf(&body, "E\t%q\t%q\t%d\n", u, v, w)
		}
	}
	fp, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer fp.Close()
	zw, err := zstd.NewWriter(fp, zstd.WithEncoderCRC(false), zstd.WithEncoderConcurrency(1), zstd.WithEncoderLevel(1))
	if err != nil {
		return fmt.Errorf("file: %v create zstd.NewWriter failed, err: %v", fn, err)
	}
	_, err = fmt.Fprintf(zw, "%s\t%d\t%d\t%d\t%016x\n", storeTag, g.kmerlen, g.NodeCount(), g.EdgeCount(), xxhash.Sum64(body.Bytes()))
	if err == nil {
		_, err = zw.Write(body.Bytes())
	}
	if err != nil {
		zw.Close()
		return fmt.Errorf("file: %v write graph dump failed, err: %v", fn, err)
	}
	return zw.Close()
}

// Load reads a graph written by Store, refusing a dump whose tag, checksum
// or counts disagree with its content.
func Load(fn string) (*DBG, error) {
	fp, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	zr, err := zstd.NewReader(fp, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("file: %v create zstd.NewReader failed, err: %v", fn, err)
	}
	defer zr.Close()
	buffp := bufio.NewReader(zr)
	header, err := buffp.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("file: %v read dump header failed, err: %v", fn, err)
	}
	fields := strings.Split(strings.TrimSuffix(header, "\n"), "\t")
	if len(fields) != 5 || fields[0] != storeTag {
		return nil, fmt.Errorf("file: %v is not a %s graph dump", fn, storeTag)
	}
	kmerlen, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("file: %v dump kmer size: %v not digits", fn, fields[1])
	}
	nodeCount, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("file: %v dump node count: %v not digits", fn, fields[2])
	}
	edgeCount, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("file: %v dump edge count: %v not digits", fn, fields[3])
	}
	wantSum, err := strconv.ParseUint(fields[4], 16, 64)
	if err != nil {
		return nil, fmt.Errorf("file: %v dump checksum: %v not hex", fn, fields[4])
	}
	body, err := io.ReadAll(buffp)
	if err != nil {
		return nil, fmt.Errorf("file: %v read dump body failed, err: %v", fn, err)
	}
	if sum := xxhash.Sum64(body); sum != wantSum {
		return nil, fmt.Errorf("file: %v dump body checksum: %016x not match header: %016x", fn, sum, wantSum)
	}
	g := NewDBG(kmerlen)
	for ln, line := range strings.Split(string(body), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		switch fields[0] {
		case "V":
			if len(fields) != 2 {
				return nil, fmt.Errorf("file: %v dump line %d: %q malformed V record", fn, ln+2, line)
			}
			node, err := strconv.Unquote(fields[1])
			if err != nil {
				return nil, fmt.Errorf("file: %v dump line %d: %q unquote failed, err: %v", fn, ln+2, line, err)
			}
			g.AddNode(node)
		case "E":
			if len(fields) != 4 {
				return nil, fmt.Errorf("file: %v dump line %d: %q malformed E record", fn, ln+2, line)
			}
			u, err := strconv.Unquote(fields[1])
			if err != nil {
				return nil, fmt.Errorf("file: %v dump line %d: %q unquote failed, err: %v", fn, ln+2, line, err)
			}
			v, err := strconv.Unquote(fields[2])
			if err != nil {
				return nil, fmt.Errorf("file: %v dump line %d: %q unquote failed, err: %v", fn, ln+2, line, err)
			}
			w, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, fmt.Errorf("file: %v dump line %d: %q weight not digits", fn, ln+2, line)
			}
			g.AddEdge(u, v, w)
		default:
			return nil, fmt.Errorf("file: %v dump line %d: %q unknown record type", fn, ln+2, line)
		}
	}
	if g.NodeCount() != nodeCount || g.EdgeCount() != edgeCount {
		return nil, fmt.Errorf("file: %v dump holds %d nodes %d edges, header says %d nodes %d edges",
			fn, g.NodeCount(), g.EdgeCount(), nodeCount, edgeCount)
	}
	return g, nil
}
