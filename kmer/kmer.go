package kmer

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/hts/bam"
)

// GetReadsFileFormat reports the record format of fn from its suffix and
// whether the file is gzip compressed.
func GetReadsFileFormat(fn string) (format string, gzipped bool, err error) {
	base := fn
	if strings.HasSuffix(base, ".gz") {
		gzipped = true
		base = base[:len(base)-len(".gz")]
	}
	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return "", false, fmt.Errorf("reads file: %v need suffix end with '*.fa | *.fasta | *.fq | *.fastq [.gz] | *.bam'", fn)
	}
	switch base[idx+1:] {
	case "fa", "fasta":
		format = "fa"
	case "fq", "fastq":
		format = "fq"
	case "bam":
		if gzipped {
			return "", false, fmt.Errorf("reads file: %v bam input can not combine with '.gz'", fn)
		}
		format = "bam"
	default:
		return "", false, fmt.Errorf("reads file: %v need suffix end with '*.fa | *.fasta | *.fq | *.fastq [.gz] | *.bam'", fn)
	}
	return format, gzipped, nil
}

// CheckReadsFile verifies fn names an existing regular reads file with a
// recognized suffix before any pipeline stage runs.
func CheckReadsFile(fn string) error {
	fi, err := os.Stat(fn)
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("reads file: %v is not a regular file", fn)
	}
	_, _, err = GetReadsFileFormat(fn)
	return err
}

// GetReadRecord reads one record from buffp and returns its sequence line,
// fa records span two lines and fq records four, the sequence sits on the
// second line of both. A clean end of stream returns io.EOF with a nil seq.
func GetReadRecord(buffp *bufio.Reader, format string) (seq []byte, err error) {
	blockLineNum := 2
	if format == "fq" {
		blockLineNum = 4
	}
	b := make([][]byte, blockLineNum)
	i := 0
	for ; i < blockLineNum; i++ {
		b[i], err = buffp.ReadBytes('\n')
		if err != nil {
			break
		}
	}
	if err != nil {
		if err != io.EOF {
			return nil, err
		}
		// the stream ended inside a record, keep it if the sequence line arrived
		if i < 1 || (i == 1 && len(b[1]) == 0) {
			return nil, io.EOF
		}
	}
	return bytes.TrimRight(b[1], "\r\n"), nil
}

// LoadReads loads every record sequence of fn into memory, the whole run is
// one batch computation so nothing is streamed. Sequence content is taken
// as is, no alphabet check happens here.
func LoadReads(fn string) (reads [][]byte, err error) {
	format, gzipped, err := GetReadsFileFormat(fn)
	if err != nil {
		return nil, err
	}
	if format == "bam" {
		return loadBamReads(fn)
	}
	fp, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	var r io.Reader = fp
	if gzipped {
		gzfp, err := gzip.NewReader(fp)
		if err != nil {
			return nil, fmt.Errorf("file: %v create gzip.NewReader failed, err: %v", fn, err)
		}
		defer gzfp.Close()
		r = gzfp
	}
	buffp := bufio.NewReader(r)
	for {
		seq, err := GetReadRecord(buffp, format)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("file: %v encounter err: %v", fn, err)
		}
		reads = append(reads, seq)
	}
	return reads, nil
}

// every alignment record contributes its sequence, mapped or not
func loadBamReads(fn string) (reads [][]byte, err error) {
	fp, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	bamfp, err := bam.NewReader(fp, 1)
	if err != nil {
		return nil, fmt.Errorf("file: %v create bam.NewReader failed, err: %v", fn, err)
	}
	defer bamfp.Close()
	for {
		r, err := bamfp.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("file: %v encounter err: %v", fn, err)
		}
		reads = append(reads, r.Seq.Expand())
	}
	return reads, nil
}

// CutKmer returns the overlapping kmers of read in offset order, every one
// a subslice of read. A read shorter than ksize yields none.
func CutKmer(read []byte, ksize int) (kmers [][]byte) {
	if ksize < 1 || len(read) < ksize {
		return nil
	}
	kmers = make([][]byte, 0, len(read)-ksize+1)
	for i := 0; i+ksize <= len(read); i++ {
		kmers = append(kmers, read[i:i+ksize])
	}
	return kmers
}

// CountKmers aggregates kmer occurrence counts over all reads, keyed by
// exact string equality.
func CountKmers(reads [][]byte, ksize int) map[string]int {
	counts := make(map[string]int)
	for _, read := range reads {
		for _, km := range CutKmer(read, ksize) {
			counts[string(km)]++
		}
	}
	return counts
}

// FilterLowFreq deletes kmers observed fewer than min times and reports how
// many entries were dropped, min <= 1 keeps the table whole.
func FilterLowFreq(counts map[string]int, min int) (dropped int) {
	if min <= 1 {
		return 0
	}
	for km, cnt := range counts {
		if cnt < min {
			delete(counts, km)
			dropped++
		}
	}
	return dropped
}
