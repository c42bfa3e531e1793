package utils

import (
	"log"
	"math"
	"strconv"

	"github.com/jwaldrip/odin/cli"
)

type ArgsOpt struct {
	Kmer int
	Seed int64
}

// return global arguments and check if successed
func CheckGlobalArgs(c cli.Command) (opt ArgsOpt, succ bool) {
	var ok bool
	opt.Kmer, ok = c.Flag("K").Get().(int)
	if !ok {
		log.Fatalf("[CheckGlobalArgs] args 'K' : %v set error\n", c.Flag("K").String())
	}
	if opt.Kmer < 1 {
		log.Fatalf("[CheckGlobalArgs] args 'K' : %v must be bigger than zero\n", opt.Kmer)
	}
	seed, err := strconv.Atoi(c.Flag("S").String())
	if err != nil {
		log.Fatalf("[CheckGlobalArgs] args 'S' : %v set error\n", c.Flag("S").String())
	}
	opt.Seed = int64(seed)
	return opt, true
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	} else {
		return b
	}
}

func MinInt(a, b int) int {
	if a > b {
		return b
	} else {
		return a
	}
}

// Mean returns the arithmetic mean of vals, zero for an empty slice.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// Stdev returns the sample standard deviation of vals, zero when vals
// holds fewer than two values.
func Stdev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := Mean(vals)
	var ss float64
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)-1))
}
