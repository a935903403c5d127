package risk

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// PopulationStdDev divides by n, not n-1.
func PopulationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	_, std := stat.PopMeanStdDev(values, nil)
	return std
}

// percentile uses linear interpolation between closest ranks, p in [0,100].
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		lo = 0
	}
	if hi >= len(sorted) {
		hi = len(sorted) - 1
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo))
}
