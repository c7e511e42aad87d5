package rfm

import (
	"errors"
	"math"
	"sort"
)

var errDuplicateEdges = errors.New("quantile edges are not unique")

// quantileEdges returns the buckets+1 equal-frequency cut points of
// values, interpolating linearly between order statistics.
func quantileEdges(values []float64, buckets int) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	edges := make([]float64, buckets+1)
	for k := range edges {
		pos := float64(k) / float64(buckets) * float64(n-1)
		lower := int(math.Floor(pos))
		if lower >= n-1 {
			edges[k] = sorted[n-1]
			continue
		}
		weight := pos - float64(lower)
		edges[k] = sorted[lower] + (sorted[lower+1]-sorted[lower])*weight
	}
	return edges
}

// qcut assigns every value a bucket index in [0, buckets). Buckets are
// right-closed and the first one also holds its lower edge.
func qcut(values []float64, buckets int) ([]int, error) {
	edges := quantileEdges(values, buckets)
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, errDuplicateEdges
		}
	}

	bins := make([]int, len(values))
	for i, v := range values {
		bin := sort.SearchFloat64s(edges, v) - 1
		if bin < 0 {
			bin = 0
		}
		bins[i] = bin
	}
	return bins, nil
}

// rankFirst ranks values 1..n, breaking ties by position.
func rankFirst(values []float64) []float64 {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	ranks := make([]float64, len(values))
	for pos, idx := range order {
		ranks[idx] = float64(pos + 1)
	}
	return ranks
}
