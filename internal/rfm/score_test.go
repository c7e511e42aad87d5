package rfm

import (
	"bytes"
	"log"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfm-segmentation/internal/model"
)

func scores(scored []model.ScoredCustomer) (recency, frequency []int) {
	for _, s := range scored {
		recency = append(recency, s.RecencyScore)
		frequency = append(frequency, s.FrequencyScore)
	}
	return recency, frequency
}

func TestScoreInsufficientData(t *testing.T) {
	_, err := Score(nil, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Score(customersWith([]int{1, 2, 3, 4}, []int{1, 2, 3, 4}), nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestScoreDirections(t *testing.T) {
	customers := customersWith(
		[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	)
	scored, err := Score(customers, nil)
	require.NoError(t, err)

	recency, frequency := scores(scored)
	assert.Equal(t, []int{5, 5, 4, 4, 3, 3, 2, 2, 1, 1}, recency, "recent buyers score high")
	assert.Equal(t, []int{1, 1, 2, 2, 3, 3, 4, 4, 5, 5}, frequency, "frequent buyers score high")
	assert.Equal(t, customers[3], scored[3].Customer)
	assert.Empty(t, scored[3].Segment)
}

func TestScoreFrequencyTiesBreakByOrder(t *testing.T) {
	customers := customersWith(
		[]int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		[]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	)
	scored, err := Score(customers, nil)
	require.NoError(t, err)
	_, frequency := scores(scored)
	assert.Equal(t, []int{1, 1, 2, 2, 3, 3, 4, 4, 5, 5}, frequency)
}

func TestScoreRecencyFallsBackToRank(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	customers := customersWith(
		[]int{3, 3, 3, 3, 3, 3, 3, 3, 9, 9},
		[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	)
	scored, err := Score(customers, logger)
	require.NoError(t, err)

	recency, _ := scores(scored)
	assert.Equal(t, []int{5, 5, 4, 4, 3, 3, 2, 2, 1, 1}, recency)
	assert.Contains(t, buf.String(), "cutting on rank")
}

func TestScorePartitionProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("frequency buckets hold N/5 customers give or take one", prop.ForAll(
		func(frequency []int) bool {
			n := len(frequency)
			recency := make([]int, n)
			for i := range recency {
				recency[i] = i
			}
			scored, err := Score(customersWith(recency, frequency), nil)
			if err != nil {
				return false
			}

			counts := make(map[int]int)
			for _, s := range scored {
				counts[s.FrequencyScore]++
			}
			total := 0
			for score := 1; score <= Buckets; score++ {
				diff := float64(counts[score]) - float64(n)/Buckets
				if diff > 1 || diff < -1 {
					return false
				}
				total += counts[score]
			}
			return total == n
		},
		gen.IntRange(Buckets, 120).FlatMap(func(n interface{}) gopter.Gen {
			return gen.SliceOfN(n.(int), gen.IntRange(1, 30))
		}, reflect.TypeOf([]int{})),
	))

	properties.TestingRun(t)
}
