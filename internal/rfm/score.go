package rfm

import (
	"errors"
	"fmt"
	"io"
	"log"

	"rfm-segmentation/internal/model"
)

// Buckets is the number of quantile buckets, and so the highest score.
const Buckets = 5

var ErrInsufficientData = errors.New("insufficient data for quantile binning")

// Score bins recency and frequency into 1..Buckets. Low recency (a recent
// purchase) scores high; high frequency scores high. Frequency ties are
// broken by customer order before cutting. If raw recency values cannot
// produce distinct cut points the recency cut falls back to the same
// rank ordering.
func Score(customers []model.Customer, logger *log.Logger) ([]model.ScoredCustomer, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if len(customers) < Buckets {
		return nil, fmt.Errorf("%w: %d customers, need at least %d", ErrInsufficientData, len(customers), Buckets)
	}

	recency := make([]float64, len(customers))
	frequency := make([]float64, len(customers))
	for i, c := range customers {
		recency[i] = float64(c.Recency)
		frequency[i] = float64(c.Frequency)
	}

	recencyBins, err := qcut(recency, Buckets)
	if errors.Is(err, errDuplicateEdges) {
		logger.Printf("recency has too few distinct values for %d quantiles, cutting on rank instead", Buckets)
		recencyBins, err = qcut(rankFirst(recency), Buckets)
	}
	if err != nil {
		return nil, fmt.Errorf("score recency: %w", err)
	}

	frequencyBins, err := qcut(rankFirst(frequency), Buckets)
	if err != nil {
		return nil, fmt.Errorf("score frequency: %w", err)
	}

	scored := make([]model.ScoredCustomer, len(customers))
	for i, c := range customers {
		scored[i] = model.ScoredCustomer{
			Customer:       c,
			RecencyScore:   Buckets - recencyBins[i],
			FrequencyScore: frequencyBins[i] + 1,
		}
	}
	return scored, nil
}
