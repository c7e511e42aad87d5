package rfm

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"rfm-segmentation/internal/model"
)

type Options struct {
	// ReferenceDate is "today" for recency. It must be set by the caller.
	ReferenceDate      time.Time
	CancellationMarker string
}

type Analysis struct {
	ReferenceDate time.Time              `json:"reference_date"`
	Clean         CleanStats             `json:"clean"`
	Derive        DeriveStats            `json:"derive"`
	Customers     []model.ScoredCustomer `json:"customers"`
}

// Analyze runs clean, derive, score and segment over txs.
func Analyze(txs []model.Transaction, opts Options, logger *log.Logger) (*Analysis, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.ReferenceDate.IsZero() {
		return nil, errors.New("reference date is required")
	}

	cleaned, cleanStats := Clean(txs, opts.CancellationMarker)
	logger.Printf("Cleaned transactions: %d retained, %d rows excluded (%d incomplete, %d cancelled)",
		cleanStats.Retained, cleanStats.Excluded(), cleanStats.Incomplete, cleanStats.Cancelled)

	customers, deriveStats := DeriveMetrics(cleaned, opts.ReferenceDate)
	logger.Printf("Derived metrics for %d customers, dropped %d with non-positive spend",
		deriveStats.Customers, deriveStats.NonPositive)

	scored, err := Score(customers, logger)
	if err != nil {
		return nil, err
	}

	segmented, err := Segment(scored)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}

	return &Analysis{
		ReferenceDate: opts.ReferenceDate,
		Clean:         cleanStats,
		Derive:        deriveStats,
		Customers:     segmented,
	}, nil
}
