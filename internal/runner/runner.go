package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/google/uuid"

	"rfm-segmentation/internal/model"
	"rfm-segmentation/internal/report"
	"rfm-segmentation/internal/rfm"
)

// Loader supplies the raw transactions of a run.
type Loader interface {
	Load(ctx context.Context, logger *log.Logger) ([]model.Transaction, error)
}

type Result struct {
	RunID          string                  `json:"run_id"`
	ReferenceDate  time.Time               `json:"reference_date"`
	Runs           int                     `json:"runs"`
	Overview       report.DatasetOverview  `json:"overview"`
	Clean          rfm.CleanStats          `json:"clean"`
	Derive         rfm.DeriveStats         `json:"derive"`
	Segments       []report.SegmentSummary `json:"segments"`
	LoadTime       time.Duration           `json:"load_time"`
	TotalTime      time.Duration           `json:"total_time"`
	AverageLatency time.Duration           `json:"average_latency"`
	P95Latency     time.Duration           `json:"p95_latency"`
	P99Latency     time.Duration           `json:"p99_latency"`

	Customers []model.ScoredCustomer `json:"-"`
}

// Run loads the transactions once and analyses them repeat times,
// recording the latency of each analysis. Every repetition sees the same
// input and produces the same segments; the last one is reported.
func Run(ctx context.Context, loader Loader, opts rfm.Options, repeat int, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if repeat < 1 {
		return nil, errors.New("repeat must be at least 1")
	}

	loadStart := time.Now()
	txs, err := loader.Load(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result := &Result{
		RunID:         uuid.New().String(),
		ReferenceDate: opts.ReferenceDate,
		Overview:      report.Overview(txs),
		LoadTime:      time.Since(loadStart),
	}

	// Max latency of 10 minutes, significant figures of 3
	histogram := hdrhistogram.New(1, int64(10*time.Minute/time.Microsecond), 3)

	totalStartTime := time.Now()
	var analysis *rfm.Analysis
	for i := 0; i < repeat; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		runLogger := logger
		if i > 0 {
			runLogger = log.New(io.Discard, "", 0)
		}
		opStartTime := time.Now()
		analysis, err = rfm.Analyze(txs, opts, runLogger)
		if err != nil {
			return nil, err
		}
		if err := histogram.RecordValue(time.Since(opStartTime).Microseconds()); err != nil {
			logger.Printf("Latency not recorded: %v", err)
		}
		result.Runs++
	}

	result.TotalTime = time.Since(totalStartTime)
	result.AverageLatency = time.Duration(histogram.Mean()) * time.Microsecond
	result.P95Latency = time.Duration(histogram.ValueAtQuantile(95)) * time.Microsecond
	result.P99Latency = time.Duration(histogram.ValueAtQuantile(99)) * time.Microsecond

	result.Clean = analysis.Clean
	result.Derive = analysis.Derive
	result.Customers = analysis.Customers
	result.Segments = report.Summarize(analysis.Customers)

	logger.Printf("Run %s: %d customers in %d segments, average analysis %v", result.RunID, len(result.Customers), len(result.Segments), result.AverageLatency)
	return result, nil
}
