package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"rfm-segmentation/internal/model"
)

// SegmentSummary is the mean of each metric over one segment. Count is
// the same for every metric.
type SegmentSummary struct {
	Segment       model.Segment   `json:"segment"`
	Count         int             `json:"count"`
	MeanRecency   float64         `json:"mean_recency"`
	MeanFrequency float64         `json:"mean_frequency"`
	MeanMonetary  decimal.Decimal `json:"mean_monetary"`
}

// Summarize groups customers by segment, ordered by segment name.
func Summarize(customers []model.ScoredCustomer) []SegmentSummary {
	type totals struct {
		count     int
		recency   int
		frequency int
		monetary  decimal.Decimal
	}
	bySegment := make(map[model.Segment]*totals)
	for _, c := range customers {
		t, ok := bySegment[c.Segment]
		if !ok {
			t = &totals{}
			bySegment[c.Segment] = t
		}
		t.count++
		t.recency += c.Recency
		t.frequency += c.Frequency
		t.monetary = t.monetary.Add(c.Monetary)
	}

	out := make([]SegmentSummary, 0, len(bySegment))
	for seg, t := range bySegment {
		n := float64(t.count)
		out = append(out, SegmentSummary{
			Segment:       seg,
			Count:         t.count,
			MeanRecency:   float64(t.recency) / n,
			MeanFrequency: float64(t.frequency) / n,
			MeanMonetary:  t.monetary.Div(decimal.NewFromInt(int64(t.count))),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Segment < out[j].Segment })
	return out
}

// Members returns up to limit customers of segment in their input order.
// A limit of zero or less returns every member.
func Members(customers []model.ScoredCustomer, segment model.Segment, limit int) []model.ScoredCustomer {
	var out []model.ScoredCustomer
	for _, c := range customers {
		if c.Segment != segment {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
