package rfm

import (
	"strings"

	"rfm-segmentation/internal/model"
)

// DefaultCancellationMarker marks a voided invoice, e.g. "C489449".
const DefaultCancellationMarker = "C"

type CleanStats struct {
	Input      int `json:"input"`
	Incomplete int `json:"incomplete"`
	Cancelled  int `json:"cancelled"`
	Retained   int `json:"retained"`
}

// Excluded is the number of rows removed by Clean.
func (s CleanStats) Excluded() int {
	return s.Incomplete + s.Cancelled
}

// Clean drops rows missing an invoice, customer or description and rows
// whose invoice contains marker. The input slice is left untouched.
func Clean(txs []model.Transaction, marker string) ([]model.Transaction, CleanStats) {
	if marker == "" {
		marker = DefaultCancellationMarker
	}
	stats := CleanStats{Input: len(txs)}
	out := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if isBlank(tx.Invoice) || isBlank(tx.CustomerID) || isBlank(tx.Description) {
			stats.Incomplete++
			continue
		}
		if IsCancelled(tx.Invoice, marker) {
			stats.Cancelled++
			continue
		}
		out = append(out, tx)
	}
	stats.Retained = len(out)
	return out, stats
}

func IsCancelled(invoice, marker string) bool {
	return strings.Contains(invoice, marker)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
