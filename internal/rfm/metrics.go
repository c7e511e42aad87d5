package rfm

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"rfm-segmentation/internal/model"
)

type DeriveStats struct {
	Customers   int `json:"customers"`
	NonPositive int `json:"non_positive"`
}

type aggregate struct {
	last     time.Time
	invoices map[string]struct{}
	monetary decimal.Decimal
}

// DeriveMetrics groups txs by customer and computes recency (whole days
// before referenceDate), frequency (distinct invoices) and monetary
// (sum of line totals). Customers whose monetary is not positive are
// dropped. The result is ordered by customer id.
func DeriveMetrics(txs []model.Transaction, referenceDate time.Time) ([]model.Customer, DeriveStats) {
	groups := make(map[string]*aggregate)
	for _, tx := range txs {
		agg, ok := groups[tx.CustomerID]
		if !ok {
			agg = &aggregate{invoices: make(map[string]struct{})}
			groups[tx.CustomerID] = agg
		}
		if agg.last.IsZero() || tx.InvoiceDate.After(agg.last) {
			agg.last = tx.InvoiceDate
		}
		agg.invoices[tx.Invoice] = struct{}{}
		agg.monetary = agg.monetary.Add(tx.LineTotal())
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return lessID(ids[i], ids[j]) })

	var stats DeriveStats
	customers := make([]model.Customer, 0, len(ids))
	for _, id := range ids {
		agg := groups[id]
		if !agg.monetary.IsPositive() {
			stats.NonPositive++
			continue
		}
		customers = append(customers, model.Customer{
			CustomerID: id,
			Recency:    daysBetween(agg.last, referenceDate),
			Frequency:  len(agg.invoices),
			Monetary:   agg.monetary,
		})
	}
	stats.Customers = len(customers)
	return customers, stats
}

// daysBetween returns the floor of (to - from) in days.
func daysBetween(from, to time.Time) int {
	const day = 24 * time.Hour
	d := to.Sub(from)
	days := d / day
	if d%day < 0 {
		days--
	}
	return int(days)
}

// lessID orders numeric ids numerically and everything else lexically,
// numeric ids first.
func lessID(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		if fa != fb {
			return fa < fb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
