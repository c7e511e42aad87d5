package report

import (
	"math"
	"sort"

	"rfm-segmentation/internal/model"
)

// OverviewQuantiles are the probabilities reported for numeric columns.
var OverviewQuantiles = []float64{0, 0.05, 0.50, 0.95, 0.99, 1}

type Quantile struct {
	P     float64 `json:"p"`
	Value float64 `json:"value"`
}

type ProductQuantity struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// DatasetOverview describes the raw transactions before cleaning.
type DatasetOverview struct {
	Rows                 int               `json:"rows"`
	Columns              int               `json:"columns"`
	Missing              map[string]int    `json:"missing"`
	QuantityQuantiles    []Quantile        `json:"quantity_quantiles"`
	PriceQuantiles       []Quantile        `json:"price_quantiles"`
	DistinctDescriptions int               `json:"distinct_descriptions"`
	TopProducts          []ProductQuantity `json:"top_products"`
}

const topProducts = 5

func Overview(txs []model.Transaction) DatasetOverview {
	ov := DatasetOverview{
		Rows:    len(txs),
		Columns: 8,
		Missing: map[string]int{
			"invoice":     0,
			"stock_code":  0,
			"description": 0,
			"customer_id": 0,
			"country":     0,
		},
	}

	quantities := make([]float64, 0, len(txs))
	prices := make([]float64, 0, len(txs))
	byDescription := make(map[string]int)
	for _, tx := range txs {
		missing(ov.Missing, "invoice", tx.Invoice)
		missing(ov.Missing, "stock_code", tx.StockCode)
		missing(ov.Missing, "description", tx.Description)
		missing(ov.Missing, "customer_id", tx.CustomerID)
		missing(ov.Missing, "country", tx.Country)
		quantities = append(quantities, float64(tx.Quantity))
		prices = append(prices, tx.Price.InexactFloat64())
		if tx.Description != "" {
			byDescription[tx.Description] += tx.Quantity
		}
	}

	ov.QuantityQuantiles = quantiles(quantities)
	ov.PriceQuantiles = quantiles(prices)
	ov.DistinctDescriptions = len(byDescription)

	for desc, qty := range byDescription {
		ov.TopProducts = append(ov.TopProducts, ProductQuantity{Description: desc, Quantity: qty})
	}
	sort.Slice(ov.TopProducts, func(i, j int) bool {
		a, b := ov.TopProducts[i], ov.TopProducts[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Description < b.Description
	})
	if len(ov.TopProducts) > topProducts {
		ov.TopProducts = ov.TopProducts[:topProducts]
	}
	return ov
}

func missing(counts map[string]int, col, v string) {
	if v == "" {
		counts[col]++
	}
}

func quantiles(values []float64) []Quantile {
	if len(values) == 0 {
		return nil
	}
	sort.Float64s(values)
	out := make([]Quantile, len(OverviewQuantiles))
	for i, p := range OverviewQuantiles {
		out[i] = Quantile{P: p, Value: percentile(values, p)}
	}
	return out
}

// percentile interpolates linearly between the order statistics of the
// sorted slice x.
func percentile(x []float64, p float64) float64 {
	rank := p * float64(len(x)-1)
	lower := int(math.Floor(rank))
	if lower >= len(x)-1 {
		return x[len(x)-1]
	}
	weight := rank - float64(lower)
	return x[lower]*(1-weight) + x[lower+1]*weight
}
