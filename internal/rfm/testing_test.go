package rfm

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rfm-segmentation/internal/model"
)

var refDate = time.Date(2011, 12, 11, 0, 0, 0, 0, time.UTC)

func line(invoice, customer string, qty int, price string, at time.Time) model.Transaction {
	return model.Transaction{
		Invoice:     invoice,
		StockCode:   "85123A",
		Description: "WHITE HANGING HEART T-LIGHT HOLDER",
		Quantity:    qty,
		InvoiceDate: at,
		Price:       decimal.RequireFromString(price),
		CustomerID:  customer,
		Country:     "United Kingdom",
	}
}

// purchases returns n single-line invoices for customer, all dated
// daysAgo before refDate, each worth price.
func purchases(customer string, n, daysAgo int, price string) []model.Transaction {
	at := refDate.AddDate(0, 0, -daysAgo)
	txs := make([]model.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txs = append(txs, line(fmt.Sprintf("%s-%d", customer, i), customer, 1, price, at))
	}
	return txs
}

func customersWith(recency, frequency []int) []model.Customer {
	out := make([]model.Customer, len(recency))
	for i := range recency {
		out[i] = model.Customer{
			CustomerID: fmt.Sprintf("%d", 10000+i),
			Recency:    recency[i],
			Frequency:  frequency[i],
			Monetary:   decimal.NewFromInt(100),
		}
	}
	return out
}
