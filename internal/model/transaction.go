package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one invoice line. Missing text fields are empty strings.
type Transaction struct {
	Invoice     string          `json:"invoice" bson:"invoice"`
	StockCode   string          `json:"stock_code" bson:"stock_code"`
	Description string          `json:"description" bson:"description"`
	Quantity    int             `json:"quantity" bson:"quantity"`
	InvoiceDate time.Time       `json:"invoice_date" bson:"invoice_date"`
	Price       decimal.Decimal `json:"price" bson:"-"`
	CustomerID  string          `json:"customer_id" bson:"customer_id"`
	Country     string          `json:"country" bson:"country"`
}

// LineTotal is Quantity × Price.
func (t Transaction) LineTotal() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(int64(t.Quantity)))
}
