package spreadsheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rfm-segmentation/internal/model"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrNoHeader      = errors.New("no header row")
)

type column int

const (
	colInvoice column = iota
	colStockCode
	colDescription
	colQuantity
	colInvoiceDate
	colPrice
	colCustomerID
	colCountry
	numColumns
)

// Header is the column layout of the 2010-2011 online retail sheet.
var Header = []string{"Invoice", "StockCode", "Description", "Quantity", "InvoiceDate", "Price", "Customer ID", "Country"}

var aliases = map[string]column{
	"invoice":     colInvoice,
	"invoiceno":   colInvoice,
	"stockcode":   colStockCode,
	"description": colDescription,
	"quantity":    colQuantity,
	"invoicedate": colInvoiceDate,
	"price":       colPrice,
	"unitprice":   colPrice,
	"customerid":  colCustomerID,
	"country":     colCountry,
}

// layout maps each known column to its index in a row.
type layout [numColumns]int

func newLayout(header []string) (layout, error) {
	var l layout
	for i := range l {
		l[i] = -1
	}
	for i, name := range header {
		key := strings.ToLower(strings.NewReplacer(" ", "", "_", "").Replace(strings.TrimSpace(name)))
		if c, ok := aliases[key]; ok && l[c] < 0 {
			l[c] = i
		}
	}
	for c, idx := range l {
		if idx < 0 {
			return l, fmt.Errorf("%w: %s", ErrMissingColumn, Header[c])
		}
	}
	return l, nil
}

func (l layout) cell(row []string, c column) string {
	idx := l[c]
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// DateParser turns a raw date cell into a timestamp.
type DateParser func(string) (time.Time, error)

// transaction converts one row. Blank text cells stay empty so the
// cleaner can drop them; malformed numbers and dates are errors.
func (l layout) transaction(row []string, parseDate DateParser) (model.Transaction, error) {
	tx := model.Transaction{
		Invoice:     l.cell(row, colInvoice),
		StockCode:   l.cell(row, colStockCode),
		Description: l.cell(row, colDescription),
		CustomerID:  NormalizeCustomerID(l.cell(row, colCustomerID)),
		Country:     l.cell(row, colCountry),
	}

	qty, err := parseQuantity(l.cell(row, colQuantity))
	if err != nil {
		return tx, fmt.Errorf("quantity: %w", err)
	}
	tx.Quantity = qty

	price, err := decimal.NewFromString(l.cell(row, colPrice))
	if err != nil {
		return tx, fmt.Errorf("price: %w", err)
	}
	tx.Price = price

	at, err := parseDate(l.cell(row, colInvoiceDate))
	if err != nil {
		return tx, fmt.Errorf("invoice date: %w", err)
	}
	tx.InvoiceDate = at
	return tx, nil
}

// parseQuantity accepts integral values written as floats ("6.0").
func parseQuantity(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %s", s)
	}
	return int(f), nil
}

// NormalizeCustomerID strips the ".0" spreadsheets add to numeric ids.
func NormalizeCustomerID(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return strings.TrimSuffix(s, ".0")
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"1/2/2006 15:04",
	"1/2/06 15:04",
	"2006-01-02",
}

// ParseDate reads the textual date formats found in exported sheets.
func ParseDate(s string) (time.Time, error) {
	for _, format := range dateLayouts {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
