package spreadsheet

import (
	"bytes"
	"context"
	"log"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	path := filepath.Join(t.TempDir(), "online_retail.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXLSXLoad(t *testing.T) {
	at := time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	path := writeWorkbook(t, DefaultSheet, [][]interface{}{
		header,
		{"536365", "85123A", "WHITE HANGING HEART T-LIGHT HOLDER", 6, at, 2.55, 17850, "United Kingdom"},
		{"C536379", "D", "Discount", -1, at, 27.5, 14527, "United Kingdom"},
		{"536414", "22139", nil, 56, at, 0, nil, "United Kingdom"},
		{"536415", "22139", "broken", "many", at, 1, 17850, "United Kingdom"},
	})

	x := &XLSX{Path: path}
	txs, err := x.Load(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, txs, 3, "the unparseable quantity row is skipped")

	first := txs[0]
	assert.Equal(t, "536365", first.Invoice)
	assert.Equal(t, "85123A", first.StockCode)
	assert.Equal(t, 6, first.Quantity)
	assert.True(t, decimal.RequireFromString("2.55").Equal(first.Price), first.Price.String())
	assert.Equal(t, "17850", first.CustomerID)
	assert.Equal(t, at, first.InvoiceDate)

	assert.Equal(t, "C536379", txs[1].Invoice)
	assert.Equal(t, -1, txs[1].Quantity)

	assert.Empty(t, txs[2].CustomerID)
	assert.Empty(t, txs[2].Description)
}

func TestXLSXMissingSheet(t *testing.T) {
	path := writeWorkbook(t, "Year 2009-2010", [][]interface{}{{"Invoice"}})
	_, err := (&XLSX{Path: path}).Load(context.Background(), nil)
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	in := strings.NewReader(`InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country
536365,85123A,WHITE HANGING HEART T-LIGHT HOLDER,6,12/1/2010 8:26,2.55,17850.0,United Kingdom
536366,22633,HAND WARMER UNION JACK,6.0,2010-12-01 08:28:00,1.85,,United Kingdom
536367,84879,ASSORTED COLOUR BIRD ORNAMENT,32,yesterday,1.69,13047,United Kingdom

`)
	txs, err := ReadCSV(context.Background(), in, nil)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "17850", txs[0].CustomerID)
	assert.Equal(t, time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC), txs[0].InvoiceDate)
	assert.Equal(t, 6, txs[1].Quantity)
	assert.Empty(t, txs[1].CustomerID)
}

func TestReadCSVMissingColumn(t *testing.T) {
	_, err := ReadCSV(context.Background(), strings.NewReader("Invoice,StockCode\n1,2\n"), nil)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(context.Background(), strings.NewReader(""), nil)
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestXLSXEmptySheet(t *testing.T) {
	path := writeWorkbook(t, DefaultSheet, nil)
	_, err := (&XLSX{Path: path}).Load(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestReadCSVLogsRowCounts(t *testing.T) {
	in := "Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country\n" +
		"536365,85123A,HOLDER,6,2010-12-01 08:26:00,2.55,17850,United Kingdom\n" +
		"536366,22633,WARMER,lots,2010-12-01 08:28:00,1.85,17850,United Kingdom\n"

	var buf bytes.Buffer
	txs, err := ReadCSV(context.Background(), strings.NewReader(in), log.New(&buf, "", 0))
	require.NoError(t, err)
	assert.Len(t, txs, 1)
	assert.Contains(t, buf.String(), "Rows read: 1")
	assert.Contains(t, buf.String(), "Skipped 1 unreadable rows")

	txs, err = ReadCSV(context.Background(), strings.NewReader(in), nil)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestNormalizeCustomerID(t *testing.T) {
	assert.Equal(t, "12346", NormalizeCustomerID("12346.0"))
	assert.Equal(t, "12346", NormalizeCustomerID(" 12346 "))
	assert.Equal(t, "", NormalizeCustomerID("NaN"))
	assert.Equal(t, "A-1", NormalizeCustomerID("A-1"))
}

func TestParseQuantity(t *testing.T) {
	n, err := parseQuantity("-12")
	require.NoError(t, err)
	assert.Equal(t, -12, n)
	n, err = parseQuantity("3.0")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, err = parseQuantity("2.5")
	assert.Error(t, err)
}
