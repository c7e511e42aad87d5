package spreadsheet

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"rfm-segmentation/internal/model"
)

// DefaultSheet is the sheet holding the 2010-2011 invoices.
const DefaultSheet = "Year 2010-2011"

// XLSX reads transactions from one sheet of an Excel workbook.
type XLSX struct {
	Path  string
	Sheet string
}

func (x *XLSX) Load(ctx context.Context, logger *log.Logger) ([]model.Transaction, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	sheet := x.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}

	f, err := excelize.OpenFile(x.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", x.Path, err)
	}
	defer f.Close()

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	logger.Printf("Reading sheet %q from %s", sheet, x.Path)

	var r reader
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}
		if err := r.add(cols, excelDate); err != nil {
			return nil, err
		}
	}
	if err := rows.Error(); err != nil {
		return nil, err
	}
	if !r.seen {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrNoHeader)
	}
	r.report(logger)
	return r.txs, nil
}

// excelDate reads a raw date cell, which is a serial day number when the
// cell is date formatted and text otherwise.
func excelDate(s string) (time.Time, error) {
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ParseDate(s)
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, err
	}
	return t.Round(time.Second), nil
}

// reader accumulates rows after the header, skipping unreadable ones.
type reader struct {
	layout    layout
	seen      bool
	line      int
	txs       []model.Transaction
	skipped   int
	firstSkip error
}

func (r *reader) add(row []string, parseDate DateParser) error {
	r.line++
	if !r.seen {
		l, err := newLayout(row)
		if err != nil {
			return err
		}
		r.layout, r.seen = l, true
		return nil
	}
	if blankRow(row) {
		return nil
	}
	tx, err := r.layout.transaction(row, parseDate)
	if err != nil {
		r.skipped++
		if r.firstSkip == nil {
			r.firstSkip = fmt.Errorf("row %d: %w", r.line, err)
		}
		return nil
	}
	tx.Price = tx.Price.Round(4)
	r.txs = append(r.txs, tx)
	return nil
}

func (r *reader) report(logger *log.Logger) {
	logger.Printf("Rows read: %d", len(r.txs))
	if r.skipped > 0 {
		logger.Printf("Skipped %d unreadable rows, first: %v", r.skipped, r.firstSkip)
	}
}

func blankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
