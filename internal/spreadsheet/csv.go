package spreadsheet

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"rfm-segmentation/internal/model"
)

// CSV reads transactions from a comma separated export of the sheet.
type CSV struct {
	Path string
}

func (c *CSV) Load(ctx context.Context, logger *log.Logger) ([]model.Transaction, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	file, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.Path, err)
	}
	defer file.Close()

	logger.Printf("Reading %s", c.Path)
	txs, err := ReadCSV(ctx, file, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Path, err)
	}
	return txs, nil
}

// ReadCSV parses a header row followed by invoice lines.
func ReadCSV(ctx context.Context, in io.Reader, logger *log.Logger) ([]model.Transaction, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	cr := csv.NewReader(bufio.NewReader(in))
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	var r reader
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := r.add(rec, ParseDate); err != nil {
			return nil, err
		}
	}
	if !r.seen {
		return nil, ErrNoHeader
	}
	r.report(logger)
	return r.txs, nil
}
