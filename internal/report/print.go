package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"rfm-segmentation/internal/model"
)

// newTable returns a borderless table that renders into buf.
func newTable(buf *bytes.Buffer, header []string, align []int) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnAlignment(align)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}

// labelled aligns a text first column with numeric columns after it.
func labelled(columns int) []int {
	align := make([]int, columns)
	align[0] = tablewriter.ALIGN_LEFT
	for i := 1; i < columns; i++ {
		align[i] = tablewriter.ALIGN_RIGHT
	}
	return align
}

func PrintOverview(w io.Writer, ov DatasetOverview) error {
	var buf bytes.Buffer

	buf.WriteString("##################### Shape #####################\n")
	shape := newTable(&buf, []string{"", "count"}, labelled(2))
	shape.Append([]string{"rows", strconv.Itoa(ov.Rows)})
	shape.Append([]string{"columns", strconv.Itoa(ov.Columns)})
	shape.Render()

	buf.WriteString("\n##################### NA #####################\n")
	na := newTable(&buf, []string{"column", "missing"}, labelled(2))
	for _, col := range []string{"invoice", "stock_code", "description", "customer_id", "country"} {
		na.Append([]string{col, strconv.Itoa(ov.Missing[col])})
	}
	na.Render()

	buf.WriteString("\n##################### Quantiles #####################\n")
	header := []string{"column"}
	for _, p := range OverviewQuantiles {
		header = append(header, strconv.FormatFloat(p, 'f', 2, 64))
	}
	quantiles := newTable(&buf, header, labelled(len(header)))
	quantiles.Append(quantileRow("quantity", ov.QuantityQuantiles))
	quantiles.Append(quantileRow("price", ov.PriceQuantiles))
	quantiles.Render()

	buf.WriteString("\n##################### Products #####################\n")
	fmt.Fprintf(&buf, "distinct descriptions: %d\n", ov.DistinctDescriptions)
	products := newTable(&buf, []string{"description", "quantity"}, labelled(2))
	for _, p := range ov.TopProducts {
		products.Append([]string{p.Description, strconv.Itoa(p.Quantity)})
	}
	products.Render()

	_, err := w.Write(buf.Bytes())
	return err
}

func quantileRow(name string, qs []Quantile) []string {
	row := []string{name}
	for _, q := range qs {
		row = append(row, strconv.FormatFloat(q.Value, 'f', 5, 64))
	}
	return row
}

func PrintSummary(w io.Writer, summaries []SegmentSummary) error {
	var buf bytes.Buffer
	header := []string{"segment", "recency mean", "recency count", "frequency mean", "frequency count", "monetary mean", "monetary count"}
	table := newTable(&buf, header, labelled(len(header)))
	for _, s := range summaries {
		count := strconv.Itoa(s.Count)
		table.Append([]string{
			string(s.Segment),
			strconv.FormatFloat(s.MeanRecency, 'f', 5, 64), count,
			strconv.FormatFloat(s.MeanFrequency, 'f', 5, 64), count,
			s.MeanMonetary.StringFixed(5), count,
		})
	}
	table.Render()
	_, err := w.Write(buf.Bytes())
	return err
}

func PrintMembers(w io.Writer, segment model.Segment, members []model.ScoredCustomer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n", segment)
	table := newTable(&buf, []string{"customer_id", "recency", "frequency", "monetary"}, labelled(4))
	for _, m := range members {
		table.Append([]string{m.CustomerID, strconv.Itoa(m.Recency), strconv.Itoa(m.Frequency), m.Monetary.StringFixed(5)})
	}
	table.Render()
	_, err := w.Write(buf.Bytes())
	return err
}

func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
