// Package render formats ledger records for terminals and PDF export.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/xraph/invoicer/invoice"
)

// Column headings shared by the text table and the PDF.
var columns = []string{"Qty", "Price", "Disc %", "Disc", "Tax %", "Tax", "Total", "ID"}

// FormatAmount renders v with two decimal places. NaN and infinities
// are written as "NaN", "+Inf" and "-Inf" so a bad entry stays visible.
func FormatAmount(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func row(rec *invoice.Record) []string {
	return []string{
		FormatAmount(rec.Quantity),
		FormatAmount(rec.UnitPrice),
		FormatAmount(rec.DiscountPercent),
		FormatAmount(rec.DiscountAmount),
		FormatAmount(rec.TaxPercent),
		FormatAmount(rec.TaxAmount),
		FormatAmount(rec.Total),
		rec.ID.String(),
	}
}

// WriteTable writes records as an aligned text table, one row per record
// in ledger order.
func WriteTable(w io.Writer, records []*invoice.Record) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, columns)
	for _, rec := range records {
		rows = append(rows, row(rec))
	}

	widths := make([]int, len(columns))
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var b strings.Builder
	for _, r := range rows {
		for i, cell := range r {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(r)-1 {
				// Left-align the trailing ID column without padding.
				b.WriteString(cell)
				continue
			}
			fmt.Fprintf(&b, "%*s", widths[i], cell)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// pdfWidths are the column widths in millimetres on an A4 page.
var pdfWidths = []float64{14, 22, 16, 20, 16, 20, 24, 58}

// WritePDF writes the ledger as a single A4 table headed by title.
func WritePDF(w io.Writer, title string, records []*invoice.Record) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(5, 10, 5)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, heading := range columns {
		pdf.CellFormat(pdfWidths[i], 7, heading, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	var sum float64
	for _, rec := range records {
		cells := row(rec)
		for i, cell := range cells {
			align := "R"
			if i == len(cells)-1 {
				align = "L"
			}
			pdf.CellFormat(pdfWidths[i], 6, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
		sum += rec.Total
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.Ln(2)
	pdf.CellFormat(0, 7, fmt.Sprintf("%d invoices, grand total %s", len(records), FormatAmount(sum)),
		"", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
