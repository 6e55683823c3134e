// Package export renders tabular data as CSV, XLSX or PDF downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Format is a download format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ErrUnsupportedFormat is returned for anything other than csv, xlsx or pdf
var ErrUnsupportedFormat = fmt.Errorf("unsupported export format, use one of: csv, xlsx, pdf")

// ParseFormat accepts a case-insensitive format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", ErrUnsupportedFormat
}

// ContentType is the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename returns base with the format's extension
func (f Format) Filename(base string) string {
	return base + "." + string(f)
}

// Table is a titled grid of cells
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Write renders t in format f to w
func Write(w io.Writer, f Format, t Table) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	case FormatPDF:
		return WritePDF(w, t)
	}
	return ErrUnsupportedFormat
}

// WriteCSV writes the header row followed by every data row
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}

const sheetName = "Sheet1"

// WriteXLSX writes a single sheet workbook with a bold header row
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if t.Title != "" {
		if err := f.SetSheetName(sheetName, sheetTitle(t.Title)); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}
	sheet := f.GetSheetName(0)

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeXLSXRow(f, sheet, 1, t.Headers); err != nil {
		return err
	}
	if len(t.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}
	for i, row := range t.Rows {
		if err := writeXLSXRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func writeXLSXRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

// sheet names are limited to 31 characters and may not contain []:*?/\
func sheetTitle(title string) string {
	title = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, title)
	if len(title) > 31 {
		title = title[:31]
	}
	return title
}

// WritePDF writes a landscape A4 table, repeating the header on every page
func WritePDF(w io.Writer, t Table) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	// core fonts are cp1252; translate so accented names survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := 0.0
	if len(t.Headers) > 0 {
		colWidth = (pageWidth - left - right) / float64(len(t.Headers))
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range t.Headers {
			pdf.CellFormat(colWidth, 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}

	pdf.AddPage()
	if t.Title != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, tr(t.Title), "", 1, "L", false, 0, "")
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range t.Rows {
		if pdf.GetY()+6 > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = fit(pdf, tr, row[i], colWidth-2)
			}
			pdf.CellFormat(colWidth, 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// fit translates s and shortens it until it fits width, marking the cut with "..."
func fit(pdf *gofpdf.Fpdf, tr func(string) string, s string, width float64) string {
	if out := tr(s); pdf.GetStringWidth(out) <= width {
		return out
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(tr(string(r)+"...")) > width {
		r = r[:len(r)-1]
	}
	return tr(string(r) + "...")
}
