package reports

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

const pdfMargin = 10.0

// RenderPDF lays the report table out on landscape A4 pages.
func RenderPDF(r *Report, opts Options) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	appName := opts.AppName
	if appName == "" {
		appName = "Inventory"
	}

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 10, tr(splitCamel(appName)+" Report"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 6, tr("Generated on "+r.GeneratedAt.Format(dateTimeLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(33, 37, 41)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, tr(r.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(249, 249, 249)
	for _, line := range r.Summary {
		value := line.Value
		if line.Money {
			value = opts.CurrencySymbol + value
		}
		pdf.CellFormat(0, 6, tr(line.Label+": "+value), "", 1, "L", true, 0, "")
	}
	pdf.Ln(4)

	pageWidth, _ := pdf.GetPageSize()
	colWidth := (pageWidth - 2*pdfMargin) / float64(len(r.Columns))

	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(242, 242, 242)
		pdf.SetTextColor(33, 37, 41)
		for _, col := range r.Columns {
			pdf.CellFormat(colWidth, 8, tr(col), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(8)
	}
	header()

	pdf.SetFont("Arial", "", 9)
	_, pageHeight := pdf.GetPageSize()
	for _, row := range r.Rows {
		if pdf.GetY()+7 > pageHeight-pdfMargin {
			pdf.AddPage()
			header()
			pdf.SetFont("Arial", "", 9)
		}
		for _, cell := range row {
			value := cell.Value
			if cell.Money {
				value = opts.CurrencySymbol + value
			}
			switch cell.Class {
			case classUrgent:
				pdf.SetTextColor(211, 47, 47)
			case classWarning:
				pdf.SetTextColor(245, 124, 0)
			default:
				pdf.SetTextColor(33, 37, 41)
			}
			pdf.CellFormat(colWidth, 7, tr(value), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
