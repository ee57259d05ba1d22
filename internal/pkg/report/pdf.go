package report

import (
	"io"

	"github.com/go-pdf/fpdf"

	"vales/internal/pkg/money"
)

const (
	pageWidth  = 277.0 // A4 landscape minus margins
	rowHeight  = 7.0
	fontFamily = "Helvetica"
)

func WritePDF(w io.Writer, doc Document, f *money.Formatter) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 10)
	for _, line := range doc.Subtitle {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, s := range doc.Sections {
		if len(s.Headers) == 0 {
			continue
		}
		colWidth := pageWidth / float64(len(s.Headers))

		pdf.SetFont(fontFamily, "B", 12)
		pdf.CellFormat(0, 8, tr(s.Title), "", 1, "L", false, 0, "")

		pdf.SetFont(fontFamily, "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range s.Headers {
			pdf.CellFormat(colWidth, rowHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont(fontFamily, "", 9)
		for _, row := range s.Rows {
			writeRow(pdf, tr, f, row, colWidth)
		}

		if len(s.Footer) > 0 {
			pdf.SetFont(fontFamily, "B", 9)
			writeRow(pdf, tr, f, s.Footer, colWidth)
		}
		pdf.Ln(6)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func writeRow(pdf *fpdf.Fpdf, tr func(string) string, f *money.Formatter, row []any, colWidth float64) {
	for i, cell := range row {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(colWidth, rowHeight, tr(text(f, cell)), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}
