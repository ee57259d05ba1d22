package report

import (
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"vales/internal/pkg/money"
)

const (
	sheetName    = "Cuadre"
	clpNumFormat = `"$"#,##0`
)

func WriteXLSX(w io.Writer, doc Document, f *money.Formatter) error {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	bold, err := x.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	numFmt := clpNumFormat
	moneyStyle, err := x.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}

	row := 1
	if err := setRow(x, row, []any{doc.Title}, bold, moneyStyle, f); err != nil {
		return err
	}
	row++
	for _, line := range doc.Subtitle {
		if err := setRow(x, row, []any{line}, 0, moneyStyle, f); err != nil {
			return err
		}
		row++
	}
	row++

	for _, s := range doc.Sections {
		if err := setRow(x, row, []any{s.Title}, bold, moneyStyle, f); err != nil {
			return err
		}
		row++
		headers := make([]any, len(s.Headers))
		for i, h := range s.Headers {
			headers[i] = h
		}
		if err := setRow(x, row, headers, bold, moneyStyle, f); err != nil {
			return err
		}
		row++
		for _, r := range s.Rows {
			if err := setRow(x, row, r, 0, moneyStyle, f); err != nil {
				return err
			}
			row++
		}
		if len(s.Footer) > 0 {
			if err := setRow(x, row, s.Footer, bold, moneyStyle, f); err != nil {
				return err
			}
			row++
		}
		row++
	}

	if err := x.SetColWidth(sheetName, "A", "J", 18); err != nil {
		return err
	}
	return x.Write(w)
}

func setRow(x *excelize.File, row int, cells []any, style, moneyStyle int, f *money.Formatter) error {
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}

		cellStyle := style
		var value any
		switch d := v.(type) {
		case decimal.Decimal:
			value = d.InexactFloat64()
			if cellStyle == 0 {
				cellStyle = moneyStyle
			}
		case string, int, int64, float64, nil:
			value = d
		default:
			value = text(f, d)
		}

		if err := x.SetCellValue(sheetName, cell, value); err != nil {
			return err
		}
		if cellStyle != 0 {
			if err := x.SetCellStyle(sheetName, cell, cell, cellStyle); err != nil {
				return err
			}
		}
	}
	return nil
}
