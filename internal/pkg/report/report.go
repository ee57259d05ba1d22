// Package report renders tabular documents (the daily cuadre) as PDF and XLSX.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"vales/internal/pkg/money"
)

type Section struct {
	Title   string
	Headers []string
	Rows    [][]any
	Footer  []any
}

type Document struct {
	Title    string
	Subtitle []string
	Sections []Section
}

// text renders a cell for formats without native number types.
func text(f *money.Formatter, v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case decimal.Decimal:
		return f.CLP(x)
	default:
		return fmt.Sprint(x)
	}
}
