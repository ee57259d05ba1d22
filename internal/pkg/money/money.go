package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Chilean pesos have no minor unit in practice, so amounts are shown rounded.
var ChileanSpanish = language.MustParse("es-CL")

type Formatter struct {
	p *message.Printer
}

func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{p: message.NewPrinter(tag)}
}

// CLP formats (1234567.4) as "$1.234.567" for es-CL.
func (f *Formatter) CLP(v decimal.Decimal) string {
	n := v.Round(0).IntPart()
	if n < 0 {
		return f.p.Sprintf("-$%d", -n)
	}
	return f.p.Sprintf("$%d", n)
}

// Percent formats a split percent like "45%".
func (f *Formatter) Percent(p int) string {
	return f.p.Sprintf("%d%%", p)
}
