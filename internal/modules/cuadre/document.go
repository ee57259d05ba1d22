package cuadre

import (
	"fmt"

	"vales/internal/pkg/report"
)

var totalsHeaders = []string{"Servicios", "Bruto", "Comisión", "Negocio", "Bonos", "Gastos", "Neto"}

func (t Totals) cells() []any {
	return []any{t.Services, t.Gross, t.ProfessionalShare, t.BusinessShare, t.Bonuses, t.Expenses, t.Net}
}

// Document lays the cuadre out for the PDF and XLSX exports.
func Document(r *Report) report.Document {
	local := r.Local
	if local == "" {
		local = "Todos"
	}
	doc := report.Document{
		Title: "Cuadre diario " + r.Day,
		Subtitle: []string{
			"Local: " + local,
			fmt.Sprintf("Vales pendientes: %d  Rechazados: %d", r.PendingCount, r.RejectedCount),
		},
	}

	pros := report.Section{
		Title:   "Profesionales",
		Headers: append([]string{"Profesional", "Local"}, totalsHeaders...),
		Footer:  append([]any{"Total", ""}, r.Totals.cells()...),
	}
	for _, p := range r.Professionals {
		pros.Rows = append(pros.Rows, append([]any{p.Name, p.Local}, p.cells()...))
	}

	locals := report.Section{
		Title:   "Locales",
		Headers: append([]string{"Local"}, totalsHeaders...),
		Footer:  append([]any{"Total"}, r.Totals.cells()...),
	}
	for _, l := range r.Locals {
		locals.Rows = append(locals.Rows, append([]any{l.Local}, l.cells()...))
	}

	methods := report.Section{
		Title:   "Medios de pago",
		Headers: []string{"Medio", "Servicios", "Monto"},
	}
	for _, m := range r.PaymentMethods {
		methods.Rows = append(methods.Rows, []any{m.Method, m.Count, m.Amount})
	}

	doc.Sections = []report.Section{pros, locals, methods}
	return doc
}
