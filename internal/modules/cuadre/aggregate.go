package cuadre

import (
	"sort"

	"vales/internal/domain"
	"vales/internal/modules/voucher"
)

// noMethod labels approved services submitted without a payment method.
const noMethod = "sin_medio"

// proKey splits a professional who worked more than one local into one row per local.
type proKey struct {
	userID int64
	local  string
}

func (t *Totals) add(v *domain.Voucher) {
	share := voucher.Shares(v)
	switch v.Kind {
	case domain.KindService:
		t.Services++
		t.Gross = t.Gross.Add(v.Amount)
		t.ProfessionalShare = t.ProfessionalShare.Add(share.Professional)
		t.BusinessShare = t.BusinessShare.Add(share.Business)
		t.Bonuses = t.Bonuses.Add(v.BonusOrZero())
	case domain.KindExpense:
		t.Expenses = t.Expenses.Add(share.Professional)
	}
	t.Net = t.ProfessionalShare.Sub(t.Expenses)
}

// Aggregate builds the cuadre for list, which must already be limited to
// one day. Only approved vouchers contribute to amounts.
func Aggregate(day, local string, list []domain.Voucher) *Report {
	r := &Report{
		Day:            day,
		Local:          local,
		Professionals:  []ProfessionalRow{},
		Locals:         []LocalRow{},
		PaymentMethods: []MethodRow{},
	}

	pros := map[proKey]*ProfessionalRow{}
	locals := map[string]*LocalRow{}
	methods := map[string]*MethodRow{}

	for i := range list {
		v := &list[i]
		switch v.Status {
		case domain.VoucherPending:
			r.PendingCount++
			continue
		case domain.VoucherRejected:
			r.RejectedCount++
			continue
		}

		k := proKey{userID: v.UserID, local: v.Local}
		p, ok := pros[k]
		if !ok {
			p = &ProfessionalRow{UserID: v.UserID, Name: v.UserName, Local: v.Local}
			pros[k] = p
		}
		p.add(v)

		l, ok := locals[v.Local]
		if !ok {
			l = &LocalRow{Local: v.Local}
			locals[v.Local] = l
		}
		l.add(v)

		r.Totals.add(v)

		if v.Kind == domain.KindService {
			name := string(v.PaymentMethod)
			if name == "" {
				name = noMethod
			}
			m, ok := methods[name]
			if !ok {
				m = &MethodRow{Method: name}
				methods[name] = m
			}
			m.Count++
			m.Amount = m.Amount.Add(v.Amount)
		}
	}

	for _, p := range pros {
		r.Professionals = append(r.Professionals, *p)
	}
	sort.Slice(r.Professionals, func(i, j int) bool {
		a, b := r.Professionals[i], r.Professionals[j]
		if a.Local != b.Local {
			return a.Local < b.Local
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.UserID < b.UserID
	})

	for _, l := range locals {
		r.Locals = append(r.Locals, *l)
	}
	sort.Slice(r.Locals, func(i, j int) bool { return r.Locals[i].Local < r.Locals[j].Local })

	for _, m := range methods {
		r.PaymentMethods = append(r.PaymentMethods, *m)
	}
	sort.Slice(r.PaymentMethods, func(i, j int) bool { return r.PaymentMethods[i].Method < r.PaymentMethods[j].Method })

	return r
}
