package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"vales/internal/domain"
	"vales/internal/modules/voucher"
)

func (c *StatusCounts) add(s domain.VoucherStatus) {
	switch s {
	case domain.VoucherPending:
		c.Pending++
	case domain.VoucherApproved:
		c.Approved++
	case domain.VoucherRejected:
		c.Rejected++
	}
}

// Aggregate computes the dashboard for [from, to]. services and expenses
// may hold vouchers of any status; only approved ones reach the money totals.
func Aggregate(q Query, services, expenses []domain.Voucher) *Dashboard {
	d := &Dashboard{
		From:    q.From,
		To:      q.To,
		Local:   q.Local,
		Ranking: []RankRow{},
		Locals:  []LocalRow{},
		Series:  series(q.From, q.To),
	}

	days := make(map[string]*DayPoint, len(d.Series))
	for i := range d.Series {
		days[d.Series[i].Day] = &d.Series[i]
	}
	ranking := map[int64]*RankRow{}
	locals := map[string]*LocalRow{}
	local := func(name string) *LocalRow {
		l, ok := locals[name]
		if !ok {
			l = &LocalRow{Local: name}
			locals[name] = l
		}
		return l
	}

	for i := range services {
		v := &services[i]
		d.Counts.Services.add(v.Status)
		if v.Status != domain.VoucherApproved {
			continue
		}
		share := voucher.Shares(v)

		d.Totals.Services++
		d.Totals.Revenue = d.Totals.Revenue.Add(v.Amount)
		d.Totals.Margin = d.Totals.Margin.Add(share.Business)
		d.Totals.Payouts = d.Totals.Payouts.Add(share.Professional)
		d.Totals.Bonuses = d.Totals.Bonuses.Add(v.BonusOrZero())

		r, ok := ranking[v.UserID]
		if !ok {
			r = &RankRow{UserID: v.UserID, Name: v.UserName, Local: v.Local}
			ranking[v.UserID] = r
		} else if r.Local != v.Local {
			// worked several locals in the range
			r.Local = ""
		}
		r.Services++
		r.Revenue = r.Revenue.Add(v.Amount)
		r.Payout = r.Payout.Add(share.Professional)

		l := local(v.Local)
		l.Services++
		l.Revenue = l.Revenue.Add(v.Amount)
		l.Margin = l.Margin.Add(share.Business)

		if p, ok := days[v.Day]; ok {
			p.Services++
			p.Revenue = p.Revenue.Add(v.Amount)
			p.Margin = p.Margin.Add(share.Business)
		}
	}

	for i := range expenses {
		v := &expenses[i]
		d.Counts.Expenses.add(v.Status)
		if v.Status != domain.VoucherApproved {
			continue
		}
		amount := voucher.Shares(v).Professional

		d.Totals.Expenses = d.Totals.Expenses.Add(amount)

		l := local(v.Local)
		l.Expenses = l.Expenses.Add(amount)

		if p, ok := days[v.Day]; ok {
			p.Expenses = p.Expenses.Add(amount)
		}
	}

	if d.Totals.Services > 0 {
		d.Totals.AverageTicket = d.Totals.Revenue.Div(decimal.NewFromInt(int64(d.Totals.Services))).Round(2)
	}

	for _, r := range ranking {
		d.Ranking = append(d.Ranking, *r)
	}
	sort.Slice(d.Ranking, func(i, j int) bool {
		a, b := d.Ranking[i], d.Ranking[j]
		if c := a.Revenue.Cmp(b.Revenue); c != 0 {
			return c > 0
		}
		return a.UserID < b.UserID
	})

	for _, l := range locals {
		d.Locals = append(d.Locals, *l)
	}
	sort.Slice(d.Locals, func(i, j int) bool { return d.Locals[i].Local < d.Locals[j].Local })

	return d
}

// series has one zeroed point per day so charts have no gaps.
func series(from, to string) []DayPoint {
	start, err1 := time.Parse(voucher.DayLayout, from)
	end, err2 := time.Parse(voucher.DayLayout, to)
	if err1 != nil || err2 != nil || end.Before(start) {
		return []DayPoint{}
	}

	out := make([]DayPoint, 0, int(end.Sub(start).Hours()/24)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		out = append(out, DayPoint{Day: day.Format(voucher.DayLayout)})
	}
	return out
}
