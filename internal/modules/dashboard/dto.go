package dashboard

import "github.com/shopspring/decimal"

type Query struct {
	From  string `form:"desde"`
	To    string `form:"hasta"`
	Local string `form:"local"`
}

func (q Query) key() string {
	return q.From + "|" + q.To + "|" + q.Local
}

// Totals only include approved vouchers.
type Totals struct {
	Revenue       decimal.Decimal `json:"revenue"`
	Margin        decimal.Decimal `json:"margin"`
	Payouts       decimal.Decimal `json:"payouts"`
	Expenses      decimal.Decimal `json:"expenses"`
	Bonuses       decimal.Decimal `json:"bonuses"`
	Services      int             `json:"services"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type Counts struct {
	Services StatusCounts `json:"services"`
	Expenses StatusCounts `json:"expenses"`
}

type RankRow struct {
	UserID   int64           `json:"user_id"`
	Name     string          `json:"name"`
	Local    string          `json:"local"`
	Services int             `json:"services"`
	Revenue  decimal.Decimal `json:"revenue"`
	Payout   decimal.Decimal `json:"payout"`
}

type LocalRow struct {
	Local    string          `json:"local"`
	Services int             `json:"services"`
	Revenue  decimal.Decimal `json:"revenue"`
	Margin   decimal.Decimal `json:"margin"`
	Expenses decimal.Decimal `json:"expenses"`
}

type DayPoint struct {
	Day      string          `json:"day"`
	Services int             `json:"services"`
	Revenue  decimal.Decimal `json:"revenue"`
	Margin   decimal.Decimal `json:"margin"`
	Expenses decimal.Decimal `json:"expenses"`
}

type Dashboard struct {
	From    string     `json:"from"`
	To      string     `json:"to"`
	Local   string     `json:"local,omitempty"`
	Totals  Totals     `json:"totals"`
	Counts  Counts     `json:"counts"`
	Ranking []RankRow  `json:"ranking"`
	Locals  []LocalRow `json:"locals"`
	Series  []DayPoint `json:"series"`
}
