package cuadre

import (
	"github.com/shopspring/decimal"
)

type Query struct {
	Day   string `form:"dia"`
	Local string `form:"local"`
}

// Totals is one line of the cuadre. Net is what the business owes the
// professional for the day: their share of services minus their expenses.
type Totals struct {
	Services          int             `json:"services"`
	Gross             decimal.Decimal `json:"gross"`
	ProfessionalShare decimal.Decimal `json:"professional_share"`
	BusinessShare     decimal.Decimal `json:"business_share"`
	Bonuses           decimal.Decimal `json:"bonuses"`
	Expenses          decimal.Decimal `json:"expenses"`
	Net               decimal.Decimal `json:"net"`
}

type ProfessionalRow struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Local  string `json:"local"`
	Totals
}

type LocalRow struct {
	Local string `json:"local"`
	Totals
}

type MethodRow struct {
	Method string          `json:"method"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type Report struct {
	Day            string            `json:"day"`
	Local          string            `json:"local,omitempty"`
	Professionals  []ProfessionalRow `json:"professionals"`
	Locals         []LocalRow        `json:"locals"`
	PaymentMethods []MethodRow       `json:"payment_methods"`
	Totals         Totals            `json:"totals"`
	PendingCount   int               `json:"pending_count"`
	RejectedCount  int               `json:"rejected_count"`
}
