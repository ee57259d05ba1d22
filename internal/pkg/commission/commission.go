// Package commission holds the one split formula shared by approvals,
// the daily cuadre, the dashboard and the exports.
package commission

import (
	"errors"

	"github.com/shopspring/decimal"
)

const DefaultSplit = 100

var (
	ErrInvalidSplit  = errors.New("split percent must be one of 100, 50 or 45")
	ErrNegativeBonus = errors.New("bonus must not be negative")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)

var allowedSplits = map[int]struct{}{100: {}, 50: {}, 45: {}}

var hundred = decimal.NewFromInt(100)

type Share struct {
	Professional decimal.Decimal `json:"professional"`
	Business     decimal.Decimal `json:"business"`
}

func ValidSplit(p int) bool {
	_, ok := allowedSplits[p]
	return ok
}

// Validate checks split and bonus as accepted at approval time.
// A zero split means "not set" and is treated as DefaultSplit.
func Validate(split int, bonus decimal.Decimal) error {
	if split != 0 && !ValidSplit(split) {
		return ErrInvalidSplit
	}
	if bonus.IsNegative() {
		return ErrNegativeBonus
	}
	return nil
}

// Service returns the shares of an approved service voucher:
// professional = value*P/100 + bonus, business = value*(100-P)/100.
func Service(value decimal.Decimal, split int, bonus decimal.Decimal) Share {
	if split == 0 {
		split = DefaultSplit
	}
	p := decimal.NewFromInt(int64(split))
	return Share{
		Professional: value.Mul(p).Div(hundred).Add(bonus).Round(2),
		Business:     value.Mul(hundred.Sub(p)).Div(hundred).Round(2),
	}
}

// Expense returns the deduction charged to the professional. Expenses never
// touch the business margin.
func Expense(value, bonus decimal.Decimal) Share {
	return Share{
		Professional: value.Add(bonus).Round(2),
		Business:     decimal.Zero,
	}
}
