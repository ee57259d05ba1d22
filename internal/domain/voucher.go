package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VoucherKind string

const (
	KindService VoucherKind = "service"
	KindExpense VoucherKind = "expense"
)

func (k VoucherKind) Valid() bool {
	return k == KindService || k == KindExpense
}

// CodePrefix is the letter that opens the human readable daily code.
func (k VoucherKind) CodePrefix() string {
	if k == KindExpense {
		return "G"
	}
	return "S"
}

type VoucherStatus string

const (
	VoucherPending  VoucherStatus = "pending"
	VoucherApproved VoucherStatus = "approved"
	VoucherRejected VoucherStatus = "rejected"
)

func (s VoucherStatus) Valid() bool {
	return s == VoucherPending || s == VoucherApproved || s == VoucherRejected
}

type PaymentMethod string

const (
	PaymentEfectivo      PaymentMethod = "efectivo"
	PaymentDebito        PaymentMethod = "debito"
	PaymentCredito       PaymentMethod = "credito"
	PaymentTransferencia PaymentMethod = "transferencia"
)

var PaymentMethods = []PaymentMethod{
	PaymentEfectivo,
	PaymentDebito,
	PaymentCredito,
	PaymentTransferencia,
}

func (p PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if p == v {
			return true
		}
	}
	return false
}

// Voucher is a "vale": either a service rendered by a professional or an
// expense charged against them.
type Voucher struct {
	ID            int64            `json:"id" gorm:"primaryKey"`
	Kind          VoucherKind      `json:"kind" gorm:"size:16;not null;index:idx_vouchers_kind_day,priority:1"`
	Code          string           `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Amount        decimal.Decimal  `json:"amount" gorm:"type:decimal(14,2);not null"`
	Description   string           `json:"description" gorm:"type:text;not null"`
	PaymentMethod PaymentMethod    `json:"payment_method,omitempty" gorm:"size:32"`
	UserID        int64            `json:"user_id" gorm:"index;not null"`
	UserName      string           `json:"user_name" gorm:"size:255"`
	Local         string           `json:"local" gorm:"size:128;index"`
	Status        VoucherStatus    `json:"status" gorm:"size:16;index;not null"`
	ApprovedByID  *int64           `json:"approved_by_id,omitempty"`
	ApprovedBy    string           `json:"approved_by,omitempty" gorm:"size:255"`
	DecidedAt     *time.Time       `json:"decided_at,omitempty"`
	Observation   string           `json:"observation,omitempty" gorm:"type:text"`
	SplitPercent  *int             `json:"split_percent,omitempty"`
	Bonus         *decimal.Decimal `json:"bonus,omitempty" gorm:"type:decimal(14,2)"`
	Day           string           `json:"day" gorm:"size:10;not null;index:idx_vouchers_kind_day,priority:2"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (v *Voucher) IsPending() bool {
	return v.Status == VoucherPending
}

// BonusOrZero returns the flat bonus, zero when none was granted.
func (v *Voucher) BonusOrZero() decimal.Decimal {
	if v.Bonus == nil {
		return decimal.Zero
	}
	return *v.Bonus
}

// SplitOrDefault returns the split percent, 100 when the voucher was not split.
func (v *Voucher) SplitOrDefault() int {
	if v.SplitPercent == nil {
		return 100
	}
	return *v.SplitPercent
}
