package voucher

import (
	"errors"

	"vales/internal/pkg/commission"
)

var (
	ErrVoucherNotFound      = errors.New("voucher not found")
	ErrForbidden            = errors.New("not allowed to access this voucher")
	ErrAlreadyDecided       = errors.New("voucher was already decided")
	ErrDescriptionRequired  = errors.New("description is required")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrSplitOnExpense       = errors.New("expenses can not be split")
	ErrInvalidDay           = errors.New("day must be formatted YYYY-MM-DD")
	ErrInactiveUser         = errors.New("inactive users can not submit vouchers")

	ErrInvalidAmount = commission.ErrInvalidAmount
	ErrInvalidSplit  = commission.ErrInvalidSplit
	ErrNegativeBonus = commission.ErrNegativeBonus
)
