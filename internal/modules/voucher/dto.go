package voucher

import (
	"vales/internal/domain"
	"vales/internal/pkg/commission"
	"vales/internal/repository"

	"github.com/shopspring/decimal"
)

// Actor is the authenticated caller.
type Actor struct {
	ID   int64
	Role domain.UserRole
	Name string
}

func (a Actor) CanApprove() bool {
	return a.Role.CanApprove()
}

type CreateServiceRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description" binding:"max=500"`
	PaymentMethod string          `json:"payment_method"`
	Local         string          `json:"local" binding:"max=128"`
}

type CreateExpenseRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Concept string          `json:"concept" binding:"max=500"`
	Local   string          `json:"local" binding:"max=128"`
}

type ApproveRequest struct {
	SplitPercent *int             `json:"split_percent"`
	Bonus        *decimal.Decimal `json:"bonus"`
	Observation  string           `json:"observation" binding:"max=1000"`
}

type RejectRequest struct {
	Observation string `json:"observation" binding:"max=1000"`
}

type ListQuery struct {
	Kind   string `form:"tipo"`
	Status string `form:"estado"`
	UserID int64  `form:"usuario"`
	Local  string `form:"local"`
	From   string `form:"desde"`
	To     string `form:"hasta"`
	Query  string `form:"q"`
	Sort   string `form:"orden"`     // created_at | amount
	Dir    string `form:"direccion"` // asc | desc
}

// View is a voucher plus its commission shares once approved.
type View struct {
	domain.Voucher
	Share *commission.Share `json:"share,omitempty"`
}

type Summary struct {
	Counts   []repository.StatusCount       `json:"counts"`
	ByStatus map[domain.VoucherStatus]int64 `json:"by_status"`
	Total    int64                          `json:"total"`
}
