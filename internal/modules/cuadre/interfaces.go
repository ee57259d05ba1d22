package cuadre

import (
	"context"

	"vales/internal/domain"
	"vales/internal/repository"
)

type VoucherReader interface {
	All(ctx context.Context, f repository.VoucherFilter) ([]domain.Voucher, error)
}
