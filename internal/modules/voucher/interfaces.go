package voucher

import (
	"context"

	"vales/internal/domain"
	"vales/internal/repository"
)

type VoucherRepositoryInterface interface {
	Create(ctx context.Context, v *domain.Voucher) error
	GetByID(ctx context.Context, id int64) (*domain.Voucher, error)
	List(ctx context.Context, f repository.VoucherFilter) ([]domain.Voucher, int64, error)
	Pending(ctx context.Context, local string) ([]domain.Voucher, error)
	CountByStatus(ctx context.Context, f repository.VoucherFilter) ([]repository.StatusCount, error)
	Decide(ctx context.Context, id int64, d repository.Decision) (bool, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
