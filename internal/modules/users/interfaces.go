package users

import (
	"context"

	"vales/internal/domain"
	"vales/internal/repository"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	List(ctx context.Context, f repository.UserFilter) ([]domain.User, int64, error)
	Locals(ctx context.Context) ([]string, error)
}
