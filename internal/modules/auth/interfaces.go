package auth

import (
	"context"
	"time"

	"vales/internal/domain"
)

// UserRepositoryInterface — only the methods auth service uses
type UserRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
	TTL() time.Duration
}
