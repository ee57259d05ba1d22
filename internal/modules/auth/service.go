package auth

import (
	"context"
	"strings"
	"time"

	"vales/internal/domain"
	"vales/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users  UserRepositoryInterface
	tokens TokenIssuer
	logger *zap.SugaredLogger
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
	ExpiresAt   time.Time
}

func NewService(users UserRepositoryInterface, tokens TokenIssuer, logger *zap.SugaredLogger) *Service {
	return &Service{users: users, tokens: tokens, logger: logger}
}

// Login checks the password and issues an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Infow("login failed", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrAccountDisabled
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{
		User:        user,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.tokens.TTL()),
	}, nil
}
