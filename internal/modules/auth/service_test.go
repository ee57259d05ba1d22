package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vales/internal/domain"
	"vales/internal/pkg/logger"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func (m *mockTokens) TTL() time.Duration { return time.Hour }

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestService_Login_Success(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokens)
	user := &domain.User{ID: 3, Email: "paz@salon.cl", PasswordHash: hashed(t, "secret123"), Role: domain.RoleAnfitrion, Active: true}

	users.On("GetByEmail", mock.Anything, "paz@salon.cl").Return(user, nil)
	tokens.On("GenerateToken", int64(3), "anfitrion").Return("jwt-token", nil)

	svc := NewService(users, tokens, logger.Nop())
	res, err := svc.Login(context.Background(), LoginRequest{Email: " Paz@Salon.cl ", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", res.AccessToken)
	assert.Empty(t, res.User.PasswordHash)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	user := &domain.User{ID: 3, PasswordHash: hashed(t, "secret123"), Active: true}
	users.On("GetByEmail", mock.Anything, "paz@salon.cl").Return(user, nil)

	svc := NewService(users, new(mockTokens), logger.Nop())
	_, err := svc.Login(context.Background(), LoginRequest{Email: "paz@salon.cl", Password: "nope"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "ghost@salon.cl").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(users, new(mockTokens), logger.Nop())
	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@salon.cl", Password: "x"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_Inactive(t *testing.T) {
	users := new(mockUserRepo)
	user := &domain.User{ID: 3, PasswordHash: hashed(t, "secret123"), Active: false}
	users.On("GetByEmail", mock.Anything, "paz@salon.cl").Return(user, nil)

	svc := NewService(users, new(mockTokens), logger.Nop())
	_, err := svc.Login(context.Background(), LoginRequest{Email: "paz@salon.cl", Password: "secret123"})

	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestService_Login_RepositoryFailure(t *testing.T) {
	users := new(mockUserRepo)
	boom := errors.New("connection reset")
	users.On("GetByEmail", mock.Anything, "paz@salon.cl").Return(nil, boom)

	svc := NewService(users, new(mockTokens), logger.Nop())
	_, err := svc.Login(context.Background(), LoginRequest{Email: "paz@salon.cl", Password: "x"})

	assert.ErrorIs(t, err, boom)
}
