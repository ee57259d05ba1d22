package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	s := New("secret", time.Hour)

	token, err := s.GenerateToken(7, "anfitrion")
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "anfitrion", claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestService_RejectsForeignSecret(t *testing.T) {
	token, err := New("one", time.Hour).GenerateToken(7, "admin")
	require.NoError(t, err)

	_, err = New("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_RejectsExpired(t *testing.T) {
	s := New("secret", -time.Minute)
	token, err := s.GenerateToken(7, "admin")
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
