package security

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorent-backoffice/internal/domain"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestTokenManager(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	tm := NewTokenManager(secret, "motorent", time.Hour, clock)
	employee := &domain.Employee{ID: 7, Email: "staff@example.com", Role: domain.RoleStaff}

	token, expires, err := tm.GenerateAccessToken(employee)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(time.Hour), expires)

	t.Run("Valid", func(t *testing.T) {
		claims, err := tm.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.EmployeeID)
		assert.Equal(t, domain.RoleStaff, claims.Role)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewTokenManager("ffffffffffffffffffffffffffffffff", "motorent", time.Hour, clock)
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong issuer", func(t *testing.T) {
		other := NewTokenManager(secret, "someone-else", time.Hour, clock)
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		clock.Advance(2 * time.Hour)
		_, err := tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestResetToken(t *testing.T) {
	token, hash, err := NewResetToken()
	require.NoError(t, err)
	assert.Len(t, token, 64)
	assert.Equal(t, hash, HashResetToken(token))
	assert.NotEqual(t, token, hash)
}
