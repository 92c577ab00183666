package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_Verified(t *testing.T) {
	token, err := Sign("cashier@shop.in", "USER", "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := Inspect(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "cashier@shop.in", claims.Subject)
	assert.Equal(t, "USER", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *claims.ExpiresAt, 5*time.Second)
}

func TestInspect_WrongSecret(t *testing.T) {
	token, err := Sign("a@b.c", "ADMIN", "s3cret", time.Hour)
	require.NoError(t, err)

	_, err = Inspect(token, "other")
	assert.Error(t, err)
}

func TestInspect_Unverified(t *testing.T) {
	token, err := Sign("a@b.c", "ADMIN", "backend-only", time.Hour)
	require.NoError(t, err)

	claims, err := Inspect(token, "")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestInspect_Expired(t *testing.T) {
	token, err := Sign("a@b.c", "ADMIN", "k", -time.Minute)
	require.NoError(t, err)

	_, err = Inspect(token, "k")
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = Inspect(token, "")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestInspect_Garbage(t *testing.T) {
	_, err := Inspect("not-a-token", "")
	assert.Error(t, err)
}
