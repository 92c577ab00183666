package session

import (
	"context"
	"strconv"
	"testing"
	"time"

	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/cart"
	"pos-terminal/internal/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (IRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := redis.Setup(context.Background(), &redis.Config{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewRepo(client), mr
}

func TestSaveGet(t *testing.T) {
	repo, mr := setupRepo(t)

	c := cart.New()
	c.Add(cart.Item{ItemID: "i-1", Name: "Tea", Price: 20})
	s := &types.Session{ID: "s-1", TerminalID: "t-1", Cart: c}
	require.NoError(t, repo.Save(s, time.Hour))

	got, err := repo.Get("s-1")
	require.NoError(t, err)
	assert.Equal(t, "t-1", got.TerminalID)
	assert.Equal(t, 1, got.Cart.Len())

	mr.FastForward(2 * time.Hour)
	_, err = repo.Get("s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGet_MissingCartIsUsable(t *testing.T) {
	repo, mr := setupRepo(t)
	require.NoError(t, mr.Set(sessionKey("s-2"), `{"id":"s-2"}`))

	got, err := repo.Get("s-2")
	require.NoError(t, err)
	require.NotNil(t, got.Cart)
	assert.True(t, got.Cart.IsEmpty())
}

func TestGuard(t *testing.T) {
	repo, mr := setupRepo(t)

	token, err := repo.AcquireGuard("s-1", time.Minute)
	require.NoError(t, err)

	_, err = repo.AcquireGuard("s-1", time.Minute)
	assert.ErrorIs(t, err, ErrGuardHeld)

	require.NoError(t, repo.ReleaseGuard("s-1", "someone-else"))
	_, err = repo.AcquireGuard("s-1", time.Minute)
	assert.ErrorIs(t, err, ErrGuardHeld)

	require.NoError(t, repo.ReleaseGuard("s-1", token))
	second, err := repo.AcquireGuard("s-1", time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, err = repo.AcquireGuard("s-1", time.Minute)
	assert.NoError(t, err)
	assert.NotEqual(t, token, second)
}

func TestDelete(t *testing.T) {
	repo, _ := setupRepo(t)
	require.NoError(t, repo.Save(&types.Session{ID: "s-1"}, time.Hour))
	require.NoError(t, repo.Delete("s-1"))

	_, err := repo.Get("s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
