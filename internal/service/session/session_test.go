package session

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"pos-terminal/internal/common/enum"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend/backendtest"
	"pos-terminal/internal/pkg/cart"
	"pos-terminal/internal/pkg/jwt"
	"pos-terminal/internal/pkg/middleware"
	"pos-terminal/internal/pkg/redis"
	"pos-terminal/internal/repository"
	sessionRepo "pos-terminal/internal/repository/session"
	"pos-terminal/internal/service/catalog"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, fake *backendtest.Fake, secret string) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	rds, err := redis.Setup(context.Background(), &redis.Config{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rds.Close() })

	ctx := context.Background()
	rp := repository.IRepository{Session: sessionRepo.NewRepo(rds)}
	cat := catalog.NewService(ctx, rds, fake, time.Minute)
	return NewService(ctx, rp, fake, cat, secret, time.Hour).(*Service)
}

func menu() *backendtest.Fake {
	return &backendtest.Fake{
		Categories: []types.Category{{CategoryID: "drinks", Name: "Drinks"}},
		Items: []types.Item{
			{ItemID: "i-1", Name: "Tea", Price: 20, CategoryID: "drinks"},
			{ItemID: "i-2", Name: "Coffee", Price: 30, CategoryID: "drinks"},
		},
	}
}

func login(t *testing.T, s *Service) *SessionView {
	t.Helper()
	r := s.Login(&LoginRequest{Email: "cashier@shop.in", Password: "secret", TerminalID: "t-1"})
	require.Equal(t, http.StatusOK, r.Code, r.Message)
	return r.Data.(*SessionView)
}

func TestLogin_StoresTokenAndRole(t *testing.T) {
	fake := menu()
	fake.Auth = &types.AuthResponse{Email: "cashier@shop.in", Token: "opaque-token", Role: "admin"}
	s := newTestService(t, fake, "")

	view := login(t, s)
	assert.Equal(t, enum.ROLE_ADMIN, view.Role)
	require.NotNil(t, view.Catalog)
	assert.Len(t, view.Catalog.Items, 2)

	stored, err := s.Load(view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", stored.Auth.Token)
	assert.True(t, stored.Auth.IsLoggedIn())
}

func TestLogin_ReadsTokenExpiry(t *testing.T) {
	token, err := jwt.Sign("u-1", "USER", "s3cret", time.Hour)
	require.NoError(t, err)
	s := newTestService(t, &backendtest.Fake{Auth: &types.AuthResponse{Token: token, Role: "USER"}}, "s3cret")

	view := login(t, s)
	require.NotNil(t, view.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *view.ExpiresAt, time.Minute)
	assert.Equal(t, "cashier@shop.in", view.Email)
}

func TestLogin_ExpiredToken(t *testing.T) {
	token, err := jwt.Sign("u-1", "USER", "s3cret", -time.Minute)
	require.NoError(t, err)
	s := newTestService(t, &backendtest.Fake{Auth: &types.AuthResponse{Token: token, Role: "USER"}}, "s3cret")

	r := s.Login(&LoginRequest{Email: "cashier@shop.in", Password: "secret", TerminalID: "t-1"})
	assert.Equal(t, http.StatusUnauthorized, r.Code)
}

func TestLogin_Failures(t *testing.T) {
	s := newTestService(t, &backendtest.Fake{LoginErr: backendtest.Status(http.StatusUnauthorized)}, "")
	r := s.Login(&LoginRequest{Email: "cashier@shop.in", Password: "wrong", TerminalID: "t-1"})
	assert.Equal(t, http.StatusUnauthorized, r.Code)
	assert.Equal(t, "Invalid email or password", r.Message)

	s = newTestService(t, &backendtest.Fake{LoginErr: backendtest.Status(http.StatusServiceUnavailable)}, "")
	r = s.Login(&LoginRequest{Email: "cashier@shop.in", Password: "secret", TerminalID: "t-1"})
	assert.Equal(t, http.StatusBadGateway, r.Code)

	r = s.Login(&LoginRequest{Email: "not-an-email", Password: "secret"})
	assert.Equal(t, http.StatusBadRequest, r.Code)

	s = newTestService(t, &backendtest.Fake{Auth: &types.AuthResponse{Token: "t", Role: "OWNER"}}, "")
	r = s.Login(&LoginRequest{Email: "cashier@shop.in", Password: "secret", TerminalID: "t-1"})
	assert.Equal(t, http.StatusBadGateway, r.Code)
}

func TestLoad_Unknown(t *testing.T) {
	s := newTestService(t, menu(), "")
	_, err := s.Load("nope")
	assert.ErrorIs(t, err, middleware.ErrNoSession)

	r := s.Restore("nope")
	assert.Equal(t, http.StatusUnauthorized, r.Code)
}

func TestRestore_WarmsCatalog(t *testing.T) {
	fake := menu()
	s := newTestService(t, fake, "")
	view := login(t, s)

	r := s.Restore(view.SessionID)
	require.Equal(t, http.StatusOK, r.Code)
	restored := r.Data.(*SessionView)
	assert.Equal(t, "t-1", restored.TerminalID)
	assert.NotNil(t, restored.Catalog)
	assert.Equal(t, 1, fake.CallCount("ListItems"))
}

func TestCartOperations(t *testing.T) {
	s := newTestService(t, menu(), "")
	id := login(t, s).SessionID

	s.AddToCart(id, &AddToCartRequest{ItemID: "i-1"})
	r := s.AddToCart(id, &AddToCartRequest{ItemID: "i-1"})
	require.Equal(t, http.StatusOK, r.Code)
	assert.Equal(t, "Tea added to cart", r.Message)

	view := r.Data.(cart.View)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.InDelta(t, 42.0, view.GrandTotal, 1e-9)

	r = s.AddToCart(id, &AddToCartRequest{ItemID: "missing"})
	assert.Equal(t, http.StatusNotFound, r.Code)

	r = s.SetQuantity(id, "i-1", &SetQuantityRequest{Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, r.Code)

	r = s.SetQuantity(id, "i-1", &SetQuantityRequest{Quantity: 5})
	assert.Equal(t, 5, r.Data.(cart.View).Items[0].Quantity)

	s.AddToCart(id, &AddToCartRequest{ItemID: "i-2"})
	r = s.RemoveFromCart(id, "i-1")
	view = r.Data.(cart.View)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Coffee", view.Items[0].Name)

	r = s.ClearCart(id)
	assert.Empty(t, r.Data.(cart.View).Items)

	r = s.ViewCart(id)
	assert.Equal(t, http.StatusOK, r.Code)
}

func TestMutate_Serialized(t *testing.T) {
	s := newTestService(t, menu(), "")
	id := login(t, s).SessionID

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Mutate(id, func(session *types.Session) error {
				session.EnsureCart().Add(cart.Item{ItemID: "i-1", Name: "Tea", Price: 20})
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	session, err := s.Load(id)
	require.NoError(t, err)
	assert.Equal(t, 10, session.Cart.Lines()[0].Quantity)
}

func TestLogout(t *testing.T) {
	s := newTestService(t, menu(), "")
	id := login(t, s).SessionID

	r := s.Logout(id)
	assert.Equal(t, http.StatusNoContent, r.Code)

	_, err := s.Load(id)
	assert.ErrorIs(t, err, middleware.ErrNoSession)
}
