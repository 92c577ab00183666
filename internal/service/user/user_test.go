package user

import (
	"context"
	"net/http"
	"testing"

	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/backend"
	"pos-terminal/internal/pkg/backend/backendtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	fake := &backendtest.Fake{Users: []types.User{{UserID: "u-1", Name: "Ravi", Email: "ravi@shop.in", Role: "USER"}}}
	svc := NewService(context.Background(), fake)

	res := svc.List("token")

	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, res.Data, 1)
}

func TestList_BackendDown(t *testing.T) {
	fake := &backendtest.Fake{ListErr: &backend.APIError{StatusCode: http.StatusInternalServerError}}

	res := NewService(context.Background(), fake).List("token")

	assert.Equal(t, http.StatusBadGateway, res.Code)
}

func TestCreate_DefaultsRoleAndNormalizes(t *testing.T) {
	fake := &backendtest.Fake{}
	svc := NewService(context.Background(), fake)

	res := svc.Create("token", &types.UserRequest{Name: " Ravi ", Email: "Ravi@Shop.IN ", Password: "secret1"})

	require.Equal(t, http.StatusCreated, res.Code, res.Message)
	user := res.Data.(*types.User)
	assert.Equal(t, "Ravi", user.Name)
	assert.Equal(t, "ravi@shop.in", user.Email)
	assert.Equal(t, "USER", user.Role)
}

func TestCreate_Validation(t *testing.T) {
	cases := map[string]*types.UserRequest{
		"missing name":   {Email: "a@b.in", Password: "secret1"},
		"bad email":      {Name: "A", Email: "nope", Password: "secret1"},
		"short password": {Name: "A", Email: "a@b.in", Password: "123"},
		"unknown role":   {Name: "A", Email: "a@b.in", Password: "secret1", Role: "owner"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			fake := &backendtest.Fake{}

			res := NewService(context.Background(), fake).Create("token", req)

			assert.Equal(t, http.StatusBadRequest, res.Code)
			assert.Equal(t, 0, fake.CallCount("CreateUser"))
		})
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	fake := &backendtest.Fake{WriteErr: &backend.APIError{StatusCode: http.StatusConflict, Message: "Email already exists"}}

	res := NewService(context.Background(), fake).Create("token", &types.UserRequest{Name: "A", Email: "a@b.in", Password: "secret1", Role: "admin"})

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Email already exists", res.Message)
}

func TestDelete(t *testing.T) {
	fake := &backendtest.Fake{}
	svc := NewService(context.Background(), fake)

	assert.Equal(t, http.StatusNoContent, svc.Delete("token", "u-1").Code)
	assert.Equal(t, http.StatusBadRequest, svc.Delete("token", " ").Code)
	assert.Equal(t, 1, fake.CallCount("DeleteUser"))
}
