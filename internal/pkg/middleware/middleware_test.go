package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pos-terminal/internal/common/enum"
	types "pos-terminal/internal/common/type"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loaderMock struct {
	sessions map[string]*types.Session
	err      error
}

func (l loaderMock) Load(id string) (*types.Session, error) {
	if l.err != nil {
		return nil, l.err
	}
	s, ok := l.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

func newEngine(loader SessionLoader, roles ...enum.RoleEnum) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(ResponseInit(true))
	g := e.Group("/", SessionMiddleware(loader))
	if len(roles) > 0 {
		g.Use(RequireRole(roles...))
	}
	g.GET("/ping", func(c *gin.Context) {
		s, _ := GetSession(c)
		c.String(http.StatusOK, s.ID)
	})
	return e
}

func doGet(e *gin.Engine, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestSessionMiddleware(t *testing.T) {
	loader := loaderMock{sessions: map[string]*types.Session{
		"s1": {ID: "s1", Auth: types.SessionAuth{Token: "t", Role: enum.ROLE_USER}},
		"s2": {ID: "s2"},
	}}
	e := newEngine(loader)

	w := doGet(e, "s1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s1", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, doGet(e, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(e, "nope").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(e, "s2").Code)
}

func TestSessionMiddleware_LoaderFailure(t *testing.T) {
	e := newEngine(loaderMock{err: errors.New("redis down")})

	w := doGet(e, "s1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body types.ResponseAPI
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "failed to load session", body.Message)
	assert.Empty(t, body.Error)
}

func TestRequireRole(t *testing.T) {
	loader := loaderMock{sessions: map[string]*types.Session{
		"admin":   {ID: "admin", Auth: types.SessionAuth{Token: "t", Role: enum.ROLE_ADMIN}},
		"cashier": {ID: "cashier", Auth: types.SessionAuth{Token: "t", Role: enum.ROLE_USER}},
	}}
	e := newEngine(loader, enum.ROLE_ADMIN)

	assert.Equal(t, http.StatusOK, doGet(e, "admin").Code)
	assert.Equal(t, http.StatusForbidden, doGet(e, "cashier").Code)
}
