package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/baasproxy/internal/api/http/context"
	"github.com/dtroode/baasproxy/internal/mocks"
	"github.com/dtroode/baasproxy/internal/model"
	"github.com/dtroode/baasproxy/internal/service"
	"github.com/dtroode/baasproxy/internal/storage/sqlite"
	"github.com/dtroode/baasproxy/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const goodToken = "good-token"

type testEnv struct {
	engine   *gin.Engine
	identity *mocks.IdentityProvider
	limiter  *mocks.SignInLimiter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "docs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	lg := testutil.MakeNoopLogger()
	identity := mocks.NewIdentityProvider(t)
	limiter := mocks.NewSignInLimiter(t)
	limiter.On("Allow", mock.Anything, mock.Anything).Return(true, time.Duration(0), nil).Maybe()

	tokens := mocks.NewTokenService(t)
	tokens.On("GetUserID", mock.Anything, goodToken).Return("uid-1", nil).Maybe()
	tokens.On("GetUserID", mock.Anything, mock.Anything).Return("", model.ErrUnauthorized).Maybe()

	r := New(
		service.NewAuth(identity, store, "users", lg),
		service.NewProfile(identity, store, "users", lg),
		service.NewDocuments(store, "items", nil, lg),
		tokens,
		limiter,
		httpctx.NewManager(),
		lg,
	)

	return &testEnv{engine: r.Register(), identity: identity, limiter: limiter}
}

func (e *testEnv) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	return out
}

func TestRouter_Healthz(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/healthz", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	e := newTestEnv(t)

	for _, tc := range []struct{ method, target, token string }{
		{http.MethodGet, "/api/user/profile", ""},
		{http.MethodPut, "/api/user/profile", "forged"},
		{http.MethodGet, "/api/data/crud", ""},
		{http.MethodPost, "/api/data/crud", "forged"},
		{http.MethodDelete, "/api/data/crud?id=1", ""},
	} {
		w := e.do(t, tc.method, tc.target, tc.token, `{}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.target)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	}
}

func TestRouter_CreateThenGet(t *testing.T) {
	e := newTestEnv(t)

	created := e.do(t, http.MethodPost, "/api/data/crud?collection=notes", goodToken, `{"title":"hi","n":1,"tags":["a"]}`)
	require.Equal(t, http.StatusCreated, created.Code)
	body := decode(t, created)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)

	got := e.do(t, http.MethodGet, "/api/data/crud?collection=notes&id="+id, goodToken, "")
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, body, decode(t, got))

	list := e.do(t, http.MethodGet, "/api/data/crud?collection=notes", goodToken, "")
	require.Equal(t, http.StatusOK, list.Code)
	var docs []map[string]any
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &docs))
	assert.Equal(t, []map[string]any{body}, docs)
}

func TestRouter_UpdateMergesTopLevelKeys(t *testing.T) {
	e := newTestEnv(t)

	created := decode(t, e.do(t, http.MethodPost, "/api/data/crud", goodToken, `{"title":"hi","done":false}`))
	id := created["id"].(string)

	w := e.do(t, http.MethodPut, "/api/data/crud?id="+id, goodToken, `{"done":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+id+`","done":true}`, w.Body.String())

	got := decode(t, e.do(t, http.MethodGet, "/api/data/crud?id="+id, goodToken, ""))
	assert.Equal(t, map[string]any{"id": id, "title": "hi", "done": true}, got)

	missing := e.do(t, http.MethodPut, "/api/data/crud?id=nope", goodToken, `{"done":true}`)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestRouter_DeleteNonexistentSucceeds(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodDelete, "/api/data/crud?id=nonexistent", goodToken, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Document deleted successfully"}`, w.Body.String())
}

func TestRouter_EmptyCollectionListsEmptyArray(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/api/data/crud?collection=empty", goodToken, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_SignInMissingFieldsSkipsProvider(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/auth/signin", "", `{"email":"a@b.c"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Email and password are required"}`, w.Body.String())
	e.identity.AssertNotCalled(t, "SignInWithPassword", mock.Anything, mock.Anything)
}

func TestRouter_SignUpExistingEmail(t *testing.T) {
	e := newTestEnv(t)
	e.identity.On("CreateAccount", mock.Anything, model.Credential{Email: "taken@b.c", Password: "secret1"}).
		Return(model.Session{}, model.ErrEmailInUse)

	w := e.do(t, http.MethodPost, "/api/auth/signup", "", `{"email":"taken@b.c","password":"secret1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Email is already in use"}`, w.Body.String())
}

func TestRouter_SignInRateLimited(t *testing.T) {
	e := newTestEnv(t)
	e.limiter.ExpectedCalls = nil
	e.limiter.On("Allow", mock.Anything, mock.Anything).Return(false, 30*time.Second, nil)

	w := e.do(t, http.MethodPost, "/api/auth/signin", "", `{"email":"a@b.c","password":"secret1"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
}

func TestRouter_ProfilePhotoOnlyKeepsName(t *testing.T) {
	e := newTestEnv(t)
	account := model.Identity{ID: "uid-1", Email: "a@b.c", DisplayName: "Ann"}
	e.identity.On("UpdateDisplayName", mock.Anything, goodToken, "Ann").Return(nil).Once()
	e.identity.On("GetAccount", mock.Anything, goodToken).Return(account, nil)

	w := e.do(t, http.MethodPut, "/api/user/profile", goodToken, `{"name":"Ann"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Profile updated successfully","id":"uid-1","email":"a@b.c","name":"Ann"}`, w.Body.String())

	w = e.do(t, http.MethodPut, "/api/user/profile", goodToken, `{"photoURL":"http://p"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/api/user/profile", goodToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"uid-1","email":"a@b.c","emailVerified":false,"displayName":"Ann","name":"Ann"}`, w.Body.String())
}

type countingLimiter struct {
	mu    sync.Mutex
	limit int
	keys  map[string]int
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.keys[key]++
	return l.keys[key] <= l.limit, time.Minute, nil
}

func newLimitedEngine(t *testing.T, proxies []string) (*gin.Engine, *countingLimiter) {
	t.Helper()

	lg := testutil.MakeNoopLogger()
	limiter := &countingLimiter{limit: 1, keys: map[string]int{}}
	r := New(
		service.NewAuth(mocks.NewIdentityProvider(t), nil, "users", lg),
		nil,
		nil,
		mocks.NewTokenService(t),
		limiter,
		httpctx.NewManager(),
		lg,
	).WithTrustedProxies(proxies)

	return r.Register(), limiter
}

func signInFrom(engine *gin.Engine, peer, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = peer + ":40000"
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w.Code
}

func TestRouter_SignInRateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	engine, limiter := newLimitedEngine(t, nil)

	var statuses []int
	for _, ip := range []string{"10.0.0.0", "10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4"} {
		statuses = append(statuses, signInFrom(engine, "203.0.113.9", ip))
	}

	assert.Equal(t, http.StatusBadRequest, statuses[0])
	for _, status := range statuses[1:] {
		assert.Equal(t, http.StatusTooManyRequests, status)
	}
	assert.Equal(t, map[string]int{"203.0.113.9": 5}, limiter.keys)
}

func TestRouter_SignInRateLimitHonorsTrustedProxy(t *testing.T) {
	engine, limiter := newLimitedEngine(t, []string{"203.0.113.0/24"})

	assert.Equal(t, http.StatusBadRequest, signInFrom(engine, "203.0.113.9", "10.0.0.1"))
	assert.Equal(t, http.StatusBadRequest, signInFrom(engine, "203.0.113.9", "10.0.0.2"))
	assert.Equal(t, http.StatusTooManyRequests, signInFrom(engine, "203.0.113.9", "10.0.0.2"))
	assert.Equal(t, map[string]int{"10.0.0.1": 1, "10.0.0.2": 2}, limiter.keys)
}

func TestRouter_OversizedBodyRejected(t *testing.T) {
	e := newTestEnv(t)

	body := `{"blob":"` + strings.Repeat("x", defaultMaxBodyBytes) + `"}`
	w := e.do(t, http.MethodPost, "/api/data/crud?collection=notes", goodToken, body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":"Request body too large"}`, w.Body.String())
}
