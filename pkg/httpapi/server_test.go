package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/StricklySoft/stricklysoft-userservice/internal/testutil"
	"github.com/StricklySoft/stricklysoft-userservice/pkg/auth"
	sserr "github.com/StricklySoft/stricklysoft-userservice/pkg/errors"
)

// fakeStore is an in-memory auth.UserStore backing the end-to-end
// tests.
type fakeStore struct {
	mu    sync.Mutex
	users map[string]*auth.Principal
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*auth.Principal)}
}

func (s *fakeStore) ByEmail(_ context.Context, email string) (*auth.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.users[email]; ok {
		return p, nil
	}
	return nil, sserr.Newf(sserr.CodeNotFoundUser, "no user registered under %s", email)
}

func (s *fakeStore) Create(_ context.Context, p *auth.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[p.Email]; ok {
		return sserr.Newf(sserr.CodeConflictAlreadyExists, "user %s already exists", p.Email)
	}
	s.users[p.Email] = p
	return nil
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	codec, err := auth.NewTokenCodec(testutil.TestSigningSecret, time.Hour)
	require.NoError(t, err)

	store := newFakeStore()
	svc := auth.NewService(store, codec, auth.NewPasswordHasher(bcrypt.MinCost))
	return NewServer(svc).Handler(codec, store)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func registerBody() map[string]any {
	return map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"password":  "s3cret",
		"role":      "MEMBER",
	}
}

func accessToken(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	accessToken(t, rec)
}

func TestRegisterEndpointRejectsBadPayloads(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing email", func(b map[string]any) { delete(b, "email") }},
		{"missing password", func(b map[string]any) { delete(b, "password") }},
		{"malformed email", func(b map[string]any) { b["email"] = "nope" }},
		{"unknown role", func(b map[string]any) { b["role"] = "SUPERUSER" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			body := registerBody()
			tt.mutate(body)
			rec := doJSON(t, handler, http.MethodPost, "/auth/register", body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegisterEndpointRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterEndpointDuplicateEmail(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/auth/register", registerBody(), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthenticateEndpoint(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	rec := doJSON(t, handler, http.MethodPost, "/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/auth/authenticate", map[string]any{
		"email":    "ada@example.com",
		"password": "s3cret",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	accessToken(t, rec)
}

func TestAuthenticateEndpointGenericFailure(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	rec := doJSON(t, handler, http.MethodPost, "/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown email", map[string]any{"email": "nobody@example.com", "password": "s3cret"}},
		{"wrong password", map[string]any{"email": "ada@example.com", "password": "wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := doJSON(t, handler, http.MethodPost, "/auth/authenticate", tt.body, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Invalid username or password",
				strings.TrimRight(rec.Body.String(), "\n"))
		})
	}
}

func TestManagementRequiresToken(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/management", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, auth.MsgUnauthorized, strings.TrimRight(rec.Body.String(), "\n"))

	rec = doJSON(t, handler, http.MethodGet, "/management", nil, map[string]string{
		"Authorization": "Bearer not.a.jwt",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, auth.MsgUnauthorized, strings.TrimRight(rec.Body.String(), "\n"))
}

func TestManagementWithToken(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	rec := doJSON(t, handler, http.MethodPost, "/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	token := accessToken(t, rec)

	bearer := map[string]string{"Authorization": "Bearer " + token}

	rec = doJSON(t, handler, http.MethodGet, "/management", nil, bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Secured Endpoint :: GET - Member controller", rec.Body.String())

	rec = doJSON(t, handler, http.MethodPost, "/management", nil, bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "POST:: management controller", rec.Body.String())
}

func TestAuthenticateBypassesTokenFilter(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	rec := doJSON(t, handler, http.MethodPost, "/auth/register", registerBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// A garbage Authorization header on a login request is ignored; the
	// endpoint authenticates by body credentials alone.
	rec = doJSON(t, handler, http.MethodPost, "/auth/authenticate", map[string]any{
		"email":    "ada@example.com",
		"password": "s3cret",
	}, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusOK, rec.Code)
}
