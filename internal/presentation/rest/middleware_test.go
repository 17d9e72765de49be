package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/auth"
)

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret-key",
		Issuer:     "test",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	jwtSvc := newTestJWTService(t)
	mw := AuthMiddleware(jwtSvc, []string{"/healthz"})
	handler := mw(okHandler())

	t.Run("skip path bypasses auth", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/loans", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/loans", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		token, err := jwtSvc.GenerateToken(uuid.New(), []string{auth.RoleBorrower})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/loans", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	jwtSvc := newTestJWTService(t)
	handler := Chain(okHandler(),
		AuthMiddleware(jwtSvc, nil),
		RequireRole(auth.RoleLoanOfficer),
	)

	request := func(t *testing.T, roles []string) *httptest.ResponseRecorder {
		t.Helper()
		token, err := jwtSvc.GenerateToken(uuid.New(), roles)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/loans/x/approve", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, request(t, []string{auth.RoleLoanOfficer}).Code)
	assert.Equal(t, http.StatusForbidden, request(t, []string{auth.RoleBorrower}).Code)
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(5)

	for i := 0; i < 5; i++ {
		require.True(t, rl.Allow(), "request %d should have been allowed", i+1)
	}
	assert.False(t, rl.Allow(), "burst exhausted")
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(NewRateLimiter(1))(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domainerr.Validation("bad input"), http.StatusBadRequest},
		{domainerr.NotFound("missing"), http.StatusNotFound},
		{domainerr.Conflict("stale"), http.StatusConflict},
		{domainerr.Internal("boom", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}
