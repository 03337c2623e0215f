package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("unit-test-secret")

func mustToken(t *testing.T, role string, expiry time.Duration) string {
	t.Helper()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "gate-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newTestMiddleware() *Middleware {
	policy := NewDefaultPolicy([]string{"/healthz"}, []string{"/metrics"})
	return NewMiddleware(testSecret, policy)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_MissingToken(t *testing.T) {
	handler := newTestMiddleware().Wrap(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status mismatch: got=%d want=%d", rec.Code, http.StatusUnauthorized)
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	handler := newTestMiddleware().Wrap(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, "viewer", -time.Minute))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status mismatch: got=%d want=%d", rec.Code, http.StatusUnauthorized)
	}
}

func TestMiddleware_RoleEnforcement(t *testing.T) {
	handler := newTestMiddleware().Wrap(okHandler())

	cases := []struct {
		name   string
		method string
		path   string
		role   string
		want   int
	}{
		{"viewer reads status", http.MethodGet, "/api/v1/status", "viewer", http.StatusOK},
		{"viewer cannot admit", http.MethodPost, "/api/v1/vehicles/entry", "viewer", http.StatusForbidden},
		{"operator admits", http.MethodPost, "/api/v1/vehicles/entry", "operator", http.StatusOK},
		{"operator releases", http.MethodPost, "/api/v1/slots/release", "operator", http.StatusOK},
		{"operator generates report", http.MethodPost, "/api/v1/reports/daily", "operator", http.StatusOK},
		{"operator cannot export", http.MethodGet, "/api/v1/reports/daily/export.pdf", "operator", http.StatusForbidden},
		{"admin exports", http.MethodGet, "/api/v1/reports/daily/export.xlsx", "admin", http.StatusOK},
		{"viewer lists reports", http.MethodGet, "/api/v1/reports", "viewer", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("Authorization", "Bearer "+mustToken(t, tc.role, time.Hour))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status mismatch: got=%d want=%d", rec.Code, tc.want)
			}
		})
	}
}

func TestMiddleware_ExemptPaths(t *testing.T) {
	handler := newTestMiddleware().Wrap(okHandler())

	for _, path := range []string{"/healthz", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status mismatch: got=%d want=%d", path, rec.Code, http.StatusOK)
		}
	}
}

func TestMiddleware_InvalidRoleClaim(t *testing.T) {
	handler := newTestMiddleware().Wrap(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, "superuser", time.Hour))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status mismatch: got=%d want=%d", rec.Code, http.StatusUnauthorized)
	}
}

func TestMiddleware_WrongSecret(t *testing.T) {
	policy := NewDefaultPolicy(nil, nil)
	handler := NewMiddleware([]byte("other-secret"), policy).Wrap(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, "viewer", time.Hour))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status mismatch: got=%d want=%d", rec.Code, http.StatusUnauthorized)
	}
}
