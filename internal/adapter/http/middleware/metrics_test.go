package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/accounts", "/accounts"},
		{"/accounts/01HXYZACCOUNT", "/accounts/:id"},
		{"/accounts/01HXYZACCOUNT/balance", "/accounts/:id/balance"},
		{"/accounts/01HXYZACCOUNT/transactions", "/accounts/:id/transactions"},
		{"/accounts/01HXYZACCOUNT/transfer", "/accounts/:id/transfer"},
		{"/ledger/consistency", "/ledger/consistency"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.expected {
			t.Fatalf("normalizePath(%q) = %q, expected %q", tt.path, got, tt.expected)
		}
	}
}

func TestMetricsMiddlewarePassesThrough(t *testing.T) {
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/balance", nil)

	Metrics(next).ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected wrapped handler to be called")
	}
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected status to pass through, got %d", rec.Code)
	}
}
