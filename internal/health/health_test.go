package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) result {
	t.Helper()
	var res result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res
}

func TestHealthz_AlwaysOK(t *testing.T) {
	t.Parallel()
	h := New(Checker{Name: "failing", Check: func(context.Context) error { return errors.New("down") }})

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if res := decode(t, rec); res.Status != "ok" {
		t.Errorf("status field = %q", res.Status)
	}
}

func TestReadyz_AllPass(t *testing.T) {
	t.Parallel()
	h := New(
		Checker{Name: "credentials", Check: func(context.Context) error { return nil }},
		Checker{Name: "other", Check: func(context.Context) error { return nil }},
	)

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	res := decode(t, rec)
	if res.Checks["credentials"] != "ok" || res.Checks["other"] != "ok" {
		t.Errorf("checks = %v", res.Checks)
	}
}

func TestReadyz_FailurePropagates(t *testing.T) {
	t.Parallel()
	h := New(
		Checker{Name: "credentials", Check: func(context.Context) error { return errors.New("not configured") }},
		Checker{Name: "other", Check: func(context.Context) error { return nil }},
	)

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	res := decode(t, rec)
	if res.Status != "fail" {
		t.Errorf("status field = %q", res.Status)
	}
	if res.Checks["credentials"] != "fail: not configured" {
		t.Errorf("checks = %v", res.Checks)
	}
}

func TestRegister_Routes(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	New().Register(mux)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}
