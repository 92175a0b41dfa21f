package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bakery/internal/catalog"
	"bakery/internal/db/mock"
)

func checkHealth(t *testing.T) (int, healthResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	Health(w, req)

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}
	var resp healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Time.IsZero() {
		t.Fatal("expected response time to be populated")
	}
	return w.Code, resp
}

func TestHealthWithoutDatabase(t *testing.T) {
	original := store
	store = nil
	t.Cleanup(func() { store = original })

	code, resp := checkHealth(t)
	if code != http.StatusOK || resp.Status != "ok" || resp.Database != "unconfigured" {
		t.Fatalf("health = %d %+v", code, resp)
	}
}

func TestHealthWithDatabase(t *testing.T) {
	withTestStore(t)

	code, resp := checkHealth(t)
	if code != http.StatusOK || resp.Status != "ok" || resp.Database != "ok" {
		t.Fatalf("health = %d %+v", code, resp)
	}
}

func TestHealthReportsUnreachableDatabase(t *testing.T) {
	database, err := mock.New(context.Background())
	if err != nil {
		t.Fatalf("mock database: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close database: %v", err)
	}
	original := store
	store = catalog.New(database)
	t.Cleanup(func() { store = original })

	code, resp := checkHealth(t)
	if code != http.StatusServiceUnavailable || resp.Status != "degraded" || resp.Database != "unreachable" {
		t.Fatalf("health = %d %+v", code, resp)
	}
}
