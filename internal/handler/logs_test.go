package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angkringan-pos/admin-api/internal/handler"
	"github.com/angkringan-pos/admin-api/internal/model"
)

// --- Mock upstream ---

type mockLogAPI struct {
	logs    []model.LogEntry
	listErr error
}

func (m *mockLogAPI) ListLogs(_ context.Context) ([]model.LogEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.LogEntry, len(m.logs))
	copy(out, m.logs)
	return out, nil
}

// --- Helpers ---

func setupLogRouter(api *mockLogAPI) *chi.Mux {
	h := handler.NewLogHandler(api)
	r := chi.NewRouter()
	r.Route("/screens/logs", h.RegisterRoutes)
	return r
}

func seedLogs() []model.LogEntry {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	return []model.LogEntry{
		{ID: "l1", Action: "create", Entity: "menu", EntityID: "m1", User: "Andi Wijaya", Details: "created Nasi Goreng", Timestamp: base},
		{ID: "l2", Action: "update", Entity: "promo", EntityID: "p1", User: "Budi Santoso", Details: "toggled HEMAT10", Timestamp: base.Add(time.Hour)},
		{ID: "l3", Action: "delete", Entity: "menu", EntityID: "m2", User: "Andi Wijaya", Details: "deleted Mie Goreng", Timestamp: base.Add(2 * time.Hour)},
	}
}

// --- Tests ---

func TestLogList_DefaultsToNewestFirst(t *testing.T) {
	api := &mockLogAPI{logs: seedLogs()}
	router := setupLogRouter(api)

	rr := doRequest(t, router, "GET", "/screens/logs", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}

	resp := decodePage(t, rr)
	if resp.Items[0]["_id"] != "l3" || resp.Items[2]["_id"] != "l1" {
		t.Errorf("expected newest first, got %v, %v, %v",
			resp.Items[0]["_id"], resp.Items[1]["_id"], resp.Items[2]["_id"])
	}
}

func TestLogList_ExplicitSortAscending(t *testing.T) {
	api := &mockLogAPI{logs: seedLogs()}
	router := setupLogRouter(api)

	rr := doRequest(t, router, "GET", "/screens/logs?sort=timestamp&dir=asc", nil)
	resp := decodePage(t, rr)

	if resp.Items[0]["_id"] != "l1" {
		t.Errorf("expected oldest first, got %v", resp.Items[0]["_id"])
	}
}

func TestLogList_FilterByEntity(t *testing.T) {
	api := &mockLogAPI{logs: seedLogs()}
	router := setupLogRouter(api)

	rr := doRequest(t, router, "GET", "/screens/logs?filter=menu", nil)
	resp := decodePage(t, rr)

	if resp.Total != 2 {
		t.Errorf("total: got %d, want 2 menu entries", resp.Total)
	}
}

func TestLogList_SearchByUserOrDetails(t *testing.T) {
	api := &mockLogAPI{logs: seedLogs()}
	router := setupLogRouter(api)

	rr := doRequest(t, router, "GET", "/screens/logs?search=budi", nil)
	resp := decodePage(t, rr)

	if resp.Total != 1 || resp.Items[0]["_id"] != "l2" {
		t.Errorf("unexpected search result: %+v", resp.Items)
	}
}

func TestLogList_FetchFailureServesStale(t *testing.T) {
	api := &mockLogAPI{logs: seedLogs()}
	router := setupLogRouter(api)

	doRequest(t, router, "GET", "/screens/logs", nil)
	api.listErr = errors.New("upstream down")

	rr := doRequest(t, router, "GET", "/screens/logs", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}

	resp := decodePage(t, rr)
	if resp.Total != 3 {
		t.Errorf("expected stale snapshot served, got total %d", resp.Total)
	}
}
