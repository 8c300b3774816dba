package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angkringan-pos/admin-api/internal/model"
	"github.com/angkringan-pos/admin-api/internal/query"
	"github.com/angkringan-pos/admin-api/internal/store"
)

// LogAPI defines the upstream calls needed by the audit log screen.
// Satisfied by *upstream.Client; narrow interface for testability.
type LogAPI interface {
	ListLogs(ctx context.Context) ([]model.LogEntry, error)
}

// LogHandler serves the read-only audit log screen. Entries are written by
// the upstream as a side effect of mutations; this screen only views them.
type LogHandler struct {
	api   LogAPI
	store *store.Store[model.LogEntry]
}

func NewLogHandler(api LogAPI) *LogHandler {
	return &LogHandler{api: api, store: store.New[model.LogEntry]()}
}

func (h *LogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
}

var logSpec = query.Spec[model.LogEntry]{
	SearchFields: []func(model.LogEntry) string{
		func(l model.LogEntry) string { return l.User },
		func(l model.LogEntry) string { return l.Details },
	},
	FilterValue: func(l model.LogEntry) string { return l.Entity },
	SortKeys: map[string]func(a, b model.LogEntry) int{
		"timestamp": func(a, b model.LogEntry) int { return a.Timestamp.Compare(b.Timestamp) },
	},
}

type logResponse struct {
	ID           string `json:"_id"`
	Action       string `json:"action"`
	Entity       string `json:"entity"`
	EntityID     string `json:"entityId"`
	User         string `json:"user"`
	Details      string `json:"details"`
	Timestamp    string `json:"timestamp"`
	PreviousData string `json:"previousData,omitempty"`
	NewData      string `json:"newData,omitempty"`
}

func toLogResponse(l model.LogEntry) logResponse {
	return logResponse{
		ID:           l.ID,
		Action:       l.Action,
		Entity:       l.Entity,
		EntityID:     l.EntityID,
		User:         l.User,
		Details:      l.Details,
		Timestamp:    l.Timestamp.Format("2006-01-02 15:04:05"),
		PreviousData: string(l.PreviousData),
		NewData:      string(l.NewData),
	}
}

func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Refresh(r.Context(), h.api.ListLogs); err != nil {
		log.Printf("ERROR: fetch logs: %v", err)
	}

	c := parseCriteria(r)
	if c.SortField == "" {
		// Newest entries first unless the caller asked otherwise.
		c.SetSort("timestamp", query.Desc)
	}
	filtered := query.Filter(h.store.Snapshot(), c, logSpec)
	window := query.Paginate(filtered, c.Page, c.PageSize)

	items := make([]logResponse, len(window.Visible))
	for i, l := range window.Visible {
		items[i] = toLogResponse(l)
	}

	writeJSON(w, http.StatusOK, pageResponse[logResponse]{
		Items:    items,
		Total:    window.Total,
		Page:     c.Page,
		PageSize: c.PageSize,
	})
}
