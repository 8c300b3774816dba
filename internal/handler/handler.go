// Package handler serves one endpoint group per management screen. Every
// screen follows the same shape: re-fetch the collection from the upstream
// API, derive the visible window through the query engine, and route
// mutations through the form machine back to the upstream.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/angkringan-pos/admin-api/internal/form"
	"github.com/angkringan-pos/admin-api/internal/query"
	"github.com/angkringan-pos/admin-api/internal/session"
	"github.com/angkringan-pos/admin-api/internal/upstream"
)

// pageResponse is the envelope every list endpoint returns.
type pageResponse[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// parseCriteria reads the screen's view state from query params. Mutators
// are applied before SetPage so an explicit page always wins, matching the
// page-reset-on-filter-change policy the criteria enforce.
func parseCriteria(r *http.Request) query.Criteria {
	c := query.NewCriteria()
	q := r.URL.Query()

	if v := q.Get("filter"); v != "" {
		c.SetFilter(v)
	}
	if v := q.Get("search"); v != "" {
		c.SetSearch(v)
	}
	if v := q.Get("sort"); v != "" {
		dir := query.Asc
		if q.Get("dir") == string(query.Desc) {
			dir = query.Desc
		}
		c.SetSort(v, dir)
	}
	if v := q.Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.SetPageSize(n)
		}
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SetPage(n)
		}
	}
	return c
}

// submitCreate drives a create dialog end to end: open on a blank
// template, apply the request's field edits to the draft, submit.
func submitCreate[T any](ctx context.Context, blank T, clone func(T) T, apply func(*T), send form.SubmitFunc[T]) (T, error) {
	m := form.NewMachine(clone)
	m.OpenCreate(blank)
	m.Update(apply)
	return m.Submit(ctx, send)
}

// submitEdit drives an edit dialog: open on a deep copy of the selected
// record, apply the request's field edits, submit scoped to the id.
func submitEdit[T any](ctx context.Context, id string, record T, clone func(T) T, apply func(*T), send form.SubmitFunc[T]) (T, error) {
	m := form.NewMachine(clone)
	m.OpenEdit(id, record)
	m.Update(apply)
	return m.Submit(ctx, send)
}

func findByID[T any](records []T, id string, getID func(T) string) (T, bool) {
	for _, rec := range records {
		if getID(rec) == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// writeUpstreamError maps a failed upstream call to a response. The draft
// was preserved by the form machine; the client may simply retry. The log
// line carries the session id so a failure can be traced to whoever was
// editing.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error, what string) {
	if errors.Is(err, upstream.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": what + " not found"})
		return
	}
	if s := session.FromContext(r.Context()); s.Active() {
		log.Printf("ERROR: %s (session %s): %v", what, s.ID, err)
	} else {
		log.Printf("ERROR: %s: %v", what, err)
	}
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream error"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
