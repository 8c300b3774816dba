package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angkringan-pos/admin-api/internal/enum"
	"github.com/angkringan-pos/admin-api/internal/model"
	"github.com/angkringan-pos/admin-api/internal/query"
	"github.com/angkringan-pos/admin-api/internal/store"
)

// CustomerHandler serves the manage-customers screen: the same user
// collection, pinned to records with neither staff flag set.
type CustomerHandler struct {
	api   UserAPI
	store *store.Store[model.User]
}

func NewCustomerHandler(api UserAPI) *CustomerHandler {
	return &CustomerHandler{api: api, store: store.New[model.User]()}
}

func (h *CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type customerRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// List ignores any role filter from the client; this screen always shows
// customers only.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Refresh(r.Context(), h.api.ListUsers); err != nil {
		log.Printf("ERROR: fetch customers: %v", err)
	}

	c := parseCriteria(r)
	// The pin is part of the screen's identity, not a user filter change,
	// so it does not reset the requested page.
	c.Filter = enum.RoleCustomer

	filtered := query.Filter(h.store.Snapshot(), c, userSpec)
	window := query.Paginate(filtered, c.Page, c.PageSize)

	items := make([]userResponse, len(window.Visible))
	for i, u := range window.Visible {
		items[i] = toUserResponse(u)
	}

	writeJSON(w, http.StatusOK, pageResponse[userResponse]{
		Items:    items,
		Total:    window.Total,
		Page:     c.Page,
		PageSize: c.PageSize,
	})
}

// Create adds a customer account; both staff flags stay false.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	blank := model.User{Date: time.Now()}
	created, err := submitCreate(r.Context(), blank, model.CloneUser, applyCustomerRequest(req),
		func(ctx context.Context, _ string, draft model.User) (model.User, error) {
			return h.api.CreateUser(ctx, draft)
		})
	if err != nil {
		writeUpstreamError(w, r, err, "create customer")
		return
	}

	h.refresh(r.Context())
	writeJSON(w, http.StatusCreated, toUserResponse(created))
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	existing, ok := findByID(h.store.Snapshot(), id, func(u model.User) string { return u.ID })
	if !ok {
		if err := h.store.Refresh(r.Context(), h.api.ListUsers); err != nil {
			log.Printf("ERROR: fetch customers: %v", err)
		}
		if existing, ok = findByID(h.store.Snapshot(), id, func(u model.User) string { return u.ID }); !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "customer not found"})
			return
		}
	}

	updated, err := submitEdit(r.Context(), id, existing, model.CloneUser, applyCustomerRequest(req),
		func(ctx context.Context, id string, draft model.User) (model.User, error) {
			return h.api.UpdateUser(ctx, id, draft)
		})
	if err != nil {
		writeUpstreamError(w, r, err, "update customer")
		return
	}

	h.refresh(r.Context())
	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.api.DeleteUser(r.Context(), id); err != nil {
		writeUpstreamError(w, r, err, "delete customer")
		return
	}

	h.refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func applyCustomerRequest(req customerRequest) func(*model.User) {
	return func(d *model.User) {
		d.Fullname = req.Fullname
		d.Email = req.Email
		if req.Password != "" {
			d.Password = req.Password
		}
		d.IsAdmin = false
		d.IsManager = false
	}
}

func (h *CustomerHandler) refresh(ctx context.Context) {
	if err := h.store.Refresh(ctx, h.api.ListUsers); err != nil {
		log.Printf("ERROR: refresh customers: %v", err)
	}
}
