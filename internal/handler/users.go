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

// UserAPI defines the upstream calls needed by the user screen.
// Satisfied by *upstream.Client; narrow interface for testability.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	UpdateUser(ctx context.Context, id string, u model.User) (model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserHandler serves the manage-users screen.
type UserHandler struct {
	api   UserAPI
	store *store.Store[model.User]
}

func NewUserHandler(api UserAPI) *UserHandler {
	return &UserHandler{api: api, store: store.New[model.User]()}
}

// RegisterRoutes registers the screen's endpoints on the given Chi router.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// userSpec configures the filter engine for this screen: search over
// fullname and email, discriminate on the collapsed role.
var userSpec = query.Spec[model.User]{
	SearchFields: []func(model.User) string{
		func(u model.User) string { return u.Fullname },
		func(u model.User) string { return u.Email },
	},
	FilterValue: func(u model.User) string { return u.Role() },
}

// --- Request / Response types ---

type userRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

type userResponse struct {
	ID        string    `json:"_id"`
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsAdmin   bool      `json:"isAdmin"`
	IsManager bool      `json:"isManager"`
	Date      time.Time `json:"date"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Fullname:  u.Fullname,
		Email:     u.Email,
		Role:      u.Role(),
		IsAdmin:   u.IsAdmin,
		IsManager: u.IsManager,
		Date:      u.Date,
	}
}

// applyUserRequest copies the request's field edits onto the draft. The
// role select collapses onto the two upstream flags; any other value means
// a plain customer. No further validation: the upstream server is the
// authority on acceptance.
func applyUserRequest(req userRequest) func(*model.User) {
	return func(d *model.User) {
		d.Fullname = req.Fullname
		d.Email = req.Email
		if req.Password != "" {
			d.Password = req.Password
		}
		d.IsAdmin = req.Role == enum.RoleAdmin
		d.IsManager = req.Role == enum.RoleManager
	}
}

// --- Handlers ---

// List re-fetches the collection and returns the derived window. A fetch
// failure is logged and the stale snapshot stays visible.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Refresh(r.Context(), h.api.ListUsers); err != nil {
		log.Printf("ERROR: fetch users: %v", err)
	}

	c := parseCriteria(r)
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

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	blank := model.User{Date: time.Now()}
	created, err := submitCreate(r.Context(), blank, model.CloneUser, applyUserRequest(req),
		func(ctx context.Context, _ string, draft model.User) (model.User, error) {
			return h.api.CreateUser(ctx, draft)
		})
	if err != nil {
		writeUpstreamError(w, r, err, "create user")
		return
	}

	h.refresh(r.Context())
	writeJSON(w, http.StatusCreated, toUserResponse(created))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	existing, ok := findByID(h.store.Snapshot(), id, func(u model.User) string { return u.ID })
	if !ok {
		// Stale snapshot; re-fetch before giving up.
		if err := h.store.Refresh(r.Context(), h.api.ListUsers); err != nil {
			log.Printf("ERROR: fetch users: %v", err)
		}
		if existing, ok = findByID(h.store.Snapshot(), id, func(u model.User) string { return u.ID }); !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
	}

	updated, err := submitEdit(r.Context(), id, existing, model.CloneUser, applyUserRequest(req),
		func(ctx context.Context, id string, draft model.User) (model.User, error) {
			return h.api.UpdateUser(ctx, id, draft)
		})
	if err != nil {
		writeUpstreamError(w, r, err, "update user")
		return
	}

	h.refresh(r.Context())
	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.api.DeleteUser(r.Context(), id); err != nil {
		writeUpstreamError(w, r, err, "delete user")
		return
	}

	h.refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) refresh(ctx context.Context) {
	if err := h.store.Refresh(ctx, h.api.ListUsers); err != nil {
		log.Printf("ERROR: refresh users: %v", err)
	}
}
