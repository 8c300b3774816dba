package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angkringan-pos/admin-api/internal/model"
	"github.com/angkringan-pos/admin-api/internal/query"
	"github.com/angkringan-pos/admin-api/internal/store"
)

// ReviewAPI defines the upstream calls needed by the review screen.
// Satisfied by *upstream.Client; narrow interface for testability.
type ReviewAPI interface {
	ListReviews(ctx context.Context) ([]model.Review, error)
	CreateReview(ctx context.Context, r model.Review) (model.Review, error)
	UpdateReview(ctx context.Context, id string, r model.Review) (model.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

// ReviewHandler serves the manage-review screen.
type ReviewHandler struct {
	api   ReviewAPI
	store *store.Store[model.Review]
}

func NewReviewHandler(api ReviewAPI) *ReviewHandler {
	return &ReviewHandler{api: api, store: store.New[model.Review]()}
}

func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

var reviewSpec = query.Spec[model.Review]{
	SearchFields: []func(model.Review) string{
		func(r model.Review) string { return r.ReviewDesc },
	},
}

// --- Request / Response types ---

type reviewRequest struct {
	AccountID  string `json:"accountId"`
	MenuID     string `json:"menuId"`
	ReviewRate int    `json:"review_rate"`
	ReviewDesc string `json:"review_desc"`
}

// reviewResponse renders deleted accounts and menus as empty placeholders
// instead of failing the whole row.
type reviewResponse struct {
	ID          string `json:"_id"`
	AccountName string `json:"account_name"`
	MenuName    string `json:"menu_name"`
	ReviewRate  int    `json:"review_rate"`
	ReviewDesc  string `json:"review_desc"`
}

func toReviewResponse(r model.Review) reviewResponse {
	resp := reviewResponse{
		ID:         r.ID,
		ReviewRate: r.ReviewRate,
		ReviewDesc: r.ReviewDesc,
	}
	if r.Account != nil {
		resp.AccountName = r.Account.Fullname
	}
	if r.Menu != nil {
		resp.MenuName = r.Menu.MenuName
	}
	return resp
}

// applyReviewRequest sets the reference fields by id; the upstream
// populates the full refs on its side.
func applyReviewRequest(req reviewRequest) func(*model.Review) {
	return func(d *model.Review) {
		if req.AccountID != "" {
			d.Account = &model.AccountRef{ID: req.AccountID}
		}
		if req.MenuID != "" {
			d.Menu = &model.MenuRef{ID: req.MenuID}
		}
		d.ReviewRate = req.ReviewRate
		d.ReviewDesc = req.ReviewDesc
	}
}

// --- Handlers ---

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Refresh(r.Context(), h.api.ListReviews); err != nil {
		log.Printf("ERROR: fetch reviews: %v", err)
	}

	c := parseCriteria(r)
	filtered := query.Filter(h.store.Snapshot(), c, reviewSpec)
	window := query.Paginate(filtered, c.Page, c.PageSize)

	items := make([]reviewResponse, len(window.Visible))
	for i, rev := range window.Visible {
		items[i] = toReviewResponse(rev)
	}

	writeJSON(w, http.StatusOK, pageResponse[reviewResponse]{
		Items:    items,
		Total:    window.Total,
		Page:     c.Page,
		PageSize: c.PageSize,
	})
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	created, err := submitCreate(r.Context(), model.Review{}, model.CloneReview, applyReviewRequest(req),
		func(ctx context.Context, _ string, draft model.Review) (model.Review, error) {
			return h.api.CreateReview(ctx, draft)
		})
	if err != nil {
		writeUpstreamError(w, r, err, "create review")
		return
	}

	h.refresh(r.Context())
	writeJSON(w, http.StatusCreated, toReviewResponse(created))
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	existing, ok := findByID(h.store.Snapshot(), id, func(r model.Review) string { return r.ID })
	if !ok {
		if err := h.store.Refresh(r.Context(), h.api.ListReviews); err != nil {
			log.Printf("ERROR: fetch reviews: %v", err)
		}
		if existing, ok = findByID(h.store.Snapshot(), id, func(r model.Review) string { return r.ID }); !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "review not found"})
			return
		}
	}

	updated, err := submitEdit(r.Context(), id, existing, model.CloneReview, applyReviewRequest(req),
		func(ctx context.Context, id string, draft model.Review) (model.Review, error) {
			return h.api.UpdateReview(ctx, id, draft)
		})
	if err != nil {
		writeUpstreamError(w, r, err, "update review")
		return
	}

	h.refresh(r.Context())
	writeJSON(w, http.StatusOK, toReviewResponse(updated))
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.api.DeleteReview(r.Context(), id); err != nil {
		writeUpstreamError(w, r, err, "delete review")
		return
	}

	h.refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewHandler) refresh(ctx context.Context) {
	if err := h.store.Refresh(ctx, h.api.ListReviews); err != nil {
		log.Printf("ERROR: refresh reviews: %v", err)
	}
}
