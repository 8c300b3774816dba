package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angkringan-pos/admin-api/internal/model"
	"github.com/angkringan-pos/admin-api/internal/query"
	"github.com/angkringan-pos/admin-api/internal/store"
)

// PromoAPI defines the upstream calls needed by the promo screen.
// Satisfied by *upstream.Client; narrow interface for testability.
type PromoAPI interface {
	ListPromos(ctx context.Context) ([]model.Promo, error)
	CreatePromo(ctx context.Context, p model.Promo) (model.Promo, error)
	UpdatePromo(ctx context.Context, id string, p model.Promo) (model.Promo, error)
	DeletePromo(ctx context.Context, id string) error
}

// PromoHandler serves the manage-promo screen.
type PromoHandler struct {
	api   PromoAPI
	store *store.Store[model.Promo]
}

func NewPromoHandler(api PromoAPI) *PromoHandler {
	return &PromoHandler{api: api, store: store.New[model.Promo]()}
}

func (h *PromoHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

var promoSpec = query.Spec[model.Promo]{
	SearchFields: []func(model.Promo) string{
		func(p model.Promo) string { return p.PromoCode },
	},
	FilterValue: func(p model.Promo) string {
		if p.PromoStatus {
			return "active"
		}
		return "inactive"
	},
}

// --- Request / Response types ---

type promoRequest struct {
	PromoCode   string          `json:"promo_code"`
	PromoPrice  decimal.Decimal `json:"promo_price"`
	PromoStatus bool            `json:"promo_status"`
}

type promoResponse struct {
	ID          string `json:"_id"`
	PromoCode   string `json:"promo_code"`
	PromoPrice  string `json:"promo_price"`
	PromoStatus bool   `json:"promo_status"`
}

func toPromoResponse(p model.Promo) promoResponse {
	return promoResponse{
		ID:          p.ID,
		PromoCode:   p.PromoCode,
		PromoPrice:  p.PromoPrice.StringFixed(2),
		PromoStatus: p.PromoStatus,
	}
}

func applyPromoRequest(req promoRequest) func(*model.Promo) {
	return func(d *model.Promo) {
		d.PromoCode = req.PromoCode
		d.PromoPrice = req.PromoPrice
		d.PromoStatus = req.PromoStatus
	}
}

// --- Handlers ---

func (h *PromoHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Refresh(r.Context(), h.api.ListPromos); err != nil {
		log.Printf("ERROR: fetch promos: %v", err)
	}

	c := parseCriteria(r)
	filtered := query.Filter(h.store.Snapshot(), c, promoSpec)
	window := query.Paginate(filtered, c.Page, c.PageSize)

	items := make([]promoResponse, len(window.Visible))
	for i, p := range window.Visible {
		items[i] = toPromoResponse(p)
	}

	writeJSON(w, http.StatusOK, pageResponse[promoResponse]{
		Items:    items,
		Total:    window.Total,
		Page:     c.Page,
		PageSize: c.PageSize,
	})
}

func (h *PromoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req promoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	created, err := submitCreate(r.Context(), model.Promo{}, model.ClonePromo, applyPromoRequest(req),
		func(ctx context.Context, _ string, draft model.Promo) (model.Promo, error) {
			return h.api.CreatePromo(ctx, draft)
		})
	if err != nil {
		writeUpstreamError(w, r, err, "create promo")
		return
	}

	h.refresh(r.Context())
	writeJSON(w, http.StatusCreated, toPromoResponse(created))
}

func (h *PromoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req promoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	existing, ok := findByID(h.store.Snapshot(), id, func(p model.Promo) string { return p.ID })
	if !ok {
		if err := h.store.Refresh(r.Context(), h.api.ListPromos); err != nil {
			log.Printf("ERROR: fetch promos: %v", err)
		}
		if existing, ok = findByID(h.store.Snapshot(), id, func(p model.Promo) string { return p.ID }); !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "promo not found"})
			return
		}
	}

	updated, err := submitEdit(r.Context(), id, existing, model.ClonePromo, applyPromoRequest(req),
		func(ctx context.Context, id string, draft model.Promo) (model.Promo, error) {
			return h.api.UpdatePromo(ctx, id, draft)
		})
	if err != nil {
		writeUpstreamError(w, r, err, "update promo")
		return
	}

	h.refresh(r.Context())
	writeJSON(w, http.StatusOK, toPromoResponse(updated))
}

func (h *PromoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.api.DeletePromo(r.Context(), id); err != nil {
		writeUpstreamError(w, r, err, "delete promo")
		return
	}

	h.refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *PromoHandler) refresh(ctx context.Context) {
	if err := h.store.Refresh(ctx, h.api.ListPromos); err != nil {
		log.Printf("ERROR: refresh promos: %v", err)
	}
}
