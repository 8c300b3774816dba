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

// StockHandler serves the manage-stocks screen: the menu collection viewed
// as stock levels. Edits touch only menu_stock; everything else on the
// record passes through unchanged.
type StockHandler struct {
	api   MenuAPI
	store *store.Store[model.Menu]
}

func NewStockHandler(api MenuAPI) *StockHandler {
	return &StockHandler{api: api, store: store.New[model.Menu]()}
}

func (h *StockHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Put("/{id}", h.Update)
}

type stockRequest struct {
	MenuStock int `json:"menu_stock"`
}

type stockResponse struct {
	ID        string `json:"_id"`
	MenuName  string `json:"menu_name"`
	MenuStock int    `json:"menu_stock"`
}

func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Refresh(r.Context(), h.api.ListMenus); err != nil {
		log.Printf("ERROR: fetch stocks: %v", err)
	}

	c := parseCriteria(r)
	filtered := query.Filter(h.store.Snapshot(), c, menuSpec)
	window := query.Paginate(filtered, c.Page, c.PageSize)

	items := make([]stockResponse, len(window.Visible))
	for i, m := range window.Visible {
		items[i] = stockResponse{ID: m.ID, MenuName: m.MenuName, MenuStock: m.MenuStock}
	}

	writeJSON(w, http.StatusOK, pageResponse[stockResponse]{
		Items:    items,
		Total:    window.Total,
		Page:     c.Page,
		PageSize: c.PageSize,
	})
}

func (h *StockHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req stockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	existing, ok := findByID(h.store.Snapshot(), id, func(m model.Menu) string { return m.ID })
	if !ok {
		if err := h.store.Refresh(r.Context(), h.api.ListMenus); err != nil {
			log.Printf("ERROR: fetch stocks: %v", err)
		}
		if existing, ok = findByID(h.store.Snapshot(), id, func(m model.Menu) string { return m.ID }); !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu not found"})
			return
		}
	}

	updated, err := submitEdit(r.Context(), id, existing, model.CloneMenu,
		func(d *model.Menu) { d.MenuStock = req.MenuStock },
		func(ctx context.Context, id string, draft model.Menu) (model.Menu, error) {
			return h.api.UpdateMenu(ctx, id, draft)
		})
	if err != nil {
		writeUpstreamError(w, r, err, "update stock")
		return
	}

	h.refresh(r.Context())
	writeJSON(w, http.StatusOK, stockResponse{ID: updated.ID, MenuName: updated.MenuName, MenuStock: updated.MenuStock})
}

func (h *StockHandler) refresh(ctx context.Context) {
	if err := h.store.Refresh(ctx, h.api.ListMenus); err != nil {
		log.Printf("ERROR: refresh stocks: %v", err)
	}
}
