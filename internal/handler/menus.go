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

// MenuAPI defines the upstream calls needed by the menu and stock screens.
// Satisfied by *upstream.Client; narrow interface for testability.
type MenuAPI interface {
	ListMenus(ctx context.Context) ([]model.Menu, error)
	CreateMenu(ctx context.Context, m model.Menu) (model.Menu, error)
	UpdateMenu(ctx context.Context, id string, m model.Menu) (model.Menu, error)
	DeleteMenu(ctx context.Context, id string) error
}

// MenuHandler serves the manage-menu screen.
type MenuHandler struct {
	api   MenuAPI
	store *store.Store[model.Menu]
}

func NewMenuHandler(api MenuAPI) *MenuHandler {
	return &MenuHandler{api: api, store: store.New[model.Menu]()}
}

func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// menuSpec: search over name and description; no discriminator.
var menuSpec = query.Spec[model.Menu]{
	SearchFields: []func(model.Menu) string{
		func(m model.Menu) string { return m.MenuName },
		func(m model.Menu) string { return m.MenuDesc },
	},
}

// --- Request / Response types ---

type menuRequest struct {
	MenuName  string          `json:"menu_name"`
	MenuDesc  string          `json:"menu_desc"`
	MenuPrice decimal.Decimal `json:"menu_price"`
	MenuStock int             `json:"menu_stock"`
}

type menuResponse struct {
	ID        string `json:"_id"`
	MenuName  string `json:"menu_name"`
	MenuDesc  string `json:"menu_desc"`
	MenuPrice string `json:"menu_price"`
	MenuStock int    `json:"menu_stock"`
}

func toMenuResponse(m model.Menu) menuResponse {
	return menuResponse{
		ID:        m.ID,
		MenuName:  m.MenuName,
		MenuDesc:  m.MenuDesc,
		MenuPrice: m.MenuPrice.StringFixed(2),
		MenuStock: m.MenuStock,
	}
}

func applyMenuRequest(req menuRequest) func(*model.Menu) {
	return func(d *model.Menu) {
		d.MenuName = req.MenuName
		d.MenuDesc = req.MenuDesc
		d.MenuPrice = req.MenuPrice
		d.MenuStock = req.MenuStock
	}
}

// --- Handlers ---

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Refresh(r.Context(), h.api.ListMenus); err != nil {
		log.Printf("ERROR: fetch menus: %v", err)
	}

	c := parseCriteria(r)
	filtered := query.Filter(h.store.Snapshot(), c, menuSpec)
	window := query.Paginate(filtered, c.Page, c.PageSize)

	items := make([]menuResponse, len(window.Visible))
	for i, m := range window.Visible {
		items[i] = toMenuResponse(m)
	}

	writeJSON(w, http.StatusOK, pageResponse[menuResponse]{
		Items:    items,
		Total:    window.Total,
		Page:     c.Page,
		PageSize: c.PageSize,
	})
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req menuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	created, err := submitCreate(r.Context(), model.Menu{}, model.CloneMenu, applyMenuRequest(req),
		func(ctx context.Context, _ string, draft model.Menu) (model.Menu, error) {
			return h.api.CreateMenu(ctx, draft)
		})
	if err != nil {
		writeUpstreamError(w, r, err, "create menu")
		return
	}

	h.refresh(r.Context())
	writeJSON(w, http.StatusCreated, toMenuResponse(created))
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req menuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	existing, ok := findByID(h.store.Snapshot(), id, func(m model.Menu) string { return m.ID })
	if !ok {
		if err := h.store.Refresh(r.Context(), h.api.ListMenus); err != nil {
			log.Printf("ERROR: fetch menus: %v", err)
		}
		if existing, ok = findByID(h.store.Snapshot(), id, func(m model.Menu) string { return m.ID }); !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu not found"})
			return
		}
	}

	updated, err := submitEdit(r.Context(), id, existing, model.CloneMenu, applyMenuRequest(req),
		func(ctx context.Context, id string, draft model.Menu) (model.Menu, error) {
			return h.api.UpdateMenu(ctx, id, draft)
		})
	if err != nil {
		writeUpstreamError(w, r, err, "update menu")
		return
	}

	h.refresh(r.Context())
	writeJSON(w, http.StatusOK, toMenuResponse(updated))
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.api.DeleteMenu(r.Context(), id); err != nil {
		writeUpstreamError(w, r, err, "delete menu")
		return
	}

	h.refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *MenuHandler) refresh(ctx context.Context) {
	if err := h.store.Refresh(ctx, h.api.ListMenus); err != nil {
		log.Printf("ERROR: refresh menus: %v", err)
	}
}
