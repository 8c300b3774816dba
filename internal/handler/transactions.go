package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angkringan-pos/admin-api/internal/model"
	"github.com/angkringan-pos/admin-api/internal/query"
	"github.com/angkringan-pos/admin-api/internal/store"
	"github.com/angkringan-pos/admin-api/internal/transaction"
)

// TransactionAPI defines the upstream calls needed by the transaction
// screen. Transactions originate from customer checkouts, so there is no
// create path here. Satisfied by *upstream.Client; narrow interface for
// testability.
type TransactionAPI interface {
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, t model.Transaction) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListMenus(ctx context.Context) ([]model.Menu, error)
	ListPromos(ctx context.Context) ([]model.Promo, error)
}

// TransactionHandler serves the manage-transaction screen. Edits rebuild
// the line items through the transaction editor so the stored total is
// always the recomputed one, never the client's.
type TransactionHandler struct {
	api   TransactionAPI
	store *store.Store[model.Transaction]
}

func NewTransactionHandler(api TransactionAPI) *TransactionHandler {
	return &TransactionHandler{api: api, store: store.New[model.Transaction]()}
}

func (h *TransactionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

var transactionSpec = query.Spec[model.Transaction]{
	SearchFields: []func(model.Transaction) string{
		func(t model.Transaction) string {
			if t.Account == nil {
				return ""
			}
			return t.Account.Fullname
		},
	},
	FilterValue: func(t model.Transaction) string { return t.TStatus },
	SortKeys: map[string]func(a, b model.Transaction) int{
		"t_date": func(a, b model.Transaction) int { return a.TDate.Compare(b.TDate) },
		"t_total": func(a, b model.Transaction) int {
			return a.TTotal.Cmp(b.TTotal)
		},
	},
}

// --- Request / Response types ---

type transactionItemRequest struct {
	MenuID   string `json:"menu_id"`
	Quantity int    `json:"quantity"`
}

// transactionRequest carries the editable fields. PromoID distinguishes
// "leave the promo alone" (absent) from "remove the promo" (empty string).
// Any t_total sent by the client is ignored; the total is re-derived.
type transactionRequest struct {
	TStatus string                   `json:"t_status"`
	PromoID *string                  `json:"promo_id,omitempty"`
	Items   []transactionItemRequest `json:"t_items"`
}

type transactionItemResponse struct {
	MenuID   string `json:"menu_id"`
	MenuName string `json:"menu_name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

type transactionResponse struct {
	ID          string                    `json:"_id"`
	AccountName string                    `json:"account_name"`
	PromoCode   string                    `json:"promo_code,omitempty"`
	TStatus     string                    `json:"t_status"`
	TTotal      string                    `json:"t_total"`
	TDate       time.Time                 `json:"t_date"`
	TItems      []transactionItemResponse `json:"t_items"`
}

func toTransactionResponse(t model.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:      t.ID,
		TStatus: t.TStatus,
		TTotal:  t.TTotal.StringFixed(2),
		TDate:   t.TDate,
		TItems:  make([]transactionItemResponse, len(t.TItems)),
	}
	if t.Account != nil {
		resp.AccountName = t.Account.Fullname
	}
	if t.Promo != nil {
		resp.PromoCode = t.Promo.PromoCode
	}
	for i, item := range t.TItems {
		resp.TItems[i] = transactionItemResponse{
			MenuID:   item.MenuID,
			MenuName: item.MenuName,
			Quantity: item.Quantity,
			Price:    item.Price.StringFixed(2),
		}
	}
	return resp
}

// --- Handlers ---

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Refresh(r.Context(), h.api.ListTransactions); err != nil {
		log.Printf("ERROR: fetch transactions: %v", err)
	}

	c := parseCriteria(r)
	filtered := query.Filter(h.store.Snapshot(), c, transactionSpec)
	window := query.Paginate(filtered, c.Page, c.PageSize)

	items := make([]transactionResponse, len(window.Visible))
	for i, t := range window.Visible {
		items[i] = toTransactionResponse(t)
	}

	writeJSON(w, http.StatusOK, pageResponse[transactionResponse]{
		Items:    items,
		Total:    window.Total,
		Page:     c.Page,
		PageSize: c.PageSize,
	})
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	existing, ok := findByID(h.store.Snapshot(), id, func(t model.Transaction) string { return t.ID })
	if !ok {
		if err := h.store.Refresh(r.Context(), h.api.ListTransactions); err != nil {
			log.Printf("ERROR: fetch transactions: %v", err)
		}
		if existing, ok = findByID(h.store.Snapshot(), id, func(t model.Transaction) string { return t.ID }); !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "transaction not found"})
			return
		}
	}

	draft, err := h.buildDraft(r.Context(), existing, req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	updated, err := submitEdit(r.Context(), id, draft, model.CloneTransaction,
		func(*model.Transaction) {}, // the editor already applied the edits
		func(ctx context.Context, id string, d model.Transaction) (model.Transaction, error) {
			return h.api.UpdateTransaction(ctx, id, d)
		})
	if err != nil {
		writeUpstreamError(w, r, err, "update transaction")
		return
	}

	h.refresh(r.Context())
	writeJSON(w, http.StatusOK, toTransactionResponse(updated))
}

// buildDraft applies the requested edits to a copy of the transaction
// through the editor, which re-derives the total after every change.
func (h *TransactionHandler) buildDraft(ctx context.Context, existing model.Transaction, req transactionRequest) (model.Transaction, error) {
	editor := transaction.NewEditor(existing)

	if req.TStatus != "" {
		if err := editor.SetStatus(req.TStatus); err != nil {
			return model.Transaction{}, err
		}
	}

	if req.Items != nil {
		catalog, err := h.api.ListMenus(ctx)
		if err != nil {
			return model.Transaction{}, errors.New("menu catalog unavailable")
		}
		editor.ClearItems()
		for i, item := range req.Items {
			editor.AddItem()
			if err := editor.SetItemMenu(i, item.MenuID, catalog); err != nil {
				return model.Transaction{}, err
			}
			if item.Quantity != 1 {
				if err := editor.SetItemQuantity(i, item.Quantity); err != nil {
					return model.Transaction{}, err
				}
			}
		}
	}

	if req.PromoID != nil {
		if *req.PromoID == "" {
			editor.SetPromo(nil)
		} else {
			ref, err := h.resolvePromo(ctx, *req.PromoID)
			if err != nil {
				return model.Transaction{}, err
			}
			editor.SetPromo(ref)
		}
	}

	return editor.Transaction(), nil
}

func (h *TransactionHandler) resolvePromo(ctx context.Context, promoID string) (*model.PromoRef, error) {
	promos, err := h.api.ListPromos(ctx)
	if err != nil {
		return nil, errors.New("promo catalog unavailable")
	}
	for _, p := range promos {
		if p.ID == promoID {
			return &model.PromoRef{ID: p.ID, PromoCode: p.PromoCode, PromoPrice: p.PromoPrice}, nil
		}
	}
	return nil, errors.New("promo not found")
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.api.DeleteTransaction(r.Context(), id); err != nil {
		writeUpstreamError(w, r, err, "delete transaction")
		return
	}

	h.refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) refresh(ctx context.Context) {
	if err := h.store.Refresh(ctx, h.api.ListTransactions); err != nil {
		log.Printf("ERROR: refresh transactions: %v", err)
	}
}
