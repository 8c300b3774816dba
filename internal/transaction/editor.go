// Package transaction recomputes a transaction draft's total whenever its
// line items, quantities, or applied promo change. The total is derived
// only; no edit path writes it directly.
package transaction

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angkringan-pos/admin-api/internal/enum"
	"github.com/angkringan-pos/admin-api/internal/model"
)

var (
	ErrItemOutOfRange  = errors.New("item index out of range")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrMenuNotFound    = errors.New("menu not found in catalog")
	ErrInvalidStatus   = errors.New("invalid transaction status")
)

// Editor wraps a deep copy of one transaction while its edit dialog is
// open. Every mutation triggers a recompute, so the derived-total
// invariant holds for the whole lifetime of the draft.
type Editor struct {
	draft model.Transaction
}

// NewEditor copies the transaction and recomputes immediately, correcting
// any stale total the record arrived with.
func NewEditor(t model.Transaction) *Editor {
	e := &Editor{draft: t.Clone()}
	e.recompute()
	return e
}

// Transaction returns a copy of the draft in its current state.
func (e *Editor) Transaction() model.Transaction { return e.draft.Clone() }

// Total is the current derived total.
func (e *Editor) Total() decimal.Decimal { return e.draft.TTotal }

// Items returns a copy of the current line items.
func (e *Editor) Items() []model.TransactionItem {
	out := make([]model.TransactionItem, len(e.draft.TItems))
	copy(out, e.draft.TItems)
	return out
}

// AddItem appends a placeholder line item awaiting a menu selection.
// Quantity starts at 1 so the minimum-quantity floor holds from the start.
func (e *Editor) AddItem() {
	e.draft.TItems = append(e.draft.TItems, model.TransactionItem{Quantity: 1})
	e.recompute()
}

// RemoveItem deletes the line item at index, preserving order.
func (e *Editor) RemoveItem(index int) error {
	if index < 0 || index >= len(e.draft.TItems) {
		return fmt.Errorf("%w: %d", ErrItemOutOfRange, index)
	}
	e.draft.TItems = append(e.draft.TItems[:index], e.draft.TItems[index+1:]...)
	e.recompute()
	return nil
}

// ClearItems drops every line item. Used when a submitted edit replaces
// the item list wholesale rather than patching individual rows.
func (e *Editor) ClearItems() {
	e.draft.TItems = nil
	e.recompute()
}

// SetItemMenu resolves menuID against the externally supplied menu catalog
// and replaces the item's name and unit price.
func (e *Editor) SetItemMenu(index int, menuID string, catalog []model.Menu) error {
	if index < 0 || index >= len(e.draft.TItems) {
		return fmt.Errorf("%w: %d", ErrItemOutOfRange, index)
	}
	for _, menu := range catalog {
		if menu.ID == menuID {
			item := &e.draft.TItems[index]
			item.MenuID = menu.ID
			item.MenuName = menu.MenuName
			item.Price = menu.MenuPrice
			e.recompute()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrMenuNotFound, menuID)
}

// SetItemQuantity replaces the item's quantity, floored at 1.
func (e *Editor) SetItemQuantity(index, qty int) error {
	if index < 0 || index >= len(e.draft.TItems) {
		return fmt.Errorf("%w: %d", ErrItemOutOfRange, index)
	}
	if qty < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	e.draft.TItems[index].Quantity = qty
	e.recompute()
	return nil
}

// SetPromo applies or clears the promo reference.
func (e *Editor) SetPromo(promo *model.PromoRef) {
	if promo == nil {
		e.draft.Promo = nil
	} else {
		p := *promo
		e.draft.Promo = &p
	}
	e.recompute()
}

// SetStatus sets the independent status field. The status is uncoupled
// from the recompute rule.
func (e *Editor) SetStatus(status string) error {
	switch status {
	case enum.TransactionStatusCompleted, enum.TransactionStatusWaiting,
		enum.TransactionStatusProcessing, enum.TransactionStatusCanceled:
		e.draft.TStatus = status
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}

// recompute re-derives total = sum(quantity * price) - promo discount,
// floored at zero. Idempotent given identical items and promo.
func (e *Editor) recompute() {
	total := decimal.Zero
	for _, item := range e.draft.TItems {
		total = total.Add(item.Subtotal())
	}
	if e.draft.Promo != nil {
		total = total.Sub(e.draft.Promo.PromoPrice)
	}
	if total.IsNegative() {
		total = decimal.Zero
	}
	e.draft.TTotal = total
}
