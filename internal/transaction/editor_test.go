package transaction_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angkringan-pos/admin-api/internal/enum"
	"github.com/angkringan-pos/admin-api/internal/model"
	"github.com/angkringan-pos/admin-api/internal/transaction"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var catalog = []model.Menu{
	{ID: "m1", MenuName: "Nasi Goreng", MenuPrice: dec("1000")},
	{ID: "m2", MenuName: "Es Teh", MenuPrice: dec("500")},
}

func TestNewEditor_CorrectsStaleTotal(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{
		TItems: []model.TransactionItem{
			{MenuID: "m1", Quantity: 2, Price: dec("1000")},
		},
		TTotal: dec("99999"), // stale value from the wire
	})

	if !e.Total().Equal(dec("2000")) {
		t.Errorf("total: got %s, want 2000", e.Total())
	}
}

func TestTotal_ItemsMinusPromo(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{})

	e.AddItem()
	if err := e.SetItemMenu(0, "m1", catalog); err != nil {
		t.Fatalf("set menu: %v", err)
	}
	if err := e.SetItemQuantity(0, 2); err != nil {
		t.Fatalf("set quantity: %v", err)
	}

	e.AddItem()
	if err := e.SetItemMenu(1, "m2", catalog); err != nil {
		t.Fatalf("set menu: %v", err)
	}

	e.SetPromo(&model.PromoRef{ID: "p1", PromoCode: "HEMAT", PromoPrice: dec("300")})

	// 2*1000 + 1*500 - 300
	if !e.Total().Equal(dec("2200")) {
		t.Errorf("total: got %s, want 2200", e.Total())
	}
}

func TestTotal_FlooredAtZero(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{
		TItems: []model.TransactionItem{
			{MenuID: "m2", Quantity: 1, Price: dec("500")},
		},
	})
	e.SetPromo(&model.PromoRef{ID: "p1", PromoPrice: dec("800")})

	if !e.Total().Equal(decimal.Zero) {
		t.Errorf("total: got %s, want 0", e.Total())
	}
}

func TestTotal_RecomputeIsIdempotent(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{
		TItems: []model.TransactionItem{
			{MenuID: "m1", Quantity: 3, Price: dec("1000")},
		},
		Promo: &model.PromoRef{ID: "p1", PromoPrice: dec("500")},
	})

	first := e.Total()
	// Re-applying the same quantity must not change the result.
	if err := e.SetItemQuantity(0, 3); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if !e.Total().Equal(first) {
		t.Errorf("total drifted: %s then %s", first, e.Total())
	}
}

func TestAddItem_PlaceholderContributesNothing(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{})
	e.AddItem()

	items := e.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Quantity != 1 {
		t.Errorf("placeholder quantity: got %d, want 1", items[0].Quantity)
	}
	if !e.Total().Equal(decimal.Zero) {
		t.Errorf("total with unpriced placeholder: got %s, want 0", e.Total())
	}
}

func TestRemoveItem_PreservesOrderAndRecomputes(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{
		TItems: []model.TransactionItem{
			{MenuID: "m1", MenuName: "Nasi Goreng", Quantity: 1, Price: dec("1000")},
			{MenuID: "m2", MenuName: "Es Teh", Quantity: 1, Price: dec("500")},
			{MenuID: "m1", MenuName: "Nasi Goreng", Quantity: 2, Price: dec("1000")},
		},
	})

	if err := e.RemoveItem(1); err != nil {
		t.Fatalf("remove: %v", err)
	}

	items := e.Items()
	if len(items) != 2 || items[0].Quantity != 1 || items[1].Quantity != 2 {
		t.Errorf("unexpected items after remove: %+v", items)
	}
	if !e.Total().Equal(dec("3000")) {
		t.Errorf("total: got %s, want 3000", e.Total())
	}
}

func TestRemoveItem_OutOfRange(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{})
	if err := e.RemoveItem(0); !errors.Is(err, transaction.ErrItemOutOfRange) {
		t.Errorf("got %v, want ErrItemOutOfRange", err)
	}
}

func TestClearItems_DropsEverything(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{
		TItems: []model.TransactionItem{
			{MenuID: "m1", Quantity: 2, Price: dec("1000")},
		},
	})

	e.ClearItems()

	if len(e.Items()) != 0 {
		t.Errorf("expected no items, got %d", len(e.Items()))
	}
	if !e.Total().Equal(decimal.Zero) {
		t.Errorf("total: got %s, want 0", e.Total())
	}
}

func TestSetItemMenu_ReplacesNameAndPrice(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{
		TItems: []model.TransactionItem{
			{MenuID: "m1", MenuName: "Nasi Goreng", Quantity: 2, Price: dec("1000")},
		},
	})

	if err := e.SetItemMenu(0, "m2", catalog); err != nil {
		t.Fatalf("set menu: %v", err)
	}

	item := e.Items()[0]
	if item.MenuName != "Es Teh" || !item.Price.Equal(dec("500")) {
		t.Errorf("item not re-resolved: %+v", item)
	}
	// Quantity carries over; the subtotal follows the new price.
	if !e.Total().Equal(dec("1000")) {
		t.Errorf("total: got %s, want 1000", e.Total())
	}
}

func TestSetItemMenu_UnknownMenu(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{})
	e.AddItem()
	if err := e.SetItemMenu(0, "nope", catalog); !errors.Is(err, transaction.ErrMenuNotFound) {
		t.Errorf("got %v, want ErrMenuNotFound", err)
	}
}

func TestSetItemQuantity_RejectsBelowOne(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{
		TItems: []model.TransactionItem{
			{MenuID: "m1", Quantity: 2, Price: dec("1000")},
		},
	})

	for _, qty := range []int{0, -1} {
		if err := e.SetItemQuantity(0, qty); !errors.Is(err, transaction.ErrInvalidQuantity) {
			t.Errorf("quantity %d: got %v, want ErrInvalidQuantity", qty, err)
		}
	}
	if e.Items()[0].Quantity != 2 {
		t.Errorf("rejected edit changed the quantity: %d", e.Items()[0].Quantity)
	}
}

func TestSetPromo_ClearRestoresFullTotal(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{
		TItems: []model.TransactionItem{
			{MenuID: "m1", Quantity: 1, Price: dec("1000")},
		},
		Promo: &model.PromoRef{ID: "p1", PromoPrice: dec("300")},
	})

	if !e.Total().Equal(dec("700")) {
		t.Fatalf("total with promo: got %s, want 700", e.Total())
	}

	e.SetPromo(nil)
	if !e.Total().Equal(dec("1000")) {
		t.Errorf("total after clearing promo: got %s, want 1000", e.Total())
	}
}

func TestSetStatus_ValidatesAgainstKnownStatuses(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{})

	for _, status := range []string{
		enum.TransactionStatusCompleted,
		enum.TransactionStatusWaiting,
		enum.TransactionStatusProcessing,
		enum.TransactionStatusCanceled,
	} {
		if err := e.SetStatus(status); err != nil {
			t.Errorf("status %q rejected: %v", status, err)
		}
	}

	if err := e.SetStatus("Shipped"); !errors.Is(err, transaction.ErrInvalidStatus) {
		t.Errorf("got %v, want ErrInvalidStatus", err)
	}
}

func TestSetStatus_DoesNotAffectTotal(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{
		TItems: []model.TransactionItem{
			{MenuID: "m1", Quantity: 1, Price: dec("1000")},
		},
	})

	if err := e.SetStatus(enum.TransactionStatusCanceled); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if !e.Total().Equal(dec("1000")) {
		t.Errorf("status change moved the total: %s", e.Total())
	}
}

func TestTransaction_ReturnsIndependentCopy(t *testing.T) {
	e := transaction.NewEditor(model.Transaction{
		TItems: []model.TransactionItem{
			{MenuID: "m1", Quantity: 1, Price: dec("1000")},
		},
	})

	out := e.Transaction()
	out.TItems[0].Quantity = 99

	if e.Items()[0].Quantity != 1 {
		t.Errorf("editor draft aliased by Transaction(): %d", e.Items()[0].Quantity)
	}
}
