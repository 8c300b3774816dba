package dashboard_test

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angkringan-pos/admin-api/internal/dashboard"
	"github.com/angkringan-pos/admin-api/internal/enum"
	"github.com/angkringan-pos/admin-api/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestReduce_EmptyCollections(t *testing.T) {
	stats := dashboard.Reduce(nil, nil, nil, nil)

	if stats.UsersCount != 0 || stats.PromosCount != 0 || stats.ReviewsCount != 0 || stats.TransactionsCount != 0 {
		t.Errorf("counts not zero: %+v", stats)
	}
	if stats.TransactionsTotal != "0.00" {
		t.Errorf("total: got %q, want 0.00", stats.TransactionsTotal)
	}
	// Charts render empty series, not null.
	if stats.StatusBreakdown == nil || stats.MenuSalesBreakdown == nil {
		t.Error("expected empty slices, got nil breakdowns")
	}
}

func TestReduce_Counts(t *testing.T) {
	users := []model.User{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}}
	promos := []model.Promo{
		{ID: "p1", PromoStatus: true},
		{ID: "p2", PromoStatus: false},
		{ID: "p3", PromoStatus: true},
	}
	reviews := []model.Review{{ID: "r1"}}
	txns := []model.Transaction{
		{ID: "t1", TTotal: dec("1500.50")},
		{ID: "t2", TTotal: dec("499.50")},
	}

	stats := dashboard.Reduce(users, promos, reviews, txns)

	if stats.UsersCount != 3 {
		t.Errorf("users: got %d, want 3", stats.UsersCount)
	}
	if stats.PromosCount != 3 || stats.ActivePromosCount != 2 {
		t.Errorf("promos: got %d/%d active, want 3/2", stats.PromosCount, stats.ActivePromosCount)
	}
	if stats.ReviewsCount != 1 {
		t.Errorf("reviews: got %d, want 1", stats.ReviewsCount)
	}
	if stats.TransactionsCount != 2 {
		t.Errorf("transactions: got %d, want 2", stats.TransactionsCount)
	}
	if stats.TransactionsTotal != "2000.00" {
		t.Errorf("total: got %q, want 2000.00", stats.TransactionsTotal)
	}
}

func TestReduce_StatusBreakdownFirstSeenOrder(t *testing.T) {
	txns := []model.Transaction{
		{TStatus: enum.TransactionStatusProcessing},
		{TStatus: enum.TransactionStatusCompleted},
		{TStatus: enum.TransactionStatusProcessing},
		{TStatus: enum.TransactionStatusCanceled},
		{TStatus: enum.TransactionStatusCompleted},
		{TStatus: enum.TransactionStatusProcessing},
	}

	stats := dashboard.Reduce(nil, nil, nil, txns)

	want := []dashboard.StatusCount{
		{Status: enum.TransactionStatusProcessing, Count: 3},
		{Status: enum.TransactionStatusCompleted, Count: 2},
		{Status: enum.TransactionStatusCanceled, Count: 1},
	}
	if !reflect.DeepEqual(stats.StatusBreakdown, want) {
		t.Errorf("status breakdown:\n got %+v\nwant %+v", stats.StatusBreakdown, want)
	}
}

func TestReduce_MenuSalesAggregatesAcrossTransactions(t *testing.T) {
	txns := []model.Transaction{
		{TItems: []model.TransactionItem{
			{MenuName: "Nasi Goreng", Quantity: 2},
			{MenuName: "Es Teh", Quantity: 1},
		}},
		{TItems: []model.TransactionItem{
			{MenuName: "Es Teh", Quantity: 3},
			{MenuName: "Sate", Quantity: 1},
		}},
	}

	stats := dashboard.Reduce(nil, nil, nil, txns)

	want := []dashboard.MenuSales{
		{MenuName: "Nasi Goreng", Quantity: 2},
		{MenuName: "Es Teh", Quantity: 4},
		{MenuName: "Sate", Quantity: 1},
	}
	if !reflect.DeepEqual(stats.MenuSalesBreakdown, want) {
		t.Errorf("menu sales:\n got %+v\nwant %+v", stats.MenuSalesBreakdown, want)
	}
}
