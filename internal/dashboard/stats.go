// Package dashboard derives the summary counts and chart series shown on
// the admin landing screen from the four raw collections. The snapshot is
// recomputed in full on every fetch and never persisted.
package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/angkringan-pos/admin-api/internal/model"
)

// StatusCount is one slice of the transaction-status chart. Order of
// appearance is first-seen order across the collection.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// MenuSales is one bar of the menu-sales chart: total quantity sold of one
// menu across every transaction's line items.
type MenuSales struct {
	MenuName string `json:"menu_name"`
	Quantity int    `json:"quantity"`
}

// Stats is the derived dashboard snapshot.
type Stats struct {
	UsersCount         int           `json:"usersCount"`
	PromosCount        int           `json:"promosCount"`
	ActivePromosCount  int           `json:"activePromosCount"`
	ReviewsCount       int           `json:"reviewsCount"`
	TransactionsCount  int           `json:"transactionsCount"`
	TransactionsTotal  string        `json:"transactionsTotal"`
	StatusBreakdown    []StatusCount `json:"statusBreakdown"`
	MenuSalesBreakdown []MenuSales   `json:"menuSalesBreakdown"`
}

// Reduce computes the full snapshot from the raw collections.
func Reduce(users []model.User, promos []model.Promo, reviews []model.Review, txns []model.Transaction) Stats {
	stats := Stats{
		UsersCount:         len(users),
		PromosCount:        len(promos),
		ReviewsCount:       len(reviews),
		TransactionsCount:  len(txns),
		StatusBreakdown:    []StatusCount{},
		MenuSalesBreakdown: []MenuSales{},
	}

	for _, p := range promos {
		if p.PromoStatus {
			stats.ActivePromosCount++
		}
	}

	total := decimal.Zero
	statusIndex := make(map[string]int)
	menuIndex := make(map[string]int)
	for _, t := range txns {
		total = total.Add(t.TTotal)

		if i, seen := statusIndex[t.TStatus]; seen {
			stats.StatusBreakdown[i].Count++
		} else {
			statusIndex[t.TStatus] = len(stats.StatusBreakdown)
			stats.StatusBreakdown = append(stats.StatusBreakdown, StatusCount{Status: t.TStatus, Count: 1})
		}

		for _, item := range t.TItems {
			if i, seen := menuIndex[item.MenuName]; seen {
				stats.MenuSalesBreakdown[i].Quantity += item.Quantity
			} else {
				menuIndex[item.MenuName] = len(stats.MenuSalesBreakdown)
				stats.MenuSalesBreakdown = append(stats.MenuSalesBreakdown, MenuSales{
					MenuName: item.MenuName,
					Quantity: item.Quantity,
				})
			}
		}
	}
	stats.TransactionsTotal = total.StringFixed(2)

	return stats
}
