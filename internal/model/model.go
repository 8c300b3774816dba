// Package model holds the record types served by the upstream collection
// API. Field names mirror the upstream wire format exactly; records are
// created, updated, and deleted only through that API, never originated
// here.
package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angkringan-pos/admin-api/internal/enum"
)

// ImageRef points at an uploaded file managed by the upstream API.
type ImageRef struct {
	Filename string `json:"filename,omitempty"`
	Filepath string `json:"filepath,omitempty"`
}

// User is a platform account. Customers are users with neither flag set.
type User struct {
	ID           string    `json:"_id,omitempty"`
	Fullname     string    `json:"fullname"`
	Email        string    `json:"email"`
	Password     string    `json:"password,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	IsManager    bool      `json:"isManager"`
	Date         time.Time `json:"date,omitempty"`
	ProfileImage *ImageRef `json:"profileImage,omitempty"`
}

// Role collapses the two boolean flags into the three-way role enum.
func (u User) Role() string {
	switch {
	case u.IsAdmin:
		return enum.RoleAdmin
	case u.IsManager:
		return enum.RoleManager
	default:
		return enum.RoleCustomer
	}
}

type Menu struct {
	ID        string          `json:"_id,omitempty"`
	MenuName  string          `json:"menu_name"`
	MenuDesc  string          `json:"menu_desc"`
	MenuPrice decimal.Decimal `json:"menu_price"`
	MenuStock int             `json:"menu_stock"`
	MenuImage *ImageRef       `json:"menu_image,omitempty"`
}

type Promo struct {
	ID          string          `json:"_id,omitempty"`
	PromoCode   string          `json:"promo_code"`
	PromoPrice  decimal.Decimal `json:"promo_price"`
	PromoStatus bool            `json:"promo_status"`
}

// AccountRef is the populated account reference the upstream API embeds in
// reviews and transactions. May be nil when the account was deleted.
type AccountRef struct {
	ID       string `json:"_id,omitempty"`
	Fullname string `json:"fullname,omitempty"`
	Email    string `json:"email,omitempty"`
}

// MenuRef is the populated menu reference embedded in reviews.
type MenuRef struct {
	ID       string `json:"_id,omitempty"`
	MenuName string `json:"menu_name,omitempty"`
}

// PromoRef is the populated promo reference embedded in transactions.
// PromoPrice is the discount amount the promo subtracts from a total.
type PromoRef struct {
	ID         string          `json:"_id,omitempty"`
	PromoCode  string          `json:"promo_code,omitempty"`
	PromoPrice decimal.Decimal `json:"promo_price,omitempty"`
}

type Review struct {
	ID         string      `json:"_id,omitempty"`
	Account    *AccountRef `json:"accountId,omitempty"`
	Menu       *MenuRef    `json:"menuId,omitempty"`
	ReviewRate int         `json:"review_rate"`
	ReviewDesc string      `json:"review_desc"`
}

// TransactionItem is one menu purchase entry within a transaction.
type TransactionItem struct {
	MenuID   string          `json:"menu_id"`
	MenuName string          `json:"menu_name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Subtotal is quantity times unit price.
func (i TransactionItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Transaction's TTotal is derived from TItems and the promo discount; it is
// never edited independently.
type Transaction struct {
	ID      string            `json:"_id,omitempty"`
	Account *AccountRef       `json:"account_id,omitempty"`
	Promo   *PromoRef         `json:"promo_id,omitempty"`
	TStatus string            `json:"t_status"`
	TTotal  decimal.Decimal   `json:"t_total"`
	TDate   time.Time         `json:"t_date,omitempty"`
	TItems  []TransactionItem `json:"t_items"`
}

// Clone returns a deep copy; the item slice and embedded refs are never
// shared with the original.
func (t Transaction) Clone() Transaction {
	out := t
	if t.Account != nil {
		acc := *t.Account
		out.Account = &acc
	}
	if t.Promo != nil {
		promo := *t.Promo
		out.Promo = &promo
	}
	if t.TItems != nil {
		out.TItems = make([]TransactionItem, len(t.TItems))
		copy(out.TItems, t.TItems)
	}
	return out
}

// LogEntry is one row of the upstream audit log.
type LogEntry struct {
	ID           string          `json:"_id,omitempty"`
	Action       string          `json:"action"`
	Entity       string          `json:"entity"`
	EntityID     string          `json:"entityId"`
	User         string          `json:"user"`
	Details      string          `json:"details"`
	Timestamp    time.Time       `json:"timestamp"`
	PreviousData json.RawMessage `json:"previousData,omitempty"`
	NewData      json.RawMessage `json:"newData,omitempty"`
}

// --- Clone helpers for form drafts ---

func CloneUser(u User) User {
	out := u
	if u.ProfileImage != nil {
		img := *u.ProfileImage
		out.ProfileImage = &img
	}
	return out
}

func CloneMenu(m Menu) Menu {
	out := m
	if m.MenuImage != nil {
		img := *m.MenuImage
		out.MenuImage = &img
	}
	return out
}

func ClonePromo(p Promo) Promo { return p }

func CloneReview(r Review) Review {
	out := r
	if r.Account != nil {
		acc := *r.Account
		out.Account = &acc
	}
	if r.Menu != nil {
		menu := *r.Menu
		out.Menu = &menu
	}
	return out
}

func CloneTransaction(t Transaction) Transaction { return t.Clone() }
