package handler_test

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angkringan-pos/admin-api/internal/handler"
	"github.com/angkringan-pos/admin-api/internal/model"
)

// --- Mock upstream ---

type mockReviewAPI struct {
	reviews []model.Review

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	nextID int
}

func (m *mockReviewAPI) ListReviews(_ context.Context) ([]model.Review, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.Review, len(m.reviews))
	for i, r := range m.reviews {
		out[i] = model.CloneReview(r)
	}
	return out, nil
}

func (m *mockReviewAPI) CreateReview(_ context.Context, r model.Review) (model.Review, error) {
	if m.createErr != nil {
		return model.Review{}, m.createErr
	}
	m.nextID++
	r.ID = "r" + strconv.Itoa(m.nextID)
	m.reviews = append(m.reviews, r)
	return r, nil
}

func (m *mockReviewAPI) UpdateReview(_ context.Context, id string, r model.Review) (model.Review, error) {
	if m.updateErr != nil {
		return model.Review{}, m.updateErr
	}
	for i, existing := range m.reviews {
		if existing.ID == id {
			r.ID = id
			m.reviews[i] = r
			return r, nil
		}
	}
	return model.Review{}, errors.New("not found")
}

func (m *mockReviewAPI) DeleteReview(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, existing := range m.reviews {
		if existing.ID == id {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

// --- Helpers ---

func setupReviewRouter(api *mockReviewAPI) *chi.Mux {
	h := handler.NewReviewHandler(api)
	r := chi.NewRouter()
	r.Route("/screens/reviews", h.RegisterRoutes)
	return r
}

func seedReviews() []model.Review {
	return []model.Review{
		{
			ID:         "r1",
			Account:    &model.AccountRef{ID: "u1", Fullname: "Andi Wijaya"},
			Menu:       &model.MenuRef{ID: "m1", MenuName: "Nasi Goreng"},
			ReviewRate: 5,
			ReviewDesc: "Enak sekali",
		},
		{
			ID:         "r2",
			Account:    nil, // account deleted since the review was written
			Menu:       &model.MenuRef{ID: "m2", MenuName: "Es Teh"},
			ReviewRate: 3,
			ReviewDesc: "Kurang manis",
		},
	}
}

// --- Tests ---

func TestReviewList_RendersDeletedRefsAsEmpty(t *testing.T) {
	api := &mockReviewAPI{reviews: seedReviews()}
	router := setupReviewRouter(api)

	rr := doRequest(t, router, "GET", "/screens/reviews", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}

	resp := decodePage(t, rr)
	if resp.Total != 2 {
		t.Fatalf("total: got %d, want 2", resp.Total)
	}
	if resp.Items[0]["account_name"] != "Andi Wijaya" {
		t.Errorf("account_name: got %v", resp.Items[0]["account_name"])
	}
	// The orphaned review still renders, with an empty account name.
	if resp.Items[1]["account_name"] != "" {
		t.Errorf("orphaned account_name: got %v, want empty", resp.Items[1]["account_name"])
	}
}

func TestReviewList_SearchByDescription(t *testing.T) {
	api := &mockReviewAPI{reviews: seedReviews()}
	router := setupReviewRouter(api)

	rr := doRequest(t, router, "GET", "/screens/reviews?search=manis", nil)
	resp := decodePage(t, rr)

	if resp.Total != 1 || resp.Items[0]["_id"] != "r2" {
		t.Errorf("unexpected search result: %+v", resp.Items)
	}
}

func TestReviewCreate_Valid(t *testing.T) {
	api := &mockReviewAPI{}
	router := setupReviewRouter(api)

	rr := doRequest(t, router, "POST", "/screens/reviews", map[string]interface{}{
		"accountId":   "u1",
		"menuId":      "m1",
		"review_rate": 4,
		"review_desc": "Mantap",
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	if len(api.reviews) != 1 {
		t.Fatalf("reviews stored: got %d, want 1", len(api.reviews))
	}
	stored := api.reviews[0]
	if stored.Account == nil || stored.Account.ID != "u1" {
		t.Errorf("account ref not set: %+v", stored.Account)
	}
	if stored.ReviewRate != 4 || stored.ReviewDesc != "Mantap" {
		t.Errorf("unexpected stored review: %+v", stored)
	}
}

func TestReviewUpdate_Valid(t *testing.T) {
	api := &mockReviewAPI{reviews: seedReviews()}
	router := setupReviewRouter(api)

	rr := doRequest(t, router, "PUT", "/screens/reviews/r1", map[string]interface{}{
		"review_rate": 2,
		"review_desc": "Sudah tidak seenak dulu",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	resp := decodeObject(t, rr)
	if resp["review_rate"] != float64(2) {
		t.Errorf("review_rate: got %v, want 2", resp["review_rate"])
	}
}

func TestReviewUpdate_NotFound(t *testing.T) {
	api := &mockReviewAPI{reviews: seedReviews()}
	router := setupReviewRouter(api)

	rr := doRequest(t, router, "PUT", "/screens/reviews/missing", map[string]interface{}{
		"review_rate": 1,
	})

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestReviewDelete_Valid(t *testing.T) {
	api := &mockReviewAPI{reviews: seedReviews()}
	router := setupReviewRouter(api)

	rr := doRequest(t, router, "DELETE", "/screens/reviews/r2", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNoContent)
	}
	if len(api.reviews) != 1 {
		t.Errorf("reviews remaining: got %d, want 1", len(api.reviews))
	}
}
