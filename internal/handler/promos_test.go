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

type mockPromoAPI struct {
	promos []model.Promo

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	nextID int
}

func (m *mockPromoAPI) ListPromos(_ context.Context) ([]model.Promo, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.Promo, len(m.promos))
	copy(out, m.promos)
	return out, nil
}

func (m *mockPromoAPI) CreatePromo(_ context.Context, p model.Promo) (model.Promo, error) {
	if m.createErr != nil {
		return model.Promo{}, m.createErr
	}
	m.nextID++
	p.ID = "p" + strconv.Itoa(m.nextID)
	m.promos = append(m.promos, p)
	return p, nil
}

func (m *mockPromoAPI) UpdatePromo(_ context.Context, id string, p model.Promo) (model.Promo, error) {
	if m.updateErr != nil {
		return model.Promo{}, m.updateErr
	}
	for i, existing := range m.promos {
		if existing.ID == id {
			p.ID = id
			m.promos[i] = p
			return p, nil
		}
	}
	return model.Promo{}, errors.New("not found")
}

func (m *mockPromoAPI) DeletePromo(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, existing := range m.promos {
		if existing.ID == id {
			m.promos = append(m.promos[:i], m.promos[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

// --- Helpers ---

func setupPromoRouter(api *mockPromoAPI) *chi.Mux {
	h := handler.NewPromoHandler(api)
	r := chi.NewRouter()
	r.Route("/screens/promos", h.RegisterRoutes)
	return r
}

func seedPromos(t *testing.T) []model.Promo {
	t.Helper()
	return []model.Promo{
		{ID: "p1", PromoCode: "HEMAT10", PromoPrice: dec(t, "1000"), PromoStatus: true},
		{ID: "p2", PromoCode: "LEBARAN", PromoPrice: dec(t, "5000"), PromoStatus: false},
		{ID: "p3", PromoCode: "HEMAT20", PromoPrice: dec(t, "2000"), PromoStatus: true},
	}
}

// --- Tests ---

func TestPromoList_FilterActive(t *testing.T) {
	api := &mockPromoAPI{promos: seedPromos(t)}
	router := setupPromoRouter(api)

	rr := doRequest(t, router, "GET", "/screens/promos?filter=active", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}

	resp := decodePage(t, rr)
	if resp.Total != 2 {
		t.Errorf("total: got %d, want 2 active", resp.Total)
	}
}

func TestPromoList_FilterInactive(t *testing.T) {
	api := &mockPromoAPI{promos: seedPromos(t)}
	router := setupPromoRouter(api)

	rr := doRequest(t, router, "GET", "/screens/promos?filter=inactive", nil)
	resp := decodePage(t, rr)

	if resp.Total != 1 || resp.Items[0]["promo_code"] != "LEBARAN" {
		t.Errorf("unexpected inactive result: %+v", resp.Items)
	}
}

func TestPromoList_SearchByCode(t *testing.T) {
	api := &mockPromoAPI{promos: seedPromos(t)}
	router := setupPromoRouter(api)

	rr := doRequest(t, router, "GET", "/screens/promos?search=hemat", nil)
	resp := decodePage(t, rr)

	if resp.Total != 2 {
		t.Errorf("total: got %d, want 2", resp.Total)
	}
}

func TestPromoCreate_Valid(t *testing.T) {
	api := &mockPromoAPI{}
	router := setupPromoRouter(api)

	rr := doRequest(t, router, "POST", "/screens/promos", map[string]interface{}{
		"promo_code":   "BARU",
		"promo_price":  "1500",
		"promo_status": true,
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	resp := decodeObject(t, rr)
	if resp["promo_code"] != "BARU" || resp["promo_price"] != "1500.00" || resp["promo_status"] != true {
		t.Errorf("unexpected created promo: %+v", resp)
	}
}

func TestPromoUpdate_TogglesStatus(t *testing.T) {
	api := &mockPromoAPI{promos: seedPromos(t)}
	router := setupPromoRouter(api)

	rr := doRequest(t, router, "PUT", "/screens/promos/p1", map[string]interface{}{
		"promo_code":   "HEMAT10",
		"promo_price":  "1000",
		"promo_status": false,
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	resp := decodeObject(t, rr)
	if resp["promo_status"] != false {
		t.Errorf("promo_status: got %v, want false", resp["promo_status"])
	}
}

func TestPromoDelete_Valid(t *testing.T) {
	api := &mockPromoAPI{promos: seedPromos(t)}
	router := setupPromoRouter(api)

	rr := doRequest(t, router, "DELETE", "/screens/promos/p2", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNoContent)
	}
	if len(api.promos) != 2 {
		t.Errorf("promos remaining: got %d, want 2", len(api.promos))
	}
}
