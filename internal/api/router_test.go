package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dagmal/deal-service/internal/models"
	"github.com/dagmal/deal-service/internal/service"
)

type mockService struct {
	listReq    models.ListDealsRequest
	popularN   int
	popularAt  time.Time
	claimReq   models.ClaimRequest
	claimErr   error
	getErr     error
	quoteReq   models.QuoteRequest
	restaurant models.CreateRestaurantRequest
}

func (m *mockService) ListDeals(ctx context.Context, req models.ListDealsRequest) ([]models.DealView, error) {
	m.listReq = req
	return []models.DealView{{Title: "lunch"}}, nil
}

func (m *mockService) PopularDeals(ctx context.Context, count int, at time.Time) ([]models.DealView, error) {
	m.popularN, m.popularAt = count, at
	if count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative", service.ErrInvalidRequest)
	}
	return []models.DealView{}, nil
}

func (m *mockService) Stats(ctx context.Context, at time.Time) (models.DealStats, error) {
	return models.DealStats{Total: 3, Available: 1, Unavailable: 2}, nil
}

func (m *mockService) GetDeal(ctx context.Context, id uuid.UUID, at time.Time) (models.DealView, error) {
	if m.getErr != nil {
		return models.DealView{}, m.getErr
	}
	return models.DealView{ID: id}, nil
}

func (m *mockService) ClaimDeal(ctx context.Context, req models.ClaimRequest) (models.ClaimResult, error) {
	m.claimReq = req
	if m.claimErr != nil {
		return models.ClaimResult{}, m.claimErr
	}
	return models.ClaimResult{Claim: models.Claim{DealID: req.DealID, UserID: req.UserID}}, nil
}

func (m *mockService) Quote(req models.QuoteRequest) (models.QuoteResult, error) {
	m.quoteReq = req
	return models.QuoteResult{Quantity: 1}, nil
}

func (m *mockService) CreateDeal(ctx context.Context, req models.CreateDealRequest) (models.DealView, error) {
	return models.DealView{}, fmt.Errorf("%w: start_time: hhmm", service.ErrInvalidRequest)
}

func (m *mockService) CreateRestaurant(ctx context.Context, req models.CreateRestaurantRequest) (models.Restaurant, error) {
	m.restaurant = req
	return models.Restaurant{ID: uuid.New(), Name: req.Name}, nil
}

func (m *mockService) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return nil, nil
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return out
}

func TestListDeals_ParsesQuery(t *testing.T) {
	svc := &mockService{}
	h := NewRouter(svc)
	rid := uuid.New()

	rr := do(t, h, http.MethodGet, "/deals?restaurant_id="+rid.String()+"&availability=available&min_discount=25&at=2026-02-12T12:00:00Z", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rr.Code, rr.Body)
	}
	if svc.listReq.RestaurantID == nil || *svc.listReq.RestaurantID != rid {
		t.Errorf("restaurant_id not passed: %+v", svc.listReq)
	}
	if svc.listReq.Availability != models.AvailabilityAvailable || svc.listReq.MinDiscount != 25 {
		t.Errorf("filters not passed: %+v", svc.listReq)
	}
	if !svc.listReq.At.Equal(time.Date(2026, 2, 12, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("at: got %v", svc.listReq.At)
	}
	if deals, ok := decode(t, rr)["deals"].([]interface{}); !ok || len(deals) != 1 {
		t.Errorf("body: %s", rr.Body)
	}
}

func TestListDeals_BadQuery(t *testing.T) {
	h := NewRouter(&mockService{})
	for _, q := range []string{"restaurant_id=nope", "min_discount=lots", "at=yesterday"} {
		if rr := do(t, h, http.MethodGet, "/deals?"+q, ""); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: want 400, got %d", q, rr.Code)
		}
	}
}

func TestPopularDeals(t *testing.T) {
	svc := &mockService{}
	h := NewRouter(svc)

	if rr := do(t, h, http.MethodGet, "/deals/popular", ""); rr.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rr.Code)
	}
	if svc.popularN != 0 || !svc.popularAt.IsZero() {
		t.Errorf("defaults: count %d at %v", svc.popularN, svc.popularAt)
	}

	rr := do(t, h, http.MethodGet, "/deals/popular?count=-1", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rr.Code)
	}
	if body := decode(t, rr); body["error"] != "invalid_request" || body["detail"] != "count must not be negative" {
		t.Errorf("body: %v", body)
	}
}

func TestStats(t *testing.T) {
	rr := do(t, NewRouter(&mockService{}), http.MethodGet, "/deals/stats", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rr.Code)
	}
	if body := decode(t, rr); body["available"] != float64(1) {
		t.Errorf("body: %v", body)
	}
}

func TestGetDeal(t *testing.T) {
	svc := &mockService{}
	h := NewRouter(svc)

	if rr := do(t, h, http.MethodGet, "/deals/not-a-uuid", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("bad id: want 400, got %d", rr.Code)
	}
	id := uuid.New()
	if rr := do(t, h, http.MethodGet, "/deals/"+id.String(), ""); rr.Code != http.StatusOK {
		t.Errorf("want 200, got %d", rr.Code)
	}
	svc.getErr = service.ErrDealNotFound
	rr := do(t, h, http.MethodGet, "/deals/"+id.String(), "")
	if rr.Code != http.StatusNotFound || decode(t, rr)["error"] != "deal_not_found" {
		t.Errorf("want 404 deal_not_found, got %d %s", rr.Code, rr.Body)
	}
}

func TestClaimDeal(t *testing.T) {
	svc := &mockService{}
	h := NewRouter(svc)
	id := uuid.New()

	rr := do(t, h, http.MethodPost, "/deals/"+id.String()+"/claim", `{"user_id":"u1","quantity":2,"timestamp":"2026-02-12T09:00:00Z"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", rr.Code, rr.Body)
	}
	// a client-supplied timestamp has no way into the claim
	if want := (models.ClaimRequest{DealID: id, UserID: "u1", Quantity: 2}); svc.claimReq != want {
		t.Errorf("request: want %+v, got %+v", want, svc.claimReq)
	}

	if rr := do(t, h, http.MethodPost, "/deals/"+id.String()+"/claim", `{`); rr.Code != http.StatusBadRequest {
		t.Errorf("bad body: want 400, got %d", rr.Code)
	}
}

func TestClaimDeal_Conflicts(t *testing.T) {
	for _, err := range []error{service.ErrDealNotClaimable, service.ErrDealSoldOut, service.ErrAlreadyClaimed} {
		svc := &mockService{claimErr: err}
		rr := do(t, NewRouter(svc), http.MethodPost, "/deals/"+uuid.NewString()+"/claim", `{"user_id":"u1"}`)
		if rr.Code != http.StatusConflict {
			t.Errorf("%v: want 409, got %d", err, rr.Code)
		}
		if got := decode(t, rr)["error"]; got != err.Error() {
			t.Errorf("want %q, got %v", err, got)
		}
	}
}

func TestClaimDeal_InternalError(t *testing.T) {
	svc := &mockService{claimErr: fmt.Errorf("begin tx: %w", context.DeadlineExceeded)}
	rr := do(t, NewRouter(svc), http.MethodPost, "/deals/"+uuid.NewString()+"/claim", `{"user_id":"u1"}`)
	if rr.Code != http.StatusInternalServerError || decode(t, rr)["error"] != "internal_error" {
		t.Errorf("want 500 internal_error, got %d %s", rr.Code, rr.Body)
	}
}

func TestQuote(t *testing.T) {
	svc := &mockService{}
	rr := do(t, NewRouter(svc), http.MethodPost, "/pricing/quote", `{"original_price":20000,"discount":25,"mode":"percent"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rr.Code)
	}
	if svc.quoteReq.OriginalPrice == nil || *svc.quoteReq.OriginalPrice != 20000 || svc.quoteReq.Mode != "percent" {
		t.Errorf("request: %+v", svc.quoteReq)
	}
}

func TestAdminEndpoints(t *testing.T) {
	svc := &mockService{}
	h := NewRouter(svc)

	rr := do(t, h, http.MethodPost, "/admin/restaurants", `{"name":"Grillen","category":"burger"}`)
	if rr.Code != http.StatusCreated || svc.restaurant.Name != "Grillen" {
		t.Errorf("restaurant: %d %+v", rr.Code, svc.restaurant)
	}

	rr = do(t, h, http.MethodPost, "/admin/deals", `{"title":"x"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("deal: want 400, got %d", rr.Code)
	}
	if body := decode(t, rr); body["detail"] != "start_time: hhmm" {
		t.Errorf("detail: %v", body)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := NewRouter(&mockService{})
	if rr := do(t, h, http.MethodGet, "/health", ""); rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Errorf("health: %d %q", rr.Code, rr.Body)
	}
	do(t, h, http.MethodGet, "/deals/stats", "")
	rr := do(t, h, http.MethodGet, "/metrics", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "dagmal_http_requests_total") {
		t.Errorf("metrics: %d", rr.Code)
	}
}
