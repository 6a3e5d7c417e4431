package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dagmal/deal-service/internal/models"
)

type DealHandler struct {
	service Service
}

func NewDealHandler(svc Service) *DealHandler {
	return &DealHandler{service: svc}
}

// ListDeals handles GET /deals
// query: restaurant_id, availability (all|available|unavailable), min_discount, at
func (h *DealHandler) ListDeals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	at, err := parseMoment(q.Get("at"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid at; use RFC3339")
		return
	}
	req := models.ListDealsRequest{
		Availability: models.Availability(q.Get("availability")),
		At:           at,
	}
	if s := q.Get("restaurant_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid restaurant_id")
			return
		}
		req.RestaurantID = &id
	}
	if s := q.Get("min_discount"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid min_discount")
			return
		}
		req.MinDiscount = f
	}

	deals, err := h.service.ListDeals(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"deals": deals})
}

// PopularDeals handles GET /deals/popular?count=&at=
func (h *DealHandler) PopularDeals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	at, err := parseMoment(q.Get("at"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid at; use RFC3339")
		return
	}
	count := 0
	if s := q.Get("count"); s != "" {
		if count, err = strconv.Atoi(s); err != nil {
			writeError(w, http.StatusBadRequest, "invalid count")
			return
		}
	}

	deals, err := h.service.PopularDeals(r.Context(), count, at)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"deals": deals})
}

// Stats handles GET /deals/stats?at=
func (h *DealHandler) Stats(w http.ResponseWriter, r *http.Request) {
	at, err := parseMoment(r.URL.Query().Get("at"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid at; use RFC3339")
		return
	}
	st, err := h.service.Stats(r.Context(), at)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// GetDeal handles GET /deals/{id}?at=
func (h *DealHandler) GetDeal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid deal id")
		return
	}
	at, err := parseMoment(r.URL.Query().Get("at"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid at; use RFC3339")
		return
	}
	d, err := h.service.GetDeal(r.Context(), id, at)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ClaimDeal handles POST /deals/{id}/claim
func (h *DealHandler) ClaimDeal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid deal id")
		return
	}
	// claims are always judged at the server clock
	var req models.ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	req.DealID = id

	res, err := h.service.ClaimDeal(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Quote handles POST /pricing/quote
func (h *DealHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	res, err := h.service.Quote(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// CreateDeal handles POST /admin/deals
func (h *DealHandler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	d, err := h.service.CreateDeal(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}
