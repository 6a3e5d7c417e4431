package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dagmal/deal-service/internal/models"
)

type RestaurantHandler struct {
	service Service
}

func NewRestaurantHandler(svc Service) *RestaurantHandler {
	return &RestaurantHandler{service: svc}
}

// ListRestaurants handles GET /restaurants
func (h *RestaurantHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	rs, err := h.service.ListRestaurants(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"restaurants": rs})
}

// CreateRestaurant handles POST /admin/restaurants
func (h *RestaurantHandler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	rest, err := h.service.CreateRestaurant(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}
