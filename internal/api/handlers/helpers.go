package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dagmal/deal-service/internal/models"
	"github.com/dagmal/deal-service/internal/service"
)

// Service is what the HTTP layer needs from the deal service.
type Service interface {
	ListDeals(ctx context.Context, req models.ListDealsRequest) ([]models.DealView, error)
	PopularDeals(ctx context.Context, count int, at time.Time) ([]models.DealView, error)
	Stats(ctx context.Context, at time.Time) (models.DealStats, error)
	GetDeal(ctx context.Context, id uuid.UUID, at time.Time) (models.DealView, error)
	ClaimDeal(ctx context.Context, req models.ClaimRequest) (models.ClaimResult, error)
	Quote(req models.QuoteRequest) (models.QuoteResult, error)
	CreateDeal(ctx context.Context, req models.CreateDealRequest) (models.DealView, error)
	CreateRestaurant(ctx context.Context, req models.CreateRestaurantRequest) (models.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeServiceError maps service errors to status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var code int
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  service.ErrInvalidRequest.Error(),
			"detail": strings.TrimPrefix(err.Error(), service.ErrInvalidRequest.Error()+": "),
		})
		return
	case errors.Is(err, service.ErrDealNotFound), errors.Is(err, service.ErrRestaurantNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrDealNotClaimable), errors.Is(err, service.ErrDealSoldOut), errors.Is(err, service.ErrAlreadyClaimed):
		code = http.StatusConflict
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeError(w, code, err.Error())
}

// parseMoment reads an optional RFC3339 moment. Empty means now (zero time).
func parseMoment(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
