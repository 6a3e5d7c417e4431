package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dagmal/deal-service/internal/api/handlers"
	"github.com/dagmal/deal-service/internal/api/middleware"
)

// NewRouter builds the HTTP router for the deal-service
func NewRouter(svc handlers.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)

	dealHandler := handlers.NewDealHandler(svc)
	restaurantHandler := handlers.NewRestaurantHandler(svc)

	// Public deal endpoints
	r.Route("/deals", func(r chi.Router) {
		r.Get("/", dealHandler.ListDeals)
		r.Get("/popular", dealHandler.PopularDeals)
		r.Get("/stats", dealHandler.Stats)
		r.Get("/{id}", dealHandler.GetDeal)
		r.Post("/{id}/claim", dealHandler.ClaimDeal)
	})
	r.Post("/pricing/quote", dealHandler.Quote)
	r.Get("/restaurants", restaurantHandler.ListRestaurants)

	// Business dashboard endpoints
	r.Route("/admin", func(r chi.Router) {
		r.Post("/restaurants", restaurantHandler.CreateRestaurant)
		r.Post("/deals", dealHandler.CreateDeal)
	})

	r.Handle("/metrics", promhttp.Handler())

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
