package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dagmal/deal-service/internal/domain"
	"github.com/dagmal/deal-service/internal/models"
)

func dealRequest(restaurantID uuid.UUID) models.CreateDealRequest {
	orig := int64(18900)
	return models.CreateDealRequest{
		RestaurantID:  restaurantID.String(),
		Title:         " Burger + brus ",
		AvailableDays: []string{"Thursday", "FRIDAY"},
		StartTime:     "15:00",
		EndTime:       "20:00",
		OriginalPrice: &orig,
		Discount:      30,
		DiscountMode:  "percent",
	}
}

func TestBuildDeal_DerivesPrices(t *testing.T) {
	d, err := BuildDeal(dealRequest(uuid.New()))
	if err != nil {
		t.Fatal(err)
	}
	if d.FinalPrice == nil || *d.FinalPrice != 13230 {
		t.Errorf("final: got %v", d.FinalPrice)
	}
	if d.DiscountPercentage != 30 {
		t.Errorf("discount: got %v", d.DiscountPercentage)
	}
	if !d.IsActive || d.Title != "Burger + brus" {
		t.Errorf("defaults: got %+v", d)
	}
	if !d.AvailableDays.Has(time.Thursday) || !d.AvailableDays.Has(time.Friday) || d.AvailableDays.Has(time.Monday) {
		t.Errorf("days: got %v", d.AvailableDays.Names())
	}
}

func TestBuildDeal_AmountDiscount(t *testing.T) {
	req := dealRequest(uuid.New())
	req.DiscountMode = "amount"
	req.Discount = 4900
	d, err := BuildDeal(req)
	if err != nil {
		t.Fatal(err)
	}
	if *d.FinalPrice != 14000 {
		t.Errorf("final: got %d", *d.FinalPrice)
	}
	// 4900/18900 = 25.9%
	if d.DiscountPercentage != 26 {
		t.Errorf("discount: got %v", d.DiscountPercentage)
	}
}

func TestBuildDeal_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateDealRequest)
	}{
		{"overnight", func(r *models.CreateDealRequest) { r.StartTime, r.EndTime = "22:00", "02:00" }},
		{"bad day", func(r *models.CreateDealRequest) { r.AvailableDays = []string{"fredag"} }},
		{"final above original", func(r *models.CreateDealRequest) {
			f := int64(20000)
			r.FinalPrice = &f
		}},
		{"bad time", func(r *models.CreateDealRequest) { r.EndTime = "25:00" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dealRequest(uuid.New())
			tt.mutate(&req)
			if _, err := BuildDeal(req); !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("want ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestCreateDeal(t *testing.T) {
	svc, deals, restaurants := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateDeal(ctx, dealRequest(uuid.New())); !errors.Is(err, ErrRestaurantNotFound) {
		t.Fatalf("want ErrRestaurantNotFound, got %v", err)
	}

	r, err := svc.CreateRestaurant(ctx, models.CreateRestaurantRequest{Name: "Grillen", Category: "burger"})
	if err != nil {
		t.Fatal(err)
	}
	if len(restaurants.restaurants) != 1 {
		t.Fatalf("restaurant not stored")
	}

	svc.popular.Set([]domain.Deal{{Title: "stale"}}, thursdayAt(12, 0))
	v, err := svc.CreateDeal(ctx, dealRequest(r.ID))
	if err != nil {
		t.Fatal(err)
	}
	if v.RestaurantName != "Grillen" || len(deals.created) != 1 {
		t.Errorf("created: %+v", v)
	}
	if _, ok := svc.popular.Get(thursdayAt(12, 0)); ok {
		t.Error("creating a deal must invalidate the popular cache")
	}
}

func TestCreateRestaurant_Invalid(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.CreateRestaurant(context.Background(), models.CreateRestaurantRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("want ErrInvalidRequest, got %v", err)
	}
}
