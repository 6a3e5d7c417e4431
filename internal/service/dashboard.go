package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dagmal/deal-service/internal/domain"
	"github.com/dagmal/deal-service/internal/models"
)

// Business dashboard operations: registering restaurants and their deals.

func (s *DealService) CreateRestaurant(ctx context.Context, req models.CreateRestaurantRequest) (models.Restaurant, error) {
	if err := models.Validate(req); err != nil {
		return models.Restaurant{}, invalid(err)
	}
	r := models.Restaurant{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Address:  strings.TrimSpace(req.Address),
		Category: strings.TrimSpace(req.Category),
	}
	if err := s.restaurants.CreateRestaurant(ctx, &r); err != nil {
		return models.Restaurant{}, fmt.Errorf("create restaurant: %w", err)
	}
	return r, nil
}

func (s *DealService) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	rs, err := s.restaurants.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return rs, nil
}

// BuildDeal turns a dashboard request into a deal record. It is the single
// place where day names and time windows from outside are checked.
func BuildDeal(req models.CreateDealRequest) (domain.Deal, error) {
	if err := models.Validate(req); err != nil {
		return domain.Deal{}, invalid(err)
	}
	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return domain.Deal{}, fmt.Errorf("%w: restaurant_id: %v", ErrInvalidRequest, err)
	}
	days, err := domain.ParseDays(req.AvailableDays)
	if err != nil {
		return domain.Deal{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err := domain.ValidateWindow(req.StartTime, req.EndTime); err != nil {
		return domain.Deal{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	mode, err := domain.ParseDiscountMode(req.DiscountMode)
	if err != nil {
		return domain.Deal{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	final := req.FinalPrice
	if final == nil {
		if p, ok := domain.FinalPrice(req.OriginalPrice, req.Discount, mode); ok {
			final = &p
		}
	}
	if req.OriginalPrice != nil && final != nil && *final > *req.OriginalPrice {
		return domain.Deal{}, fmt.Errorf("%w: final_price above original_price", ErrInvalidRequest)
	}

	var pct float64
	switch {
	case req.DiscountPercentage != nil:
		pct = *req.DiscountPercentage
	case req.OriginalPrice != nil && final != nil:
		pct = domain.DiscountPercentage(*req.OriginalPrice, *final)
	case mode == domain.ModePercent:
		pct = req.Discount
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return domain.Deal{
		ID:                 uuid.New(),
		RestaurantID:       restaurantID,
		Title:              strings.TrimSpace(req.Title),
		Description:        strings.TrimSpace(req.Description),
		IsActive:           active,
		AvailableDays:      days,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		DiscountPercentage: pct,
		TotalLimit:         req.TotalLimit,
		OriginalPrice:      req.OriginalPrice,
		FinalPrice:         final,
	}, nil
}

func (s *DealService) CreateDeal(ctx context.Context, req models.CreateDealRequest) (models.DealView, error) {
	d, err := BuildDeal(req)
	if err != nil {
		return models.DealView{}, err
	}
	r, err := s.restaurants.GetRestaurant(ctx, d.RestaurantID)
	if err != nil {
		return models.DealView{}, fmt.Errorf("get restaurant: %w", err)
	}
	if r == nil {
		return models.DealView{}, ErrRestaurantNotFound
	}
	d.RestaurantName = r.Name

	if err := s.deals.CreateDeal(ctx, &d); err != nil {
		return models.DealView{}, fmt.Errorf("create deal: %w", err)
	}
	if s.popular != nil {
		s.popular.Invalidate()
	}
	return models.NewDealView(d, s.weights, s.moment(d.CreatedAt)), nil
}
