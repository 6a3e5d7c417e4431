package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dagmal/deal-service/internal/domain"
)

// DealView is a deal as the app renders it: the stored record plus the
// values derived at one moment.
type DealView struct {
	ID                 uuid.UUID `json:"id"`
	RestaurantID       uuid.UUID `json:"restaurant_id"`
	RestaurantName     string    `json:"restaurant_name,omitempty"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	IsActive           bool      `json:"is_active"`
	AvailableDays      []string  `json:"available_days"`
	StartTime          string    `json:"start_time"`
	EndTime            string    `json:"end_time"`
	DiscountPercentage float64   `json:"discount_percentage"`
	ClaimedCount       int       `json:"claimed_count"`
	TotalLimit         *int      `json:"total_limit,omitempty"`
	Remaining          *int      `json:"remaining,omitempty"`
	OriginalPrice      *int64    `json:"original_price,omitempty"`
	FinalPrice         *int64    `json:"final_price,omitempty"`

	OriginalPriceFormatted string  `json:"original_price_formatted,omitempty"`
	FinalPriceFormatted    string  `json:"final_price_formatted,omitempty"`
	Savings                int64   `json:"savings"`
	IsClaimableToday       bool    `json:"is_claimable_today"`
	IsCurrentlyAvailable   bool    `json:"is_currently_available"`
	TimeUntilStart         string  `json:"time_until_start,omitempty"`
	TimeUntilEnd           string  `json:"time_until_end,omitempty"`
	PopularityScore        float64 `json:"popularity_score"`
}

// NewDealView derives the view of d at the given moment using weights w.
func NewDealView(d domain.Deal, w domain.Weights, at time.Time) DealView {
	at = domain.ResolveMoment(at)
	v := DealView{
		ID:                   d.ID,
		RestaurantID:         d.RestaurantID,
		RestaurantName:       d.RestaurantName,
		Title:                d.Title,
		Description:          d.Description,
		IsActive:             d.IsActive,
		AvailableDays:        d.AvailableDays.Names(),
		StartTime:            d.StartTime,
		EndTime:              d.EndTime,
		DiscountPercentage:   d.DiscountPercentage,
		ClaimedCount:         d.ClaimedCount,
		TotalLimit:           d.TotalLimit,
		OriginalPrice:        d.OriginalPrice,
		FinalPrice:           d.FinalPrice,
		Savings:              domain.Savings(d.OriginalPrice, d.FinalPrice, 1),
		IsClaimableToday:     domain.IsClaimableToday(d, at),
		IsCurrentlyAvailable: domain.IsCurrentlyAvailable(d, at),
		PopularityScore:      w.Score(d, at),
	}
	if n, ok := d.Remaining(); ok {
		v.Remaining = &n
	}
	if d.OriginalPrice != nil {
		v.OriginalPriceFormatted = domain.FormatPrice(*d.OriginalPrice)
	}
	if d.FinalPrice != nil {
		v.FinalPriceFormatted = domain.FormatPrice(*d.FinalPrice)
	}
	v.TimeUntilStart, _ = domain.TimeUntilStart(d, at)
	v.TimeUntilEnd, _ = domain.TimeUntilEnd(d, at)
	return v
}

type Availability string

const (
	AvailabilityAll         Availability = "all"
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
)

type ListDealsRequest struct {
	RestaurantID *uuid.UUID
	Availability Availability
	MinDiscount  float64
	At           time.Time
}

type DealStats struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Unavailable int `json:"unavailable"`
}

// CreateDealRequest registers a deal from the business dashboard.
// When FinalPrice is omitted it is derived from OriginalPrice, Discount and
// DiscountMode; DiscountPercentage is derived from the two prices when omitted.
type CreateDealRequest struct {
	RestaurantID       string   `json:"restaurant_id" validate:"required,uuid"`
	Title              string   `json:"title" validate:"required,max=120"`
	Description        string   `json:"description" validate:"max=2000"`
	IsActive           *bool    `json:"is_active"`
	AvailableDays      []string `json:"available_days" validate:"dive,weekday"`
	StartTime          string   `json:"start_time" validate:"required,hhmm"`
	EndTime            string   `json:"end_time" validate:"required,hhmm"`
	DiscountPercentage *float64 `json:"discount_percentage" validate:"omitempty,gte=0,lte=100"`
	TotalLimit         *int     `json:"total_limit" validate:"omitempty,gt=0"`
	OriginalPrice      *int64   `json:"original_price" validate:"omitempty,gte=0"`
	FinalPrice         *int64   `json:"final_price" validate:"omitempty,gte=0"`
	Discount           float64  `json:"discount" validate:"gte=0"`
	DiscountMode       string   `json:"discount_mode" validate:"omitempty,oneof=amount flat percent percentage"`
}
