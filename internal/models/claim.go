package models

import (
	"time"

	"github.com/google/uuid"
)

type Claim struct {
	ID        uuid.UUID `json:"id"`
	DealID    uuid.UUID `json:"deal_id"`
	UserID    string    `json:"user_id"`
	Quantity  int       `json:"quantity"`
	Savings   int64     `json:"savings"`
	ClaimedAt time.Time `json:"claimed_at"`
}

type ClaimRequest struct {
	DealID   uuid.UUID `json:"-"`
	UserID   string    `json:"user_id" validate:"required,max=64"`
	Quantity int       `json:"quantity" validate:"gte=0,lte=20"`
}

type ClaimResult struct {
	Claim Claim `json:"claim"`
	// PlannedPickup is set when the deal was claimed before its window opened.
	PlannedPickup      bool   `json:"planned_pickup"`
	SavingsFormatted   string `json:"savings_formatted"`
	Remaining          *int   `json:"remaining,omitempty"`
	RedeemableFromTime string `json:"redeemable_from"`
}
