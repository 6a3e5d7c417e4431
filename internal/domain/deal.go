package domain

import (
	"time"

	"github.com/google/uuid"
)

// Deal is a time-windowed, discounted offer tied to a restaurant.
// Prices are in øre.
type Deal struct {
	ID                 uuid.UUID
	RestaurantID       uuid.UUID
	RestaurantName     string
	Title              string
	Description        string
	IsActive           bool
	AvailableDays      DaySet
	StartTime          string // HH:MM[:SS]
	EndTime            string // HH:MM[:SS]
	DiscountPercentage float64
	ClaimedCount       int
	TotalLimit         *int
	OriginalPrice      *int64
	FinalPrice         *int64
	CreatedAt          time.Time
}

// Remaining returns how many claims are left under TotalLimit.
// ok is false when the deal has no limit.
func (d Deal) Remaining() (n int, ok bool) {
	if d.TotalLimit == nil {
		return 0, false
	}
	n = *d.TotalLimit - d.ClaimedCount
	if n < 0 {
		n = 0
	}
	return n, true
}
