package domain

import (
	"sort"
	"time"
)

// Ranking weights. These are product tuning values, not derived constants.
const (
	DiscountWeight    = 2.0
	ClaimWeight       = 1.5
	AvailabilityBonus = 50.0

	DefaultPopularCount = 3
)

// Weights combines discount, claims and live availability into one score.
type Weights struct {
	Discount          float64
	Claims            float64
	AvailabilityBonus float64
}

var DefaultWeights = Weights{
	Discount:          DiscountWeight,
	Claims:            ClaimWeight,
	AvailabilityBonus: AvailabilityBonus,
}

// Score returns discount*w.Discount + claims*w.Claims, plus the bonus when the
// deal is live at at.
func (w Weights) Score(d Deal, at time.Time) float64 {
	s := d.DiscountPercentage*w.Discount + float64(d.ClaimedCount)*w.Claims
	if IsCurrentlyAvailable(d, at) {
		s += w.AvailabilityBonus
	}
	return s
}

// TopPopular returns the count highest scoring deals. Equal scores keep their
// input order.
func (w Weights) TopPopular(deals []Deal, count int, at time.Time) []Deal {
	at = ResolveMoment(at)
	if count < 0 {
		count = 0
	}

	type scored struct {
		deal  Deal
		score float64
	}
	ranked := make([]scored, len(deals))
	for i, d := range deals {
		ranked[i] = scored{deal: d, score: w.Score(d, at)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if count > len(ranked) {
		count = len(ranked)
	}
	out := make([]Deal, count)
	for i := range out {
		out[i] = ranked[i].deal
	}
	return out
}

func PopularityScore(d Deal, at time.Time) float64 {
	return DefaultWeights.Score(d, at)
}

func TopPopular(deals []Deal, count int, at time.Time) []Deal {
	return DefaultWeights.TopPopular(deals, count, at)
}

// SortByAvailabilityThenDiscount orders live deals first, then by descending
// discount. It is stable and leaves deals untouched.
func SortByAvailabilityThenDiscount(deals []Deal, at time.Time) []Deal {
	at = ResolveMoment(at)

	type keyed struct {
		deal      Deal
		available bool
	}
	rows := make([]keyed, len(deals))
	for i, d := range deals {
		rows[i] = keyed{deal: d, available: IsCurrentlyAvailable(d, at)}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].available != rows[j].available {
			return rows[i].available
		}
		return rows[i].deal.DiscountPercentage > rows[j].deal.DiscountPercentage
	})

	out := make([]Deal, len(rows))
	for i, r := range rows {
		out[i] = r.deal
	}
	return out
}
