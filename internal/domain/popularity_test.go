package domain

import (
	"testing"
	"time"
)

func TestPopularityScore_Constants(t *testing.T) {
	at := tuesdayAt(12, 0)

	live := lunchDeal()
	live.DiscountPercentage = 10
	live.ClaimedCount = 4
	// 10*2 + 4*1.5 + 50
	if got := PopularityScore(live, at); got != 76 {
		t.Errorf("live: want 76, got %v", got)
	}

	closed := lunchDeal()
	closed.StartTime, closed.EndTime = "17:00", "20:00"
	closed.DiscountPercentage = 90
	closed.ClaimedCount = 100
	// 90*2 + 100*1.5
	if got := PopularityScore(closed, at); got != 330 {
		t.Errorf("closed: want 330, got %v", got)
	}

	if DiscountWeight != 2 || ClaimWeight != 1.5 || AvailabilityBonus != 50 {
		t.Error("ranking weights changed; update product documentation")
	}
}

func TestWeights_Custom(t *testing.T) {
	w := Weights{Discount: 1, Claims: 0, AvailabilityBonus: 1000}
	d := lunchDeal()
	d.DiscountPercentage = 30
	d.ClaimedCount = 99
	if got := w.Score(d, tuesdayAt(12, 0)); got != 1030 {
		t.Errorf("want 1030, got %v", got)
	}
}

func TestTopPopular(t *testing.T) {
	at := tuesdayAt(12, 0)
	mk := func(title string, discount float64, claims int) Deal {
		d := lunchDeal()
		d.Title = title
		d.DiscountPercentage = discount
		d.ClaimedCount = claims
		return d
	}
	deals := []Deal{
		mk("a", 10, 0),
		mk("b", 40, 0),
		mk("c", 10, 0),
		mk("d", 20, 10),
		mk("e", 10, 0),
	}

	top := TopPopular(deals, DefaultPopularCount, at)
	want := []string{"b", "d", "a"}
	if len(top) != len(want) {
		t.Fatalf("want %d deals, got %d", len(want), len(top))
	}
	for i, w := range want {
		if top[i].Title != w {
			t.Errorf("position %d: want %s, got %s", i, w, top[i].Title)
		}
	}
	if deals[0].Title != "a" || deals[1].Title != "b" {
		t.Error("input slice was reordered")
	}

	all := TopPopular(deals, 10, at)
	if len(all) != len(deals) {
		t.Errorf("count above len: want %d, got %d", len(deals), len(all))
	}
	if got := []string{all[2].Title, all[3].Title, all[4].Title}; got[0] != "a" || got[1] != "c" || got[2] != "e" {
		t.Errorf("ties must keep input order, got %v", got)
	}
	if len(TopPopular(deals, -1, at)) != 0 {
		t.Error("negative count must give no deals")
	}
}

func TestSortByAvailabilityThenDiscount(t *testing.T) {
	at := tuesdayAt(12, 0)
	mk := func(title string, discount float64, live bool) Deal {
		d := lunchDeal()
		d.Title = title
		d.DiscountPercentage = discount
		if !live {
			d.StartTime, d.EndTime = "18:00", "21:00"
		}
		return d
	}
	deals := []Deal{
		mk("ten-closed", 10, false),
		mk("fifty-live", 50, true),
		mk("five-live", 5, true),
	}
	got := SortByAvailabilityThenDiscount(deals, at)
	want := []string{"fifty-live", "five-live", "ten-closed"}
	for i, w := range want {
		if got[i].Title != w {
			t.Errorf("position %d: want %s, got %s", i, w, got[i].Title)
		}
	}
}

func TestSortByAvailabilityThenDiscount_Stable(t *testing.T) {
	at := tuesdayAt(12, 0)
	var deals []Deal
	for _, title := range []string{"x", "y", "z"} {
		d := lunchDeal()
		d.Title = title
		d.DiscountPercentage = 20
		deals = append(deals, d)
	}
	closed := lunchDeal()
	closed.Title = "closed"
	closed.DiscountPercentage = 99
	closed.AvailableDays = NewDaySet(time.Sunday)
	deals = append([]Deal{closed}, deals...)

	got := SortByAvailabilityThenDiscount(deals, at)
	want := []string{"x", "y", "z", "closed"}
	for i, w := range want {
		if got[i].Title != w {
			t.Errorf("position %d: want %s, got %s", i, w, got[i].Title)
		}
	}
}
