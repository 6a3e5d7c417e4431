package domain

import (
	"errors"
	"testing"
	"time"
)

func TestResolveMoment(t *testing.T) {
	fixed := time.Date(2026, 2, 12, 7, 5, 0, 0, time.UTC)
	restore := SetClock(FixedClock{Time: fixed})
	defer restore()

	if got := ResolveMoment(time.Time{}); !got.Equal(fixed) {
		t.Errorf("zero moment: want %v, got %v", fixed, got)
	}
	explicit := fixed.Add(3 * time.Hour)
	if got := ResolveMoment(explicit); !got.Equal(explicit) {
		t.Errorf("explicit moment: want %v, got %v", explicit, got)
	}
}

func TestSetClock_Restore(t *testing.T) {
	a := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.Add(time.Hour)
	restoreA := SetClock(ClockFunc(func() time.Time { return a }))
	restoreB := SetClock(FixedClock{Time: b})
	if !CurrentTime().Equal(b) {
		t.Errorf("want %v, got %v", b, CurrentTime())
	}
	restoreB()
	if !CurrentTime().Equal(a) {
		t.Errorf("after restore: want %v, got %v", a, CurrentTime())
	}
	restoreA()
}

func TestClockString(t *testing.T) {
	if got := ClockString(time.Date(2026, 2, 12, 7, 5, 59, 0, time.UTC)); got != "07:05" {
		t.Errorf("want 07:05, got %s", got)
	}
	oslo := time.FixedZone("CET", 3600)
	if got := ClockString(time.Date(2026, 2, 12, 23, 30, 0, 0, time.UTC).In(oslo)); got != "00:30" {
		t.Errorf("local time: want 00:30, got %s", got)
	}
}

func TestWeekdayName(t *testing.T) {
	start := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC) // Sunday
	want := []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
	for i, w := range want {
		if got := WeekdayName(start.AddDate(0, 0, i)); got != w {
			t.Errorf("day %d: want %s, got %s", i, w, got)
		}
	}
}

func TestParseDays(t *testing.T) {
	set, err := ParseDays([]string{"Friday", "monday", "MONDAY"})
	if err != nil {
		t.Fatal(err)
	}
	if got := set.Names(); len(got) != 2 || got[0] != "monday" || got[1] != "friday" {
		t.Errorf("names: got %v", got)
	}
	if !set.Has(time.Friday) || set.Has(time.Sunday) {
		t.Error("membership wrong")
	}

	empty, err := ParseDays(nil)
	if err != nil || !empty.Everyday() {
		t.Errorf("no days must mean every day, got %v (%v)", empty, err)
	}

	if _, err := ParseDays([]string{"mandag"}); !errors.Is(err, ErrUnknownWeekday) {
		t.Errorf("want ErrUnknownWeekday, got %v", err)
	}
}

func TestRemaining(t *testing.T) {
	d := Deal{ClaimedCount: 7}
	if _, ok := d.Remaining(); ok {
		t.Error("no limit must report ok=false")
	}
	limit := 5
	d.TotalLimit = &limit
	if n, ok := d.Remaining(); !ok || n != 0 {
		t.Errorf("over limit: want 0, got %d", n)
	}
	d.ClaimedCount = 2
	if n, _ := d.Remaining(); n != 3 {
		t.Errorf("want 3, got %d", n)
	}
}
