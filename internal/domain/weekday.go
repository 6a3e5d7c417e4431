package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownWeekday = errors.New("unknown weekday")

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DaySet is a set of weekdays. The empty set means every day.
type DaySet uint8

// ParseWeekday parses an English weekday name, ignoring case and surrounding
// whitespace.
func ParseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdaysByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, s)
	}
	return d, nil
}

// ParseDays builds a DaySet from stored day names.
func ParseDays(names []string) (DaySet, error) {
	var set DaySet
	for _, n := range names {
		d, err := ParseWeekday(n)
		if err != nil {
			return 0, err
		}
		set = set.With(d)
	}
	return set, nil
}

// NewDaySet returns a set holding the given weekdays.
func NewDaySet(days ...time.Weekday) DaySet {
	var set DaySet
	for _, d := range days {
		set = set.With(d)
	}
	return set
}

func (s DaySet) With(d time.Weekday) DaySet {
	return s | 1<<uint(d)
}

func (s DaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// Everyday reports whether the set places no restriction on the day.
func (s DaySet) Everyday() bool {
	return s == 0
}

// Names lists the days in Sunday-first order using lowercase names.
func (s DaySet) Names() []string {
	names := make([]string, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			names = append(names, strings.ToLower(d.String()))
		}
	}
	return names
}
