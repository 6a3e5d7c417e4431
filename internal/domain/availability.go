package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidClock    = errors.New("invalid time of day")
	ErrOvernightWindow = errors.New("end time before start time")
)

// Availability evaluation compares HH:MM strings lexicographically, so
// StartTime and EndTime must be zero-padded 24h values. Malformed strings give
// undefined (but non-panicking) results. A zero at means "now" as reported by
// the process-wide clock.

// IsScheduledFor reports whether the deal runs on at's weekday.
func IsScheduledFor(d Deal, at time.Time) bool {
	if d.AvailableDays.Everyday() {
		return true
	}
	return d.AvailableDays.Has(ResolveMoment(at).Weekday())
}

// IsClaimableToday reports whether the deal can still be claimed today:
// active, scheduled for the day, and its window has not closed. A deal that
// opens later today is claimable as a planned pickup.
func IsClaimableToday(d Deal, at time.Time) bool {
	at = ResolveMoment(at)
	if !d.IsActive || !IsScheduledFor(d, at) {
		return false
	}
	return ClockString(at) <= ShortClock(d.EndTime)
}

// IsCurrentlyAvailable reports whether the deal is redeemable right now,
// i.e. claimable today and inside its time window.
func IsCurrentlyAvailable(d Deal, at time.Time) bool {
	at = ResolveMoment(at)
	if !IsClaimableToday(d, at) {
		return false
	}
	return ClockString(at) >= ShortClock(d.StartTime)
}

// TimeUntilStart returns "Starter HH:MM" for a deal that is not live yet and
// opens later than at.
func TimeUntilStart(d Deal, at time.Time) (string, bool) {
	at = ResolveMoment(at)
	start := ShortClock(d.StartTime)
	if IsCurrentlyAvailable(d, at) || ClockString(at) >= start {
		return "", false
	}
	return "Starter " + start, true
}

// TimeUntilEnd returns "Slutter HH:MM" for a live deal.
func TimeUntilEnd(d Deal, at time.Time) (string, bool) {
	at = ResolveMoment(at)
	end := ShortClock(d.EndTime)
	if !IsCurrentlyAvailable(d, at) || ClockString(at) >= end {
		return "", false
	}
	return "Slutter " + end, true
}

func CountAvailable(deals []Deal, at time.Time) int {
	at = ResolveMoment(at)
	n := 0
	for _, d := range deals {
		if IsCurrentlyAvailable(d, at) {
			n++
		}
	}
	return n
}

func FilterAvailable(deals []Deal, at time.Time) []Deal {
	return filterDeals(deals, ResolveMoment(at), true)
}

func FilterUnavailable(deals []Deal, at time.Time) []Deal {
	return filterDeals(deals, ResolveMoment(at), false)
}

func filterDeals(deals []Deal, at time.Time, available bool) []Deal {
	out := make([]Deal, 0, len(deals))
	for _, d := range deals {
		if IsCurrentlyAvailable(d, at) == available {
			out = append(out, d)
		}
	}
	return out
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into hours and minutes.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	for _, p := range parts {
		if len(p) != 2 {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	sec := 0
	if len(parts) == 3 {
		if sec, err = strconv.Atoi(parts[2]); err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || sec < 0 || sec > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return hour, minute, nil
}

// ValidateWindow checks a deal window before it is stored. Overnight windows
// are not supported.
func ValidateWindow(start, end string) error {
	if _, _, err := ParseClock(start); err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	if _, _, err := ParseClock(end); err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if ShortClock(end) < ShortClock(start) {
		return ErrOvernightWindow
	}
	return nil
}
