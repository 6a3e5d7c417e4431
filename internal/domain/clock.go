package domain

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Clock provides the current moment for availability checks.
// Tests inject a FixedClock so evaluation is deterministic.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock. A nil Location means time.Local.
type RealClock struct {
	Location *time.Location
}

func (c RealClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same moment.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}

// ClockFunc adapts a zero-argument function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

var (
	clockMu      sync.RWMutex
	currentClock Clock = RealClock{}
)

// SetClock replaces the process-wide clock and returns a func restoring the
// previous one.
func SetClock(c Clock) (restore func()) {
	if c == nil {
		c = RealClock{}
	}
	clockMu.Lock()
	prev := currentClock
	currentClock = c
	clockMu.Unlock()
	return func() {
		clockMu.Lock()
		currentClock = prev
		clockMu.Unlock()
	}
}

// CurrentTime returns Now() of the process-wide clock.
func CurrentTime() time.Time {
	clockMu.RLock()
	c := currentClock
	clockMu.RUnlock()
	return c.Now()
}

// ResolveMoment returns at, or the current time when at is zero.
func ResolveMoment(at time.Time) time.Time {
	if at.IsZero() {
		return CurrentTime()
	}
	return at
}

// ClockString formats the local time of t as zero-padded "HH:MM".
func ClockString(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// WeekdayName returns the lowercase English name of t's weekday.
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// ShortClock keeps the HH:MM part of "HH:MM[:SS]". Shorter strings are
// returned unchanged.
func ShortClock(s string) string {
	if len(s) < 5 {
		return s
	}
	return s[:5]
}
