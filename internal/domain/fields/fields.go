// Package fields converts the string encodings used by the ufcstats exports
// into numbers. Every parser is total: malformed input yields a fallback
// value, never an error.
package fields

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Status tells whether a Value came from the input or from the fallback.
type Status uint8

const (
	Parsed Status = iota
	Fallback
)

// String implements fmt.Stringer.
func (s Status) String() string {
	if s == Parsed {
		return "parsed"
	}
	return "fallback"
}

// Value is a parse result. Get always returns a usable value.
type Value[T any] struct {
	v      T
	status Status
}

func ok[T any](v T) Value[T]       { return Value[T]{v: v, status: Parsed} }
func fallback[T any](v T) Value[T] { return Value[T]{v: v, status: Fallback} }

func (p Value[T]) Get() T         { return p.v }
func (p Value[T]) Status() Status { return p.status }
func (p Value[T]) OK() bool       { return p.status == Parsed }

// Ratio is a "landed of attempted" pair.
type Ratio struct {
	Landed    int
	Attempted int
}

const (
	// sentinel used by the exports for "no value"
	missing = "---"

	// RoundSeconds is the nominal length of a completed round.
	RoundSeconds = 300

	// EventDateLayout matches "December 13, 2025".
	EventDateLayout = "January 2, 2006"
)

// UnknownDate sorts before every real event.
var UnknownDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseRatio parses "<int> of <int>".
func ParseRatio(s string) Value[Ratio] {
	s = strings.TrimSpace(s)
	if s == "" || s == missing {
		return fallback(Ratio{})
	}
	parts := strings.Split(s, "of")
	if len(parts) != 2 {
		return fallback(Ratio{})
	}
	landed, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fallback(Ratio{})
	}
	attempted, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return fallback(Ratio{})
	}
	return ok(Ratio{Landed: landed, Attempted: attempted})
}

// ParseClock parses "mm:ss" into seconds.
func ParseClock(s string) Value[int] {
	s = strings.TrimSpace(s)
	if s == "" || s == missing {
		return fallback(0)
	}
	mm, ss, found := strings.Cut(s, ":")
	if !found {
		return fallback(0)
	}
	m, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil {
		return fallback(0)
	}
	sec, err := strconv.Atoi(strings.TrimSpace(ss))
	if err != nil {
		return fallback(0)
	}
	return ok(m*60 + sec)
}

// ParseCount parses an integer count. The exports sometimes write counts as
// floats ("1.0"); those are truncated toward zero.
func ParseCount(s string) Value[int] {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback(0)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return ok(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) > 1<<53 {
		return fallback(0)
	}
	return ok(int(f))
}

// ParseEventDate parses the events source DATE column.
func ParseEventDate(s string) Value[time.Time] {
	t, err := time.Parse(EventDateLayout, strings.TrimSpace(s))
	if err != nil {
		return fallback(UnknownDate)
	}
	return ok(t)
}

// FightDuration returns the elapsed seconds of a fight that ended in
// finishRound at finishClock. Completed rounds count RoundSeconds each.
func FightDuration(finishRound int, finishClock string) int {
	if finishRound <= 0 {
		return 0
	}
	return (finishRound-1)*RoundSeconds + ParseClock(finishClock).Get()
}
