// Package model contains domain models passed between layers.
package model

import "time"

// FightKey joins results, stats and (through Event) event dates.
// Both parts are compared with exact string equality on trimmed values.
type FightKey struct {
	Event string
	Bout  string
}

// EventRecord is one row of the events source.
type EventRecord struct {
	Name string
	Date time.Time
	// DateKnown is false when the DATE cell could not be parsed.
	DateKnown bool
}

// ResultRecord is one row of the results source.
type ResultRecord struct {
	Key         FightKey
	Outcome     string
	Method      string
	Round       int // 1-based finishing round; 0 means no finish recorded
	Time        string
	WeightClass string
}

// StatRow is one per-round line of the stats source for a single fighter.
type StatRow struct {
	Key     FightKey
	Fighter string
	Round   string

	Knockdowns         string
	SubmissionAttempts string
	SigStrikes         string // "L of A"
	Takedowns          string // "L of A"
	Control            string // "mm:ss"
}

// Aggregate holds the raw sums over a resolved set of fights.
type Aggregate struct {
	Fights              int
	DurationSeconds     int
	Knockdowns          int
	SubmissionAttempts  int
	SigStrikesLanded    int
	SigStrikesAttempted int
	TakedownsLanded     int
	TakedownsAttempted  int
	ControlSeconds      int
}

// EventRow is an events source row as written in the export, before any parsing.
type EventRow struct {
	Name     string
	URL      string
	Date     string
	Location string
}
