// Package fights resolves a fighter's most recent fights and sums their stats.
package fights

import (
	"time"

	"github.com/okian/ufcradar/internal/domain/model"
)

// Index is the read-only view of the three sources the resolver and
// aggregator need.
type Index interface {
	// EventDate returns the date of event and whether it parsed.
	EventDate(event string) (time.Time, bool)

	// Result returns the result row for key, if any.
	Result(key model.FightKey) (model.ResultRecord, bool)

	// ScanStats calls fn for every stat row whose fighter equals fighter,
	// in source order, until fn returns false.
	ScanStats(fighter string, fn func(model.StatRow) bool)
}
