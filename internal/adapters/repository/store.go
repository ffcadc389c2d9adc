package repository

import (
	"sort"
	"time"

	"github.com/okian/ufcradar/internal/domain/fights"
	"github.com/okian/ufcradar/internal/domain/model"
)

var _ fights.Index = (*Dataset)(nil)

// Dataset is an immutable view over the events, results and stats indices.
// It is safe for concurrent readers and stays valid after the Cache that
// produced it is invalidated.
type Dataset struct {
	events  *eventIndex
	results *resultIndex
	stats   *statIndex
}

// EventDate implements fights.Index.
func (d *Dataset) EventDate(event string) (time.Time, bool) {
	t, ok := d.events.dates[event]
	return t, ok
}

// Result implements fights.Index.
func (d *Dataset) Result(key model.FightKey) (model.ResultRecord, bool) {
	r, ok := d.results.byKey[key]
	return r, ok
}

// ScanStats implements fights.Index.
func (d *Dataset) ScanStats(fighter string, fn func(model.StatRow) bool) {
	for _, i := range d.stats.byFighter[fighter] {
		if !fn(d.stats.rows[i]) {
			return
		}
	}
}

// Fighters returns the distinct fighter names of the stats source, sorted.
func (d *Dataset) Fighters() []string {
	out := make([]string, 0, len(d.stats.byFighter))
	for name := range d.stats.byFighter {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Missing lists the sources whose file was absent when the index was built.
func (d *Dataset) Missing() []string {
	var out []string
	if !d.events.Present {
		out = append(out, SourceEvents)
	}
	if !d.results.Present {
		out = append(out, SourceResults)
	}
	if !d.stats.Present {
		out = append(out, SourceStats)
	}
	return out
}

// Complete reports whether all three sources were present.
func (d *Dataset) Complete() bool { return len(d.Missing()) == 0 }
