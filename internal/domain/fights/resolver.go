package fights

import (
	"sort"

	"github.com/okian/ufcradar/internal/domain/fields"
	"github.com/okian/ufcradar/internal/domain/model"
)

// Resolver finds the fights a fighter took part in.
type Resolver struct {
	idx Index
}

// NewResolver creates a resolver over idx.
func NewResolver(idx Index) *Resolver {
	return &Resolver{idx: idx}
}

// LastFights returns at most n fight keys for fighter, most recent first.
// A fight with several per-round rows is returned once. Events without a
// known date sort last; order among same-day events is unspecified.
func (r *Resolver) LastFights(fighter string, n int) []model.FightKey {
	if n <= 0 || fighter == "" {
		return nil
	}

	seen := make(map[model.FightKey]struct{})
	var keys []model.FightKey
	r.idx.ScanStats(fighter, func(row model.StatRow) bool {
		if row.Key.Event == "" || row.Key.Bout == "" {
			return true
		}
		if _, dup := seen[row.Key]; dup {
			return true
		}
		seen[row.Key] = struct{}{}
		keys = append(keys, row.Key)
		return true
	})

	dates := make(map[string]int64, len(keys))
	for _, k := range keys {
		if _, ok := dates[k.Event]; ok {
			continue
		}
		d, ok := r.idx.EventDate(k.Event)
		if !ok {
			d = fields.UnknownDate
		}
		dates[k.Event] = d.Unix()
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return dates[keys[i].Event] > dates[keys[j].Event]
	})

	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
