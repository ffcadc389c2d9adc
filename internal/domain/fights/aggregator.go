package fights

import (
	"github.com/okian/ufcradar/internal/domain/fields"
	"github.com/okian/ufcradar/internal/domain/model"
)

// Field names reported to the fallback observer.
const (
	FieldKnockdowns = "kd"
	FieldSubAtt     = "sub_att"
	FieldSigStrikes = "sig_str"
	FieldTakedowns  = "td"
	FieldControl    = "ctrl"
)

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithFallbackObserver registers fn to be called with the field name each
// time a malformed cell is replaced by its fallback value.
func WithFallbackObserver(fn func(field string)) Option {
	return func(a *Aggregator) {
		if fn != nil {
			a.observe = fn
		}
	}
}

// Aggregator sums stats over the fights chosen by a Resolver.
type Aggregator struct {
	idx      Index
	resolver *Resolver
	observe  func(field string)
}

// NewAggregator creates an aggregator over idx.
func NewAggregator(idx Index, opts ...Option) *Aggregator {
	a := &Aggregator{
		idx:      idx,
		resolver: NewResolver(idx),
		observe:  func(string) {},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate resolves the last n fights of fighter and sums them.
// found is false when the fighter has no fights.
func (a *Aggregator) Aggregate(fighter string, n int) (agg model.Aggregate, found bool) {
	keys := a.resolver.LastFights(fighter, n)
	if len(keys) == 0 {
		return model.Aggregate{}, false
	}
	return a.Sum(fighter, keys), true
}

// Sum totals duration and stats for fighter over exactly keys.
//
// Duration comes from the results source and stats from the stats source in
// two independent passes; a fight without a result row still contributes
// its stats.
func (a *Aggregator) Sum(fighter string, keys []model.FightKey) model.Aggregate {
	agg := model.Aggregate{Fights: len(keys)}
	if len(keys) == 0 {
		return agg
	}

	wanted := make(map[model.FightKey]struct{}, len(keys))
	for _, k := range keys {
		wanted[k] = struct{}{}
		res, ok := a.idx.Result(k)
		if !ok {
			continue
		}
		agg.DurationSeconds += fields.FightDuration(res.Round, res.Time)
	}

	a.idx.ScanStats(fighter, func(row model.StatRow) bool {
		if _, ok := wanted[row.Key]; !ok {
			return true
		}
		agg.Knockdowns += a.count(FieldKnockdowns, fields.ParseCount(row.Knockdowns))
		agg.SubmissionAttempts += a.count(FieldSubAtt, fields.ParseCount(row.SubmissionAttempts))

		sig := a.ratio(FieldSigStrikes, fields.ParseRatio(row.SigStrikes))
		agg.SigStrikesLanded += sig.Landed
		agg.SigStrikesAttempted += sig.Attempted

		td := a.ratio(FieldTakedowns, fields.ParseRatio(row.Takedowns))
		agg.TakedownsLanded += td.Landed
		agg.TakedownsAttempted += td.Attempted

		agg.ControlSeconds += a.count(FieldControl, fields.ParseClock(row.Control))
		return true
	})

	return agg
}

func (a *Aggregator) count(field string, v fields.Value[int]) int {
	if !v.OK() {
		a.observe(field)
	}
	return v.Get()
}

func (a *Aggregator) ratio(field string, v fields.Value[fields.Ratio]) fields.Ratio {
	if !v.OK() {
		a.observe(field)
	}
	return v.Get()
}
