package repository

import (
	"strings"
	"time"

	"github.com/okian/ufcradar/internal/domain/fields"
	"github.com/okian/ufcradar/internal/domain/model"
	"github.com/okian/ufcradar/internal/domain/registry"
	"github.com/okian/ufcradar/pkg/metrics"
)

// Column names of the exports.
const (
	colEvent       = "EVENT"
	colDate        = "DATE"
	colBout        = "BOUT"
	colOutcome     = "OUTCOME"
	colMethod      = "METHOD"
	colRound       = "ROUND"
	colTime        = "TIME"
	colWeightClass = "WEIGHTCLASS"
	colFighter     = "FIGHTER"
	colKD          = "KD"
	colSubAtt      = "SUB.ATT"
	colSigStr      = "SIG.STR."
	colTD          = "TD"
	colCtrl        = "CTRL"
	colFirst       = "FIRST"
	colLast        = "LAST"
)

// loadInfo describes one build of a source index.
type loadInfo struct {
	Present  bool
	Rows     int
	Skipped  int
	LoadedAt time.Time
	Took     time.Duration
}

type eventIndex struct {
	loadInfo
	dates map[string]time.Time
}

type resultIndex struct {
	loadInfo
	byKey map[model.FightKey]model.ResultRecord
}

type statIndex struct {
	loadInfo
	rows      []model.StatRow
	byFighter map[string][]int
}

type fighterIndex struct {
	loadInfo
	reg *registry.Registry
}

func finish(info *loadInfo, source string, start time.Time) {
	info.LoadedAt = time.Now()
	info.Took = time.Since(start)
	metrics.RecordDatasetLoad(source, float64(info.Took.Milliseconds()))
	metrics.UpdateDatasetRows(source, info.Rows)
	metrics.RecordDatasetRowsSkipped(source, info.Skipped)
}

// loadEvents maps event name to date. Later rows replace earlier ones with
// the same name; rows whose date does not parse are skipped.
func loadEvents(path string) (*eventIndex, error) {
	start := time.Now()
	idx := &eventIndex{dates: make(map[string]time.Time)}
	present, err := readTable(path, nil, func(r row) {
		name, date := r.Get(colEvent), r.Get(colDate)
		if name == "" || date == "" {
			idx.Skipped++
			return
		}
		d := fields.ParseEventDate(date)
		if !d.OK() {
			metrics.RecordFieldFallback("date")
			idx.Skipped++
			return
		}
		idx.dates[name] = d.Get()
	})
	if err != nil {
		return nil, err
	}
	idx.Present = present
	idx.Rows = len(idx.dates)
	finish(&idx.loadInfo, SourceEvents, start)
	return idx, nil
}

func loadResults(path string) (*resultIndex, error) {
	start := time.Now()
	idx := &resultIndex{byKey: make(map[model.FightKey]model.ResultRecord)}
	present, err := readTable(path, nil, func(r row) {
		key := model.FightKey{Event: r.Get(colEvent), Bout: r.Get(colBout)}
		if key.Event == "" || key.Bout == "" {
			idx.Skipped++
			return
		}
		round := fields.ParseCount(r.Get(colRound))
		if !round.OK() {
			metrics.RecordFieldFallback("round")
		}
		idx.byKey[key] = model.ResultRecord{
			Key:         key,
			Outcome:     r.Get(colOutcome),
			Method:      r.Get(colMethod),
			Round:       round.Get(),
			Time:        r.Get(colTime),
			WeightClass: r.Get(colWeightClass),
		}
	})
	if err != nil {
		return nil, err
	}
	idx.Present = present
	idx.Rows = len(idx.byKey)
	finish(&idx.loadInfo, SourceResults, start)
	return idx, nil
}

func loadStats(path string) (*statIndex, error) {
	start := time.Now()
	idx := &statIndex{byFighter: make(map[string][]int)}
	present, err := readTable(path, nil, func(r row) {
		s := model.StatRow{
			Key:                model.FightKey{Event: r.Get(colEvent), Bout: r.Get(colBout)},
			Fighter:            r.Get(colFighter),
			Round:              r.Get(colRound),
			Knockdowns:         r.Get(colKD),
			SubmissionAttempts: r.Get(colSubAtt),
			SigStrikes:         r.Get(colSigStr),
			Takedowns:          r.Get(colTD),
			Control:            r.Get(colCtrl),
		}
		if s.Key.Event == "" || s.Key.Bout == "" || s.Fighter == "" {
			idx.Skipped++
			return
		}
		idx.byFighter[s.Fighter] = append(idx.byFighter[s.Fighter], len(idx.rows))
		idx.rows = append(idx.rows, s)
	})
	if err != nil {
		return nil, err
	}
	idx.Present = present
	idx.Rows = len(idx.rows)
	finish(&idx.loadInfo, SourceStats, start)
	return idx, nil
}

// loadFighters builds the registry from FIRST and LAST. A file without both
// columns yields an empty registry.
func loadFighters(path string) (*fighterIndex, error) {
	start := time.Now()
	idx := &fighterIndex{}
	var names []string
	present, err := readTable(path,
		func(columns map[string]int) bool {
			_, first := columns[colFirst]
			_, last := columns[colLast]
			return first && last
		},
		func(r row) {
			full := strings.TrimSpace(r.Get(colFirst) + " " + r.Get(colLast))
			if full == "" {
				idx.Skipped++
				return
			}
			names = append(names, full)
		})
	if err != nil {
		return nil, err
	}
	idx.reg = registry.New(names)
	idx.Present = present
	idx.Rows = idx.reg.Len()
	finish(&idx.loadInfo, SourceFighters, start)
	return idx, nil
}
