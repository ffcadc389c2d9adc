package fights_test

import (
	"testing"
	"time"

	"github.com/okian/ufcradar/internal/domain/fights"
	"github.com/okian/ufcradar/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// memIndex is a map-backed fights.Index.
type memIndex struct {
	dates   map[string]time.Time
	results map[model.FightKey]model.ResultRecord
	stats   []model.StatRow
}

func (m *memIndex) EventDate(event string) (time.Time, bool) {
	d, ok := m.dates[event]
	return d, ok
}

func (m *memIndex) Result(key model.FightKey) (model.ResultRecord, bool) {
	r, ok := m.results[key]
	return r, ok
}

func (m *memIndex) ScanStats(fighter string, fn func(model.StatRow) bool) {
	for _, row := range m.stats {
		if row.Fighter != fighter {
			continue
		}
		if !fn(row) {
			return
		}
	}
}

func day(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func key(ev, bout string) model.FightKey { return model.FightKey{Event: ev, Bout: bout} }

func row(ev, bout, fighter string) model.StatRow {
	return model.StatRow{
		Key: key(ev, bout), Fighter: fighter,
		Knockdowns: "0", SubmissionAttempts: "0",
		SigStrikes: "1 of 2", Takedowns: "0 of 0", Control: "0:10",
	}
}

func threeEvents() *memIndex {
	return &memIndex{
		dates: map[string]time.Time{
			"EV1": day(2024, time.January, 1),
			"EV2": day(2024, time.February, 1),
			"EV3": day(2024, time.March, 1),
		},
		results: map[model.FightKey]model.ResultRecord{},
		stats: []model.StatRow{
			row("EV1", "B1", "John Doe"),
			row("EV2", "B2", "John Doe"),
			row("EV3", "B3", "John Doe"),
			row("EV3", "B3", "Jane Roe"),
		},
	}
}

func TestResolver_LastFights(t *testing.T) {
	Convey("Given a fighter appearing once in each of three dated events", t, func() {
		r := fights.NewResolver(threeEvents())

		Convey("When asking for the last two fights", func() {
			keys := r.LastFights("John Doe", 2)

			Convey("Then they are the newest two, most recent first", func() {
				So(keys, ShouldResemble, []model.FightKey{key("EV3", "B3"), key("EV2", "B2")})
			})
		})

		Convey("When the window is larger than the history", func() {
			So(r.LastFights("John Doe", 10), ShouldHaveLength, 3)
		})

		Convey("When the window is zero or negative", func() {
			So(r.LastFights("John Doe", 0), ShouldBeEmpty)
			So(r.LastFights("John Doe", -3), ShouldBeEmpty)
		})

		Convey("When the fighter is unknown or the name differs in case", func() {
			So(r.LastFights("Nobody", 5), ShouldBeEmpty)
			So(r.LastFights("john doe", 5), ShouldBeEmpty)
			So(r.LastFights("", 5), ShouldBeEmpty)
		})
	})

	Convey("Given a fight split across several per-round rows", t, func() {
		idx := threeEvents()
		idx.stats = append(idx.stats, row("EV3", "B3", "John Doe"), row("EV3", "B3", "John Doe"))
		r := fights.NewResolver(idx)

		Convey("Then it is counted once", func() {
			So(r.LastFights("John Doe", 5), ShouldResemble, []model.FightKey{
				key("EV3", "B3"), key("EV2", "B2"), key("EV1", "B1"),
			})
		})
	})

	Convey("Given an event with no known date", t, func() {
		idx := threeEvents()
		idx.stats = append([]model.StatRow{row("EV0", "B0", "John Doe")}, idx.stats...)
		r := fights.NewResolver(idx)

		Convey("Then it sorts last", func() {
			keys := r.LastFights("John Doe", 5)
			So(keys, ShouldHaveLength, 4)
			So(keys[3], ShouldResemble, key("EV0", "B0"))
		})
	})
}

func TestAggregator_Aggregate(t *testing.T) {
	Convey("Given one fight ending at 1:00 of round one", t, func() {
		idx := &memIndex{
			dates: map[string]time.Time{"EV1": day(2024, time.January, 1)},
			results: map[model.FightKey]model.ResultRecord{
				key("EV1", "B1"): {Key: key("EV1", "B1"), Outcome: "W/L", Method: "KO/TKO", Round: 1, Time: "1:00"},
			},
			stats: []model.StatRow{{
				Key: key("EV1", "B1"), Fighter: "John Doe",
				Knockdowns: "1", SubmissionAttempts: "2",
				SigStrikes: "10 of 20", Takedowns: "1 of 3", Control: "0:30",
			}},
		}
		agg := fights.NewAggregator(idx)

		Convey("When aggregating the last five fights", func() {
			got, found := agg.Aggregate("John Doe", 5)

			Convey("Then every sum matches the single fight", func() {
				So(found, ShouldBeTrue)
				So(got, ShouldResemble, model.Aggregate{
					Fights:              1,
					DurationSeconds:     60,
					Knockdowns:          1,
					SubmissionAttempts:  2,
					SigStrikesLanded:    10,
					SigStrikesAttempted: 20,
					TakedownsLanded:     1,
					TakedownsAttempted:  3,
					ControlSeconds:      30,
				})
			})
		})

		Convey("When aggregating twice", func() {
			first, _ := agg.Aggregate("John Doe", 5)
			second, _ := agg.Aggregate("John Doe", 5)

			Convey("Then the results are identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When the fighter has no fights", func() {
			_, found := agg.Aggregate("Nobody", 5)
			So(found, ShouldBeFalse)
		})
	})

	Convey("Given a fight with per-round rows and no result row", t, func() {
		var fallbacks []string
		idx := &memIndex{
			dates:   map[string]time.Time{"EV1": day(2024, time.January, 1), "EV2": day(2024, time.February, 1)},
			results: map[model.FightKey]model.ResultRecord{},
			stats: []model.StatRow{
				{Key: key("EV2", "B2"), Fighter: "John Doe", Round: "Round 1", Knockdowns: "1.0", SubmissionAttempts: "x", SigStrikes: "5 of 9", Takedowns: "---", Control: "1:00"},
				{Key: key("EV2", "B2"), Fighter: "John Doe", Round: "Round 2", Knockdowns: "0", SubmissionAttempts: "1", SigStrikes: "4 of 6", Takedowns: "2 of 2", Control: "---"},
				{Key: key("EV1", "B1"), Fighter: "John Doe", Knockdowns: "3", SubmissionAttempts: "3", SigStrikes: "9 of 9", Takedowns: "9 of 9", Control: "9:00"},
			},
		}
		agg := fights.NewAggregator(idx, fights.WithFallbackObserver(func(f string) { fallbacks = append(fallbacks, f) }))

		Convey("When aggregating only the latest fight", func() {
			got, found := agg.Aggregate("John Doe", 1)

			Convey("Then rounds are summed and the older fight is excluded", func() {
				So(found, ShouldBeTrue)
				So(got.Fights, ShouldEqual, 1)
				So(got.DurationSeconds, ShouldEqual, 0)
				So(got.Knockdowns, ShouldEqual, 1)
				So(got.SubmissionAttempts, ShouldEqual, 1)
				So(got.SigStrikesLanded, ShouldEqual, 9)
				So(got.SigStrikesAttempted, ShouldEqual, 15)
				So(got.TakedownsLanded, ShouldEqual, 2)
				So(got.TakedownsAttempted, ShouldEqual, 2)
				So(got.ControlSeconds, ShouldEqual, 60)
			})

			Convey("And malformed cells are reported", func() {
				So(fallbacks, ShouldResemble, []string{fights.FieldSubAtt, fights.FieldTakedowns, fights.FieldControl})
			})
		})
	})

	Convey("Given an explicit key set", t, func() {
		idx := threeEvents()
		agg := fights.NewAggregator(idx)

		Convey("Then Sum only counts those keys", func() {
			got := agg.Sum("John Doe", []model.FightKey{key("EV1", "B1")})
			So(got.Fights, ShouldEqual, 1)
			So(got.SigStrikesAttempted, ShouldEqual, 2)
			So(got.ControlSeconds, ShouldEqual, 10)

			So(agg.Sum("John Doe", nil), ShouldResemble, model.Aggregate{})
		})
	})
}
