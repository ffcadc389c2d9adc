package fields_test

import (
	"testing"
	"time"

	"github.com/okian/ufcradar/internal/domain/fields"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseRatio(t *testing.T) {
	Convey("Given ratio strings", t, func() {
		Convey("When the value is well formed", func() {
			r := fields.ParseRatio("10 of 20")
			So(r.Get(), ShouldResemble, fields.Ratio{Landed: 10, Attempted: 20})
			So(r.OK(), ShouldBeTrue)
			So(fields.ParseRatio("  3 of 7 ").Get(), ShouldResemble, fields.Ratio{Landed: 3, Attempted: 7})
		})

		Convey("When the value is malformed it falls back to zero", func() {
			for _, in := range []string{"---", "", "broken", "1 of", "of 2", "a of b", "1 of 2 of 3"} {
				r := fields.ParseRatio(in)
				So(r.Get(), ShouldResemble, fields.Ratio{})
				So(r.Status(), ShouldEqual, fields.Fallback)
			}
		})
	})
}

func TestParseClock(t *testing.T) {
	Convey("Given clock strings", t, func() {
		So(fields.ParseClock("2:15").Get(), ShouldEqual, 135)
		So(fields.ParseClock("0:30").Get(), ShouldEqual, 30)
		So(fields.ParseClock("2:15").OK(), ShouldBeTrue)

		Convey("Then malformed clocks are zero", func() {
			for _, in := range []string{"---", "", "99", "a:10", "1:bb", "1:2:3"} {
				c := fields.ParseClock(in)
				So(c.Get(), ShouldEqual, 0)
				So(c.OK(), ShouldBeFalse)
			}
		})
	})
}

func TestParseCount(t *testing.T) {
	Convey("Given count cells", t, func() {
		So(fields.ParseCount("2").Get(), ShouldEqual, 2)
		So(fields.ParseCount("1.0").Get(), ShouldEqual, 1)
		So(fields.ParseCount(" 3 ").Get(), ShouldEqual, 3)
		So(fields.ParseCount("").Status(), ShouldEqual, fields.Fallback)
		So(fields.ParseCount("n/a").Get(), ShouldEqual, 0)
		So(fields.ParseCount("NaN").Get(), ShouldEqual, 0)
		So(fields.ParseCount("1e300").Get(), ShouldEqual, 0)
	})
}

func TestParseEventDate(t *testing.T) {
	Convey("Given event dates", t, func() {
		d := fields.ParseEventDate("December 13, 2025")
		So(d.OK(), ShouldBeTrue)
		So(d.Get().Equal(time.Date(2025, time.December, 13, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)

		So(fields.ParseEventDate("January 01, 2024").Get().Day(), ShouldEqual, 1)

		Convey("Then unparsable dates become the sentinel", func() {
			bad := fields.ParseEventDate("2024-01-01")
			So(bad.OK(), ShouldBeFalse)
			So(bad.Get().Equal(fields.UnknownDate), ShouldBeTrue)
		})
	})
}

func TestFightDuration(t *testing.T) {
	Convey("Given finishing round and clock", t, func() {
		So(fields.FightDuration(2, "1:00"), ShouldEqual, 360)
		So(fields.FightDuration(0, "1:00"), ShouldEqual, 0)
		So(fields.FightDuration(-1, "1:00"), ShouldEqual, 0)
		So(fields.FightDuration(1, "---"), ShouldEqual, 0)
		So(fields.FightDuration(3, "5:00"), ShouldEqual, 900)
	})
}

func TestStatusString(t *testing.T) {
	Convey("Given statuses", t, func() {
		So(fields.Parsed.String(), ShouldEqual, "parsed")
		So(fields.Fallback.String(), ShouldEqual, "fallback")
	})
}
