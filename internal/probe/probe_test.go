package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func radarServer(counter *atomic.Int64, flaky bool) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/ufc/radar/", func(w http.ResponseWriter, r *http.Request) {
		n := counter.Add(1)
		fighter := r.URL.Query().Get("fighter")
		if fighter == "Nobody" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprint(w, `{"code":"not_found","message":"no fights found"}`)
			return
		}
		body := fmt.Sprintf(`{"fighter":%q,"last":%q}`, fighter, r.URL.Query().Get("last"))
		if flaky && fighter == "John Doe" {
			body = fmt.Sprintf(`{"fighter":%q,"n":%d}`, fighter, n)
		}
		_, _ = fmt.Fprint(w, body)
	})
	return httptest.NewServer(mux)
}

func TestProber_Run(t *testing.T) {
	Convey("Given a consistent radar server", t, func() {
		var calls atomic.Int64
		srv := radarServer(&calls, false)
		defer srv.Close()

		p := New(srv.URL+"/", WithWorkers(3), WithRepeat(3), WithTimeout(time.Second))
		ctx := context.Background()

		Convey("The health check passes", func() {
			So(p.CheckHealth(ctx), ShouldBeNil)
		})

		Convey("When probing fighters", func() {
			sum, err := p.Run(ctx, []string{"John Doe", "Jane Roe", "Nobody"}, 5)

			Convey("Then every request is counted", func() {
				So(err, ShouldBeNil)
				So(calls.Load(), ShouldEqual, int64(9))
				So(sum.Fighters, ShouldEqual, 3)
				So(sum.Requests, ShouldEqual, 9)
				So(sum.OK, ShouldEqual, 6)
				So(sum.NotFound, ShouldEqual, 3)
				So(sum.Failed, ShouldEqual, 0)
				So(sum.StatusCodes[http.StatusOK], ShouldEqual, 6)
				So(sum.Inconsistent, ShouldBeEmpty)
				So(sum.Max, ShouldBeGreaterThanOrEqualTo, sum.P95)
				So(sum.P95, ShouldBeGreaterThanOrEqualTo, sum.P50)
			})
		})

		Convey("When probing nobody", func() {
			_, err := p.Run(ctx, nil, 5)
			So(errors.Is(err, ErrNoFighters), ShouldBeTrue)
		})
	})

	Convey("Given a server whose answers drift", t, func() {
		var calls atomic.Int64
		srv := radarServer(&calls, true)
		defer srv.Close()

		sum, err := New(srv.URL, WithRepeat(2)).Run(context.Background(), []string{"John Doe", "Jane Roe"}, -1)

		Convey("Then the drifting fighter is reported", func() {
			So(errors.Is(err, ErrInconsistent), ShouldBeTrue)
			So(sum.Inconsistent, ShouldResemble, []string{"John Doe"})
			So(sum.OK, ShouldEqual, 4)
		})
	})

	Convey("Given an unreachable server", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()

		p := New(base, WithRepeat(1), WithTimeout(200*time.Millisecond))

		Convey("The health check fails", func() {
			So(errors.Is(p.CheckHealth(context.Background()), ErrUnhealthy), ShouldBeTrue)
		})

		Convey("Requests are counted as failed", func() {
			sum, err := p.Run(context.Background(), []string{"John Doe"}, 1)
			So(err, ShouldBeNil)
			So(sum.Failed, ShouldEqual, 1)
			So(sum.OK, ShouldEqual, 0)
		})
	})
}

func TestPercentiles(t *testing.T) {
	Convey("Given latencies", t, func() {
		ds := []time.Duration{5, 1, 4, 2, 3, 6, 7, 8, 9, 10}
		p50, p95, maxD := percentiles(ds)
		So(p50, ShouldEqual, time.Duration(5))
		So(p95, ShouldEqual, time.Duration(10))
		So(maxD, ShouldEqual, time.Duration(10))

		p50, p95, maxD = percentiles(nil)
		So(p50+p95+maxD, ShouldEqual, time.Duration(0))
	})
}
