package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with defaults", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, defaultNamespace)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRefreshInterval(5*time.Second),
				WithPrometheusRegistry(registry),
			)
			manager.radarQueries.WithLabelValues("ok").Inc()

			Convey("Then the options are applied", func() {
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, mf := range families {
					names = append(names, mf.GetName())
				}
				So(names, ShouldContain, "test_namespace_radar_queries_total")
			})
		})

		Convey("When options receive zero values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithHistogramBuckets(nil),
				WithRefreshInterval(0),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "ufcradar")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When inspecting the global manager", func() {
			Convey("Then latency histograms use millisecond buckets", func() {
				So(globalManager.namespace, ShouldEqual, "ufcradar")
				So(globalManager.histogramBuckets, ShouldResemble, LatencyBuckets)
				So(RefreshInterval(), ShouldEqual, defaultRefreshInterval)
				So(RefreshInterval(), ShouldEqual, globalManager.RefreshInterval())
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording radar queries", func() {
			before := sample("ufcradar_radar_queries_total", map[string]string{"outcome": "not_found"})
			RecordRadarQuery("not_found")
			RecordRadarQueryLatency(1.5)
			RecordRadarFights(3)

			Convey("Then the outcome counter increases", func() {
				after := sample("ufcradar_radar_queries_total", map[string]string{"outcome": "not_found"})
				So(after-before, ShouldEqual, 1.0)
			})
		})

		Convey("When recording dataset metrics", func() {
			UpdateDatasetRows("stats", 42)
			before := sample("ufcradar_dataset_rows_skipped_total", map[string]string{"source": "events"})
			RecordDatasetRowsSkipped("events", 2)
			RecordDatasetRowsSkipped("events", 0)
			RecordDatasetLoad("stats", 3)
			RecordFieldFallback("ratio")
			RecordCacheLookup("stats", true)
			RecordCacheLookup("stats", false)
			RecordCacheInvalidation()
			RecordWatcherEvent("write")

			Convey("Then gauges and counters reflect the values", func() {
				So(sample("ufcradar_dataset_rows", map[string]string{"source": "stats"}), ShouldEqual, 42.0)
				after := sample("ufcradar_dataset_rows_skipped_total", map[string]string{"source": "events"})
				So(after-before, ShouldEqual, 2.0)
				So(sample("ufcradar_cache_lookups_total", map[string]string{"source": "stats", "result": "hit"}), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				RecordHTTPRequest("radar", "GET", "200")
				RecordHTTPRequestDuration("radar", "GET", "200", 12)
				RecordErrorByEndpoint("radar", "GET", "not_found")
				RecordErrorByType("not_found", "medium")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("When gathering the registry", func() {
			families, err := GetRegistry().Gather()

			Convey("Then ufcradar series are exposed", func() {
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}

// sample reads a counter or gauge value from the custom registry.
func sample(name string, labels map[string]string) float64 {
	families, err := GetRegistry().Gather()
	if err != nil {
		return 0
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	metricLoop:
		for _, m := range f.GetMetric() {
			matched := 0
			for _, lp := range m.GetLabel() {
				want, ok := labels[lp.GetName()]
				if !ok {
					continue
				}
				if want != lp.GetValue() {
					continue metricLoop
				}
				matched++
			}
			if matched != len(labels) {
				continue
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			if g := m.GetGauge(); g != nil {
				return g.GetValue()
			}
		}
	}
	return 0
}
