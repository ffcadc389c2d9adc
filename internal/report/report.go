// Package report renders radar results and archive imports as terminal tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/okian/ufcradar/internal/adapters/archive"
	service "github.com/okian/ufcradar/internal/app"
	"github.com/okian/ufcradar/internal/probe"
)

const dateLayout = "2006-01-02"

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintRadarSummary prints a one-line header for a radar result.
func PrintRadarSummary(w io.Writer, r service.Radar) {
	fmt.Fprintf(w, "\nFighter: %s  |  Window: %d  |  Fights: %d  |  Fight time: %s\n\n",
		r.Fighter, r.Last, r.FightsCount, clock(r.DurationTotalSec))
}

// PrintRadarTable prints each metric with its raw and 0-100 scaled value.
func PrintRadarTable(w io.Writer, r service.Radar) {
	table := newTable(w)
	table.Header("METRIC", "VALUE", "SCALED")

	rows := []struct {
		name   string
		value  string
		scaled float64
	}{
		{"Sig. strike accuracy (%)", fmt.Sprintf("%.2f", r.Metrics.SigStrikeAccuracy), r.Scaled.SigStrikeAccuracy},
		{"Takedown accuracy (%)", fmt.Sprintf("%.2f", r.Metrics.TakedownAccuracy), r.Scaled.TakedownAccuracy},
		{"Knockdowns / 15 min", fmt.Sprintf("%.3f", r.Metrics.KnockdownsPer15), r.Scaled.KnockdownsPer15},
		{"Sub. attempts / 15 min", fmt.Sprintf("%.3f", r.Metrics.SubmissionAttemptsP15), r.Scaled.SubmissionAttemptsP15},
		{"Control sec / 15 min", fmt.Sprintf("%.1f", r.Metrics.ControlSecondsPer15), r.Scaled.ControlSecondsPer15},
	}
	for _, row := range rows {
		table.Append(row.name, row.value, fmt.Sprintf("%.0f", row.scaled))
	}
	table.Render()
}

// PrintFighterCheck prints one row per name with its registry status.
func PrintFighterCheck(w io.Writer, names, unknown []string) {
	missing := make(map[string]struct{}, len(unknown))
	for _, n := range unknown {
		missing[n] = struct{}{}
	}

	table := newTable(w)
	table.Header("NAME", "KNOWN")
	for _, n := range names {
		known := "yes"
		if _, ok := missing[n]; ok {
			known = "no"
		}
		table.Append(n, known)
	}
	table.Render()
}

// PrintImportSummary prints the counters of an archive import.
func PrintImportSummary(w io.Writer, rep archive.Report) {
	mode := "dry-run"
	if rep.Applied {
		mode = "applied"
	}
	fmt.Fprintf(w, "\nImport (%s): %d created, %d updated, %d unchanged, %d skipped\n\n",
		mode, rep.Created, rep.Updated, rep.Unchanged, rep.Skipped)
}

// PrintImportTable prints every create and update of an import.
func PrintImportTable(w io.Writer, rep archive.Report) {
	if len(rep.Changes) == 0 {
		fmt.Fprintln(w, "No changes.")
		return
	}

	table := newTable(w)
	table.Header("ACTION", "EVENT", "DATE", "LOCATION", "CHANGED")
	for _, c := range rep.Changes {
		changed := "—"
		if len(c.Fields) > 0 {
			changed = strings.Join(c.Fields, ",")
		}
		table.Append(
			string(c.Action),
			c.Event.Name,
			c.Event.Date.Format(dateLayout),
			c.Event.Location,
			changed,
		)
	}
	table.Render()
}

// PrintEventTable prints archived events.
func PrintEventTable(w io.Writer, events []archive.Event) {
	table := newTable(w)
	table.Header("DATE", "EVENT", "LOCATION")
	for _, e := range events {
		table.Append(e.Date.Format(dateLayout), e.Name, e.Location)
	}
	table.Render()
}

// PrintProbeSummary prints request counts per status and latency percentiles.
func PrintProbeSummary(w io.Writer, s probe.Summary) {
	fmt.Fprintf(w, "\nProbe: %d fighters  |  %d requests  |  ok %d  |  not found %d  |  failed %d  |  took %s\n\n",
		s.Fighters, s.Requests, s.OK, s.NotFound, s.Failed, s.Took.Round(time.Millisecond))

	codes := make([]int, 0, len(s.StatusCodes))
	for code := range s.StatusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	table := newTable(w)
	table.Header("STATUS", "COUNT")
	for _, code := range codes {
		table.Append(fmt.Sprintf("%d", code), fmt.Sprintf("%d", s.StatusCodes[code]))
	}
	table.Render()

	fmt.Fprintf(w, "\nLatency p50 %s  |  p95 %s  |  max %s\n",
		s.P50.Round(time.Microsecond), s.P95.Round(time.Microsecond), s.Max.Round(time.Microsecond))
	if len(s.Inconsistent) > 0 {
		fmt.Fprintf(w, "Inconsistent answers: %s\n", strings.Join(s.Inconsistent, ", "))
	}
}

// clock formats seconds as m:ss.
func clock(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
