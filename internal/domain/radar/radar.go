// Package radar turns raw fight sums into comparable metrics.
package radar

import (
	"math"

	"github.com/okian/ufcradar/internal/domain/model"
)

// Display precision per metric.
const (
	accuracyDecimals = 2
	rateDecimals     = 3
	controlDecimals  = 1

	minutesPer15 = 15.0
	maxScaled    = 100.0
)

// Caps used to scale each metric onto 0-100 for the radar chart.
const (
	capAccuracy   = 100.0
	capKnockdowns = 1.5
	capSubAtt     = 6.0
	capControl    = 900.0
)

// Metrics is the normalized view of an Aggregate.
type Metrics struct {
	SigStrikeAccuracy     float64 `json:"sig_str_acc_pct"`
	TakedownAccuracy      float64 `json:"td_acc_pct"`
	KnockdownsPer15       float64 `json:"kd_per15"`
	SubmissionAttemptsP15 float64 `json:"sub_att_per15"`
	ControlSecondsPer15   float64 `json:"ctrl_sec_per15"`
}

// Percentage is 100*landed/attempted, or 0 when nothing was attempted.
func Percentage(landed, attempted int) float64 {
	if attempted <= 0 {
		return 0
	}
	return 100 * float64(landed) / float64(attempted)
}

// Per15 normalizes count to a rate per 15 minutes of fight time.
func Per15(count, durationSeconds int) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	minutes := float64(durationSeconds) / 60.0
	return float64(count) / minutes * minutesPer15
}

// Compute derives unrounded metrics from agg.
func Compute(agg model.Aggregate) Metrics {
	return Metrics{
		SigStrikeAccuracy:     Percentage(agg.SigStrikesLanded, agg.SigStrikesAttempted),
		TakedownAccuracy:      Percentage(agg.TakedownsLanded, agg.TakedownsAttempted),
		KnockdownsPer15:       Per15(agg.Knockdowns, agg.DurationSeconds),
		SubmissionAttemptsP15: Per15(agg.SubmissionAttempts, agg.DurationSeconds),
		ControlSecondsPer15:   Per15(agg.ControlSeconds, agg.DurationSeconds),
	}
}

// Rounded returns m rounded to display precision.
func (m Metrics) Rounded() Metrics {
	return Metrics{
		SigStrikeAccuracy:     Round(m.SigStrikeAccuracy, accuracyDecimals),
		TakedownAccuracy:      Round(m.TakedownAccuracy, accuracyDecimals),
		KnockdownsPer15:       Round(m.KnockdownsPer15, rateDecimals),
		SubmissionAttemptsP15: Round(m.SubmissionAttemptsP15, rateDecimals),
		ControlSecondsPer15:   Round(m.ControlSecondsPer15, controlDecimals),
	}
}

// Scaled maps every metric onto 0-100 using fixed per-metric caps.
func (m Metrics) Scaled() Metrics {
	return Metrics{
		SigStrikeAccuracy:     scale(m.SigStrikeAccuracy, capAccuracy),
		TakedownAccuracy:      scale(m.TakedownAccuracy, capAccuracy),
		KnockdownsPer15:       scale(m.KnockdownsPer15, capKnockdowns),
		SubmissionAttemptsP15: scale(m.SubmissionAttemptsP15, capSubAtt),
		ControlSecondsPer15:   scale(m.ControlSecondsPer15, capControl),
	}
}

// Round rounds to the given number of decimals, sending exact halves to the even neighbour.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*p) / p
}

func scale(v, ceiling float64) float64 {
	v = math.Max(0, math.Min(v, ceiling))
	return Round(v/ceiling*maxScaled, accuracyDecimals)
}
