// Package forecast derives a short-term weather trend from barometric
// pressure history. The classification is display-only: it feeds no
// scheduling or storage decisions.
package forecast

import (
	"errors"
	"math"
	"time"
)

// Trend tags.
const (
	TrendRisingFast  = "rising_fast"
	TrendRising      = "rising"
	TrendStable      = "stable"
	TrendFalling     = "falling"
	TrendFallingFast = "falling_fast"
)

// Confidence tags.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// Absolute pressure context.
const (
	PressureHigh   = "high"
	PressureNormal = "normal"
	PressureLow    = "low"
)

// Classification window and thresholds (hPa).
const (
	window = 3 * time.Hour
	// Samples younger than this carry no usable trend signal; when every
	// sample is this fresh the oldest one is used instead.
	minSampleAge = 30 * time.Minute

	highPressure = 1020.0
	lowPressure  = 1000.0
)

// ErrNoHistory is returned when there are no historical samples to
// compute a delta against.
var ErrNoHistory = errors.New("no pressure history")

// Sample is one historical pressure reading.
type Sample struct {
	PressureHPa float64
	Timestamp   time.Time
}

// Forecast is the classified trend, consumed purely for display.
type Forecast struct {
	Trend      string  `json:"trend"`
	Symbol     string  `json:"symbol"`
	DeltaHPa   float64 `json:"delta_hpa"`
	Prediction string  `json:"prediction"`
	Confidence string  `json:"confidence"`
	Pressure   string  `json:"pressure"`
}

// Classify computes the 3-hour pressure delta and buckets it. The
// reference sample is the one closest to now minus three hours; if every
// sample is too fresh to qualify, the oldest sample is used.
func Classify(history []Sample, currentHPa float64, now time.Time) (Forecast, error) {
	if len(history) == 0 {
		return Forecast{}, ErrNoHistory
	}

	ref := selectReference(history, now)
	delta := currentHPa - ref.PressureHPa

	f := classifyDelta(delta)
	f.DeltaHPa = delta
	f.Pressure = classifyPressure(currentHPa)
	return f, nil
}

func selectReference(history []Sample, now time.Time) Sample {
	target := now.Add(-window)

	best := Sample{}
	bestDist := time.Duration(math.MaxInt64)
	oldest := history[0]
	qualified := false

	for _, s := range history {
		if s.Timestamp.Before(oldest.Timestamp) {
			oldest = s
		}
		if now.Sub(s.Timestamp) < minSampleAge {
			continue
		}
		dist := s.Timestamp.Sub(target)
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best = s
			bestDist = dist
			qualified = true
		}
	}

	if !qualified {
		return oldest
	}
	return best
}

// classifyDelta buckets the delta with half-open intervals: a boundary
// value falls into the lower-magnitude bucket.
func classifyDelta(delta float64) Forecast {
	switch {
	case delta > 2:
		return Forecast{Trend: TrendRisingFast, Symbol: "↑↑", Prediction: "Fair weather ahead", Confidence: ConfidenceHigh}
	case delta > 0.5:
		return Forecast{Trend: TrendRising, Symbol: "↑", Prediction: "Improving", Confidence: ConfidenceMedium}
	case delta >= -0.5:
		return Forecast{Trend: TrendStable, Symbol: "→", Prediction: "No change", Confidence: ConfidenceMedium}
	case delta >= -2:
		return Forecast{Trend: TrendFalling, Symbol: "↓", Prediction: "Rain possible", Confidence: ConfidenceMedium}
	default:
		return Forecast{Trend: TrendFallingFast, Symbol: "↓↓", Prediction: "Storm likely", Confidence: ConfidenceHigh}
	}
}

func classifyPressure(hpa float64) string {
	switch {
	case hpa > highPressure:
		return PressureHigh
	case hpa < lowPressure:
		return PressureLow
	default:
		return PressureNormal
	}
}
