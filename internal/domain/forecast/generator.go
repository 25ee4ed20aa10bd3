package forecast

import (
	"math"

	"github.com/jpalima/habagat/internal/domain/observation"
)

// RandSource yields uniform draws in [0,1). *math/rand.Rand satisfies it;
// tests inject fixed sources to make generation reproducible.
type RandSource interface {
	Float64() float64
}

// Generator produces the synthetic per-city forecasts. It is stateless
// across calls; the rolling window lives on the stack of each invocation.
type Generator struct {
	cfg Config
}

// NewGenerator constructs a generator with validated defaults applied.
func NewGenerator(cfg Config) *Generator {
	if cfg.SequenceLength <= 0 {
		cfg.SequenceLength = 5
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = 30
	}
	return &Generator{cfg: cfg}
}

// GenerateCity emits exactly HorizonDays forecasts with strictly increasing
// consecutive dates starting at the anchor, or nil when the city has fewer
// than SequenceLength daily records. Skipping is documented behavior, not
// an error.
//
// The rolling window is self-referential: after each emitted day the oldest
// entry is dropped and the prediction itself is appended, so later days are
// forecast from earlier forecasts. Deliberate, preserved from the source
// model.
func (g *Generator) GenerateCity(city string, history []observation.DailyObservation, rng RandSource) []Forecast {
	if len(history) < g.cfg.SequenceLength {
		return nil
	}

	window := make([]observation.DailyObservation, g.cfg.SequenceLength)
	copy(window, history[len(history)-g.cfg.SequenceLength:])

	horizon := g.cfg.HorizonDays
	out := make([]Forecast, 0, horizon)
	for day := 0; day < horizon; day++ {
		avgTemp := meanTemperature(window)
		avgRain := meanRainfall(window)

		seasonal := g.cfg.SeasonalAmplitude * math.Sin(2*math.Pi*float64(day)/float64(horizon))
		tempJitter := (rng.Float64() - 0.5) * 3
		rainJitter := (rng.Float64() - 0.5) * avgRain

		temp := clamp(avgTemp+seasonal+tempJitter, g.cfg.MinTemperature, g.cfg.MaxTemperature)
		rain := math.Max(avgRain+rainJitter, 0)
		confidence := clamp(1-stdDevTemperature(window)/10, g.cfg.MinConfidence, g.cfg.MaxConfidence)

		date := g.cfg.AnchorDate.AddDate(0, 0, day)
		out = append(out, Forecast{
			City:         city,
			Date:         date,
			Temperature:  temp,
			Rainfall:     rain,
			Confidence:   confidence,
			ModelVersion: g.cfg.ModelVersion,
		})

		window = append(window[1:], observation.DailyObservation{
			City:        city,
			Date:        date,
			Temperature: temp,
			Rainfall:    rain,
			Records:     1,
		})
	}
	return out
}

func meanTemperature(window []observation.DailyObservation) float64 {
	var sum float64
	for _, w := range window {
		sum += w.Temperature
	}
	return sum / float64(len(window))
}

func meanRainfall(window []observation.DailyObservation) float64 {
	var sum float64
	for _, w := range window {
		sum += w.Rainfall
	}
	return sum / float64(len(window))
}

// stdDevTemperature is the population standard deviation over the window.
func stdDevTemperature(window []observation.DailyObservation) float64 {
	mean := meanTemperature(window)
	var sum float64
	for _, w := range window {
		diff := w.Temperature - mean
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(window)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
