package forecast

import "math"

// Reporter derives the dashboard summary statistics from a forecast batch
// and synthesizes the loss curve shown on the model page.
type Reporter struct {
	cfg Config
}

// NewReporter constructs a reporter.
func NewReporter(cfg Config) *Reporter {
	if cfg.TrainingEpochs <= 0 {
		cfg.TrainingEpochs = 35
	}
	return &Reporter{cfg: cfg}
}

// BatchStats are the aggregate figures over one batch.
type BatchStats struct {
	Accuracy       float64
	AvgTemperature float64
	TotalRainfall  float64
}

// Summarize computes batch statistics. An empty batch yields zero values
// rather than NaN; the division guards are required behavior.
func (r *Reporter) Summarize(forecasts []Forecast) BatchStats {
	if len(forecasts) == 0 {
		return BatchStats{}
	}
	var confSum, tempSum, rainSum float64
	for _, f := range forecasts {
		confSum += f.Confidence
		tempSum += f.Temperature
		rainSum += f.Rainfall
	}
	n := float64(len(forecasts))
	return BatchStats{
		Accuracy:       confSum / n * 100,
		AvgTemperature: tempSum / n,
		TotalRainfall:  rainSum,
	}
}

// TrainingCurve synthesizes a decaying loss curve for display. The shape is
// fixed exponentials plus small uniform noise; no training happens here.
func (r *Reporter) TrainingCurve(rng RandSource) []TrainingPoint {
	points := make([]TrainingPoint, 0, r.cfg.TrainingEpochs)
	for i := 0; i < r.cfg.TrainingEpochs; i++ {
		points = append(points, TrainingPoint{
			Epoch:          i,
			TrainLoss:      0.45*math.Exp(-0.12*float64(i)) + rng.Float64()*0.01,
			ValidationLoss: 0.48*math.Exp(-0.10*float64(i)) + rng.Float64()*0.015,
		})
	}
	return points
}

// MeanLosses averages the two curves; zero values for an empty curve.
func MeanLosses(curve []TrainingPoint) (train, validation float64) {
	if len(curve) == 0 {
		return 0, 0
	}
	for _, p := range curve {
		train += p.TrainLoss
		validation += p.ValidationLoss
	}
	n := float64(len(curve))
	return train / n, validation / n
}
