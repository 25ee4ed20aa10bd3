package forecast

import "time"

// Forecast is a generated, non-authoritative prediction for one city and
// one future day. Batches are read-only once written.
type Forecast struct {
	City         string    `json:"city"`
	Date         time.Time `json:"date"`
	Temperature  float64   `json:"temperature"`
	Rainfall     float64   `json:"rainfall"`
	Confidence   float64   `json:"confidence"`
	ModelVersion string    `json:"modelVersion"`
}

// Batch groups the forecasts produced by a single generation run.
type Batch struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	Forecasts []Forecast `json:"forecasts"`
}

// TrainingPoint is one epoch of the synthesized loss curve. The curve is a
// display artifact, not the output of any real fitting process.
type TrainingPoint struct {
	Epoch          int     `json:"epoch"`
	TrainLoss      float64 `json:"trainLoss"`
	ValidationLoss float64 `json:"validationLoss"`
}

// RunSummary describes one generation run for the dashboard's model page.
type RunSummary struct {
	ModelID            string          `json:"modelId"`
	BatchID            string          `json:"batchId"`
	Accuracy           float64         `json:"accuracy"`
	AvgTemperature     float64         `json:"avgTemperature"`
	TotalRainfall      float64         `json:"totalRainfall"`
	MeanLoss           float64         `json:"meanLoss"`
	MeanValidationLoss float64         `json:"meanValidationLoss"`
	TrainingCurve      []TrainingPoint `json:"trainingCurve"`
	CitiesCount        int             `json:"citiesCount"`
	SkippedCities      []string        `json:"skippedCities,omitempty"`
	ObservationCount   int             `json:"observationCount"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// Config carries the knobs of the generation procedure.
type Config struct {
	SequenceLength    int
	HorizonDays       int
	AnchorDate        time.Time
	SeasonalAmplitude float64
	MinTemperature    float64
	MaxTemperature    float64
	MinConfidence     float64
	MaxConfidence     float64
	TrainingEpochs    int
	ModelVersion      string
}
