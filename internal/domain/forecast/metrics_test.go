package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarizeEmptyBatchIsGuarded(t *testing.T) {
	reporter := NewReporter(testGeneratorConfig())

	stats := reporter.Summarize(nil)
	require.Zero(t, stats.Accuracy)
	require.Zero(t, stats.AvgTemperature)
	require.Zero(t, stats.TotalRainfall)
	require.False(t, math.IsNaN(stats.Accuracy))
}

func TestSummarizeBatchStats(t *testing.T) {
	reporter := NewReporter(testGeneratorConfig())

	stats := reporter.Summarize([]Forecast{
		{Temperature: 20, Rainfall: 1, Confidence: 0.8},
		{Temperature: 30, Rainfall: 2, Confidence: 0.9},
	})
	require.InDelta(t, 85.0, stats.Accuracy, 1e-9)
	require.InDelta(t, 25.0, stats.AvgTemperature, 1e-9)
	require.InDelta(t, 3.0, stats.TotalRainfall, 1e-9)
}

func TestTrainingCurveShape(t *testing.T) {
	reporter := NewReporter(testGeneratorConfig())

	curve := reporter.TrainingCurve(fixedSource{0.5})
	require.Len(t, curve, 35)

	for i, point := range curve {
		require.Equal(t, i, point.Epoch)
		require.InDelta(t, 0.45*math.Exp(-0.12*float64(i))+0.005, point.TrainLoss, 1e-9)
		require.InDelta(t, 0.48*math.Exp(-0.10*float64(i))+0.0075, point.ValidationLoss, 1e-9)
	}
	// Noise aside, losses decay across the curve.
	require.Greater(t, curve[0].TrainLoss, curve[34].TrainLoss)
	require.Greater(t, curve[0].ValidationLoss, curve[34].ValidationLoss)
}

func TestMeanLossesEmptyCurve(t *testing.T) {
	train, validation := MeanLosses(nil)
	require.Zero(t, train)
	require.Zero(t, validation)
}

func TestMeanLosses(t *testing.T) {
	train, validation := MeanLosses([]TrainingPoint{
		{TrainLoss: 0.4, ValidationLoss: 0.5},
		{TrainLoss: 0.2, ValidationLoss: 0.3},
	})
	require.InDelta(t, 0.3, train, 1e-9)
	require.InDelta(t, 0.4, validation, 1e-9)
}
