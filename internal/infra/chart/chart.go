package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/jpalima/habagat/internal/domain/forecast"
)

// Renderer turns run summaries and city forecasts into self-contained
// HTML charts for the dashboard.
type Renderer struct{}

// NewRenderer constructs a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// TrainingHistory renders the synthesized loss curve as a line chart.
func (r *Renderer) TrainingHistory(w io.Writer, curve []forecast.TrainingPoint) error {
	epochs := make([]string, 0, len(curve))
	trainLoss := make([]opts.LineData, 0, len(curve))
	valLoss := make([]opts.LineData, 0, len(curve))
	for _, point := range curve {
		epochs = append(epochs, fmt.Sprintf("%d", point.Epoch))
		trainLoss = append(trainLoss, opts.LineData{Value: point.TrainLoss})
		valLoss = append(valLoss, opts.LineData{Value: point.ValidationLoss})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Training History",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "LSTM Training History",
			Subtitle: "Loss (MSE) per epoch",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line.SetXAxis(epochs).
		AddSeries("Training Loss", trainLoss).
		AddSeries("Validation Loss", valLoss)
	return line.Render(w)
}

// CityForecast renders a city's horizon as a temperature line overlapped
// with rainfall bars, mirroring the dashboard's per-city report plot.
func (r *Renderer) CityForecast(w io.Writer, city string, forecasts []forecast.Forecast) error {
	dates := make([]string, 0, len(forecasts))
	rainBars := make([]opts.BarData, 0, len(forecasts))
	tempLine := make([]opts.LineData, 0, len(forecasts))
	for _, f := range forecasts {
		dates = append(dates, f.Date.Format("2006-01-02"))
		rainBars = append(rainBars, opts.BarData{Value: f.Rainfall})
		tempLine = append(tempLine, opts.LineData{Value: f.Temperature})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Weather Forecast - " + city,
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Weather Forecast - " + city,
			Subtitle: "Temperature (°C) and Rainfall (mm)",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(dates).AddSeries("Rainfall (mm)", rainBars)

	line := charts.NewLine()
	line.SetXAxis(dates).AddSeries("Temperature (°C)", tempLine)

	bar.Overlap(line)
	return bar.Render(w)
}
