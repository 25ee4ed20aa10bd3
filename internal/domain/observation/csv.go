package observation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Column aliases accepted in the header row. The second spelling in each
// set matches the raw OpenWeatherMap export the dashboard was seeded from.
var columnAliases = map[string][]string{
	"city":          {"city", "city_name"},
	"timestamp":     {"timestamp", "datetime"},
	"temperature":   {"temperature", "main.temp"},
	"rainfall":      {"rainfall", "rain.1h"},
	"windSpeed":     {"wind_speed", "wind.speed"},
	"humidity":      {"humidity", "main.humidity"},
	"pressure":      {"pressure", "main.pressure"},
	"visibility":    {"visibility"},
	"cloudCoverage": {"cloud_coverage", "clouds.all"},
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseCSV reads comma separated observations with a header row. Rows
// missing a city or with a non-numeric temperature are dropped and recorded
// with their 1-based data row index; parsing always continues.
func parseCSV(r io.Reader) ([]Observation, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("csv input is empty")
		}
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := resolveColumns(header)
	if _, ok := cols["city"]; !ok {
		return nil, nil, errors.New("csv header has no city column")
	}
	if _, ok := cols["temperature"]; !ok {
		return nil, nil, errors.New("csv header has no temperature column")
	}
	if _, ok := cols["timestamp"]; !ok {
		return nil, nil, errors.New("csv header has no timestamp column")
	}

	var (
		records   []Observation
		rowErrors []RowError
		rowIndex  int
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rowIndex++
			rowErrors = append(rowErrors, RowError{Row: rowIndex, Reason: "malformed row: " + err.Error()})
			continue
		}
		rowIndex++

		record, reason := parseRow(row, cols)
		if reason != "" {
			rowErrors = append(rowErrors, RowError{Row: rowIndex, Reason: reason})
			continue
		}
		records = append(records, record)
	}

	return records, rowErrors, nil
}

func parseRow(row []string, cols map[string]int) (Observation, string) {
	city := strings.TrimSpace(field(row, cols, "city"))
	if city == "" {
		return Observation{}, "missing city"
	}

	temp, err := strconv.ParseFloat(strings.TrimSpace(field(row, cols, "temperature")), 64)
	if err != nil {
		return Observation{}, "non-numeric temperature"
	}

	ts, ok := parseTimestamp(field(row, cols, "timestamp"))
	if !ok {
		return Observation{}, "unparseable timestamp"
	}

	record := Observation{
		City:        city,
		Timestamp:   ts,
		Temperature: temp,
	}

	// Missing rainfall reads as zero, matching the source data cleanup.
	if rain, err := strconv.ParseFloat(strings.TrimSpace(field(row, cols, "rainfall")), 64); err == nil {
		record.Rainfall = rain
	}

	record.WindSpeed = optionalField(row, cols, "windSpeed")
	record.Humidity = optionalField(row, cols, "humidity")
	record.Pressure = optionalField(row, cols, "pressure")
	record.Visibility = optionalField(row, cols, "visibility")
	record.CloudCoverage = optionalField(row, cols, "cloudCoverage")

	return record, ""
}

func resolveColumns(header []string) map[string]int {
	cols := make(map[string]int)
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		for canonical, aliases := range columnAliases {
			for _, alias := range aliases {
				if name == alias {
					if _, seen := cols[canonical]; !seen {
						cols[canonical] = i
					}
				}
			}
		}
	}
	return cols
}

func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func optionalField(row []string, cols map[string]int, name string) *float64 {
	raw := strings.TrimSpace(field(row, cols, name))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

func parseTimestamp(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
