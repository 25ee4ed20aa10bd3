package observation

import "time"

// Observation is a single historical weather reading for a city. Rows are
// immutable once ingested.
type Observation struct {
	City        string    `json:"city"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Rainfall    float64   `json:"rainfall"`

	WindSpeed     *float64 `json:"windSpeed,omitempty"`
	Humidity      *float64 `json:"humidity,omitempty"`
	Pressure      *float64 `json:"pressure,omitempty"`
	Visibility    *float64 `json:"visibility,omitempty"`
	CloudCoverage *float64 `json:"cloudCoverage,omitempty"`
}

// DailyObservation is one calendar day of readings collapsed into a single
// record: mean temperature, summed rainfall, means of the optional fields.
type DailyObservation struct {
	City        string    `json:"city"`
	Date        time.Time `json:"date"`
	Temperature float64   `json:"temperature"`
	Rainfall    float64   `json:"rainfall"`
	Records     int       `json:"records"`
}

// RowError points at an ingestion row that was dropped. Row indexes are
// 1-based counting from the first data row after the header.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// IngestResult summarizes a partial-success CSV import.
type IngestResult struct {
	Inserted int        `json:"inserted"`
	Dropped  int        `json:"dropped"`
	Errors   []RowError `json:"errors,omitempty"`
}
