// FilePath: internal/models/models.sensor_data.go
package models

import (
	"fmt"
	"strings"
	"time"
)

// Measure identifies the magnitude a sensor reading belongs to. The backend
// emits the short uppercase codes, not the parameter column names.
type Measure string

const (
	MeasureTemperature  Measure = "TEMP"
	MeasureHumidity     Measure = "HUM"
	MeasureSoilMoisture Measure = "SOIL"
)

// DisplayName returns the label used on the dashboard.
func (m Measure) DisplayName() string {
	switch m {
	case MeasureTemperature:
		return "Temperatura (°C)"
	case MeasureHumidity:
		return "Humedad (%)"
	case MeasureSoilMoisture:
		return "Humedad del suelo (%)"
	default:
		return string(m)
	}
}

// APITime wraps time.Time to accept the timestamp formats the backend
// actually sends: RFC3339 or a bare ISO timestamp without zone.
type APITime struct {
	time.Time
}

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *APITime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range apiTimeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t APITime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.Time.Format(time.RFC3339) + `"`), nil
}

// SensorReading is a single measurement as served by the sensor_data
// resource. Readings are fetched per view and never persisted here.
type SensorReading struct {
	Measure   Measure `json:"measure"`
	Value     float64 `json:"value"`
	Timestamp APITime `json:"timestamp"`
}
