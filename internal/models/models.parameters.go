// FilePath: internal/models/models.parameters.go
package models

// AlarmParameters holds the per-user min/max thresholds used to classify
// sensor readings. The backend keeps at most one row per user; the UI treats
// absence as "not configured yet".
type AlarmParameters struct {
	ID              int     `json:"id,omitempty"`
	UserID          int     `json:"userid"`
	MinTemperature  float64 `json:"min_temperature" schema:"min_temperature"`
	MaxTemperature  float64 `json:"max_temperature" schema:"max_temperature"`
	MinHumidity     float64 `json:"min_humidity" schema:"min_humidity"`
	MaxHumidity     float64 `json:"max_humidity" schema:"max_humidity"`
	MinSoilMoisture float64 `json:"min_soil_moisture" schema:"min_soil_moisture"`
	MaxSoilMoisture float64 `json:"max_soil_moisture" schema:"max_soil_moisture"`
}
