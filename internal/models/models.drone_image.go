// FilePath: internal/models/models.drone_image.go
package models

// FieldStatus is the analysis verdict attached to a processed drone image.
type FieldStatus string

const (
	FieldStatusExcellent    FieldStatus = "EXCELLENT"
	FieldStatusGood         FieldStatus = "GOOD"
	FieldStatusFair         FieldStatus = "FAIR"
	FieldStatusPoor         FieldStatus = "POOR"
	FieldStatusCritical     FieldStatus = "CRITICAL"
	FieldStatusFireDetected FieldStatus = "FIRE_DETECTED"
)

// DisplayName returns the badge label shown on the drone images page.
func (s FieldStatus) DisplayName() string {
	switch s {
	case FieldStatusExcellent:
		return "Excelente"
	case FieldStatusGood:
		return "Bueno"
	case FieldStatusFair:
		return "Regular"
	case FieldStatusPoor:
		return "Malo"
	case FieldStatusCritical:
		return "Crítico"
	case FieldStatusFireDetected:
		return "FUEGO DETECTADO"
	default:
		if s == "" {
			return "Desconocido"
		}
		return string(s)
	}
}

// BadgeColor returns the badge background for the status.
func (s FieldStatus) BadgeColor() string {
	switch s {
	case FieldStatusExcellent:
		return "#27ae60"
	case FieldStatusGood:
		return "#2ecc71"
	case FieldStatusFair:
		return "#f39c12"
	case FieldStatusPoor:
		return "#e67e22"
	case FieldStatusCritical:
		return "#c0392b"
	case FieldStatusFireDetected:
		return "#e74c3c"
	default:
		return "#95a5a6"
	}
}

// DroneImage is one captured/processed field image as served by the images
// resource. Read-only in the dashboard.
type DroneImage struct {
	ID              int         `json:"id,omitempty"`
	DroneID         string      `json:"drone_id"`
	RawURL          string      `json:"raw_url,omitempty"`
	ProcessedURL    string      `json:"processed_url,omitempty"`
	RawS3Key        string      `json:"raw_s3_key,omitempty"`
	ProcessedS3Key  string      `json:"processed_s3_key,omitempty"`
	FieldStatus     FieldStatus `json:"field_status"`
	Confidence      float64     `json:"analysis_confidence"`
	ProcessedAt     APITime     `json:"processed_at"`
	AnalyzedAt      APITime     `json:"analyzed_at"`
}
