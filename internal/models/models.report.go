// FilePath: internal/models/models.report.go
package models

// Report is a generated textual analysis for one user and date.
type Report struct {
	Date   string `json:"date"`
	UserID int    `json:"userid"`
	Text   string `json:"report"`
}
