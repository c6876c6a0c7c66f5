package report

import (
	"time"

	"costguardian/internal/analyzer"
)

// Data is the full payload handed to a reporter. Commands fill in only the
// sections they produced.
type Data struct {
	Tool      string                 `json:"tool"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Overview  *analyzer.CostOverview `json:"overview,omitempty"`
	Idle      *analyzer.IdleReport   `json:"idle,omitempty"`
	Anomalies []analyzer.CostAnomaly `json:"anomalies,omitempty"`
	Errors    []string               `json:"errors,omitempty"`
}

// Reporter renders report data to its destination.
type Reporter interface {
	Generate(data Data) error
}
