package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONReporter writes the report as indented JSON.
type JSONReporter struct {
	Writer io.Writer
}

// Generate encodes the report data.
func (r *JSONReporter) Generate(data Data) error {
	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return nil
}
