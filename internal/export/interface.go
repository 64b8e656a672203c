// Package export serializes audit reports for machine consumption.
package export

import (
	"fmt"
	"strings"

	"github.com/railwayapp/henvdall/internal/audit"
)

// Exporter defines the interface for exporting audit reports to various formats
type Exporter interface {
	// Export converts a report to the target format
	Export(report audit.Report) ([]byte, error)

	// Name returns the exporter name (e.g., "json", "yaml", "dotenv")
	Name() string
}

// Formats lists the names accepted by NewExporter
var Formats = []string{"json", "yaml", "toml", "dotenv"}

// NewExporter returns the exporter for format
func NewExporter(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONExporter(), nil
	case "yaml", "yml":
		return NewYAMLExporter(), nil
	case "toml":
		return NewTOMLExporter(), nil
	case "dotenv", "env":
		return NewDotenvExporter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected one of %s)", format, strings.Join(Formats, ", "))
	}
}

// issues never serializes as null
func issues(report audit.Report) audit.Report {
	if report.Issues == nil {
		report.Issues = []audit.Issue{}
	}
	return report
}
