package export

import (
	"encoding/json"

	"github.com/railwayapp/henvdall/internal/audit"
)

type JSONExporter struct{}

func (e *JSONExporter) Name() string {
	return "json"
}

func (e *JSONExporter) Export(report audit.Report) ([]byte, error) {
	out, err := json.MarshalIndent(issues(report), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func NewJSONExporter() Exporter {
	return &JSONExporter{}
}
