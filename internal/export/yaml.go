package export

import (
	"gopkg.in/yaml.v3"

	"github.com/railwayapp/henvdall/internal/audit"
)

type YAMLExporter struct{}

func (e *YAMLExporter) Name() string {
	return "yaml"
}

func (e *YAMLExporter) Export(report audit.Report) ([]byte, error) {
	return yaml.Marshal(issues(report))
}

func NewYAMLExporter() Exporter {
	return &YAMLExporter{}
}
