package export

import (
	"bytes"

	"github.com/BurntSushi/toml"

	"github.com/railwayapp/henvdall/internal/audit"
)

type TOMLExporter struct{}

func (e *TOMLExporter) Name() string {
	return "toml"
}

func (e *TOMLExporter) Export(report audit.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(issues(report)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func NewTOMLExporter() Exporter {
	return &TOMLExporter{}
}
