package export

import (
	"github.com/joho/godotenv"

	"github.com/railwayapp/henvdall/internal/audit"
)

// DotenvExporter writes the flagged keys as a dotenv file, ready to be filled in
type DotenvExporter struct{}

func (e *DotenvExporter) Name() string {
	return "dotenv"
}

func (e *DotenvExporter) Export(report audit.Report) ([]byte, error) {
	flagged := make(map[string]string, len(report.Issues))
	for _, issue := range report.Issues {
		flagged[issue.Key] = issue.Value
	}
	if len(flagged) == 0 {
		return nil, nil
	}

	out, err := godotenv.Marshal(flagged)
	if err != nil {
		return nil, err
	}
	return append([]byte(out), '\n'), nil
}

func NewDotenvExporter() Exporter {
	return &DotenvExporter{}
}
