package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/guimove/ocpfleet/internal/model"
)

// JSONReporter outputs the fleet report as JSON.
type JSONReporter struct {
	w io.Writer
}

type jsonOutput struct {
	*model.FleetReport
	Header           []string            `json:"header"`
	OperatorVersions map[string][]string `json:"operator_versions"`
}

func (r *JSONReporter) Report(ctx context.Context, fr *model.FleetReport) error {
	versions := make(map[string][]string, len(fr.Schema.Versions))
	for name, vs := range fr.Schema.Versions {
		versions[name] = vs.Sorted()
	}

	output := jsonOutput{
		FleetReport:      fr,
		Header:           fr.Header(),
		OperatorVersions: versions,
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
