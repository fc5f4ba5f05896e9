package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/guimove/ocpfleet/internal/model"
)

// CSVReporter writes the header row followed by one record per cluster.
type CSVReporter struct {
	w io.Writer
}

func (r *CSVReporter) Report(ctx context.Context, fr *model.FleetReport) error {
	cw := csv.NewWriter(r.w)
	if err := cw.Write(fr.Header()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	if err := cw.WriteAll(fr.Records()); err != nil {
		return fmt.Errorf("writing CSV records: %w", err)
	}
	return nil
}
