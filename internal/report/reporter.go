package report

import (
	"context"
	"io"

	"github.com/guimove/ocpfleet/internal/model"
)

// Reporter formats a fleet report and writes it to an output destination.
type Reporter interface {
	Report(ctx context.Context, fr *model.FleetReport) error
}

// ContentType returns the MIME type of the given output format.
func ContentType(format string) string {
	switch format {
	case "csv":
		return "text/csv"
	case "json":
		return "application/json"
	default:
		return "text/plain"
	}
}

// NewReporter creates a reporter for the given format writing to w.
func NewReporter(format string, w io.Writer) Reporter {
	switch format {
	case "csv":
		return &CSVReporter{w: w}
	case "json":
		return &JSONReporter{w: w}
	case "alerts":
		return &AlertsReporter{w: w}
	default:
		return &TableReporter{w: w}
	}
}
