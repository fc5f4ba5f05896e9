package report

import (
	"context"
	"fmt"
	"io"

	"github.com/guimove/ocpfleet/internal/model"
)

// AlertsReporter lists the active alerts of every cluster in roster order.
// A cluster without alerts gets a bare "Alerts:" line.
type AlertsReporter struct {
	w io.Writer
}

func (r *AlertsReporter) Report(ctx context.Context, fr *model.FleetReport) error {
	for _, row := range fr.Rows {
		fmt.Fprintf(r.w, "\nCluster Name: %s\nCluster ID: %s\n", row.Name, row.ID)

		if row.Failed {
			fmt.Fprintf(r.w, "Alerts: unavailable (inspection failed)\n")
			continue
		}

		fmt.Fprintf(r.w, "Alerts:\n")
		for _, alert := range row.Alerts {
			if _, err := fmt.Fprintf(r.w, "  %s\n", alert); err != nil {
				return fmt.Errorf("writing alerts: %w", err)
			}
		}
	}
	return nil
}
