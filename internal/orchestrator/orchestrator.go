package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/guimove/ocpfleet/internal/metrics"
	"github.com/guimove/ocpfleet/internal/model"
	"github.com/guimove/ocpfleet/internal/output"
	"github.com/guimove/ocpfleet/internal/report"
	"github.com/guimove/ocpfleet/internal/roster"
	"github.com/guimove/ocpfleet/pkg/logging"
)

// RunOptions selects how a run's report is presented.
type RunOptions struct {
	Format      string // table, csv, json, alerts
	Destination string // "" or "-" = stdout, s3://bucket/key, or a file path
	MetricsFile string // node-exporter textfile, empty = disabled
}

// Orchestrator coordinates the end-to-end pipeline:
// collect → schema → projection → render → write.
type Orchestrator struct {
	Aggregator *Aggregator
	Recorder   *metrics.Recorder
	Stdout     io.Writer
	Stderr     io.Writer

	// Used only for s3:// destinations
	NewUploader func(ctx context.Context) (output.Uploader, error)
}

// New creates an orchestrator around agg. Inspection metrics are recorded
// on a fresh Recorder.
func New(agg *Aggregator) *Orchestrator {
	rec := metrics.NewRecorder()
	agg.Observer = rec
	return &Orchestrator{
		Aggregator: agg,
		Recorder:   rec,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

// Run aggregates the roster and delivers the rendered report. The
// destination is resolved before any cluster is inspected and written only
// after the complete report has been rendered, so a canceled or failed run
// leaves it untouched. Clusters that could not be inspected are reported as
// warnings and do not fail the run.
func (o *Orchestrator) Run(ctx context.Context, r roster.Roster, opts RunOptions) (*model.FleetReport, error) {
	dest, err := output.Resolve(opts.Destination, output.Options{
		Stdout:      o.Stdout,
		ContentType: report.ContentType(opts.Format),
		NewUploader: o.NewUploader,
	})
	if err != nil {
		return nil, err
	}

	logging.Info("Orchestrator", "Inspecting %d clusters (parallelism %d)",
		len(r), max(o.Aggregator.Parallelism, 1))

	fr, err := o.Aggregator.Aggregate(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("aggregating fleet report: %w", err)
	}

	if o.Recorder != nil {
		o.Recorder.ObserveReport(fr)
	}

	logging.Info("Orchestrator", "Found %d distinct operators across %d clusters",
		len(fr.Schema.Columns), len(fr.Rows))

	var buf bytes.Buffer
	if err := report.NewReporter(opts.Format, &buf).Report(ctx, fr); err != nil {
		return nil, fmt.Errorf("generating report: %w", err)
	}

	if err := dest.Write(ctx, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("writing report to %s: %w", dest, err)
	}
	if dest.String() != "stdout" {
		logging.Info("Orchestrator", "Wrote %s report to %s", opts.Format, dest)
	}

	for _, f := range fr.Failures {
		logging.Warn("Orchestrator", "Cluster %s (%s) could not be inspected: %s",
			f.Cluster.Name, f.Cluster.ID, f.Error)
	}

	o.exportMetrics(opts.MetricsFile)
	return fr, nil
}

// exportMetrics writes the run metrics. Failures here never fail the run.
func (o *Orchestrator) exportMetrics(textfile string) {
	if o.Recorder == nil {
		return
	}
	if textfile != "" {
		if err := o.Recorder.WriteTextfile(textfile); err != nil {
			logging.Error("Metrics", err, "Could not write metrics textfile %s", textfile)
		}
	}
	if logging.Enabled(logging.LevelDebug) && o.Stderr != nil {
		if err := o.Recorder.WriteText(o.Stderr); err != nil {
			logging.Error("Metrics", err, "Could not dump metrics")
		}
	}
}
