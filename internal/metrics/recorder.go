// Package metrics records per-run inspection metrics and exports them in the
// Prometheus text format, either to a node-exporter textfile or to a writer.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/guimove/ocpfleet/internal/model"
)

const namespace = "ocpfleet"

// Recorder holds the metrics of one run on a private registry.
// It is safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry

	inspections *prometheus.CounterVec
	duration    prometheus.Histogram
	clusters    prometheus.Gauge
	columns     prometheus.Gauge
	lastRun     prometheus.Gauge
}

// NewRecorder creates a Recorder with all metrics registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		inspections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inspections_total",
			Help:      "Inspection tool invocations by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inspection_duration_seconds",
			Help:      "Wall time of a single cluster inspection.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
		clusters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "clusters",
			Help:      "Clusters in the roster of the last run.",
		}),
		columns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "operator_columns",
			Help:      "Distinct operator names observed across the fleet.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last report was generated.",
		}),
	}

	// Pre-create both label values so a clean run still exports failure=0.
	r.inspections.WithLabelValues("success")
	r.inspections.WithLabelValues("failure")

	r.registry.MustRegister(r.inspections, r.duration, r.clusters, r.columns, r.lastRun)
	return r
}

// ObserveInspection records the outcome of one cluster inspection.
func (r *Recorder) ObserveInspection(clusterID string, d time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.inspections.WithLabelValues(result).Inc()
	r.duration.Observe(d.Seconds())
}

// ObserveReport records fleet-level values of a finished report.
func (r *Recorder) ObserveReport(fr *model.FleetReport) {
	r.clusters.Set(float64(len(fr.Rows)))
	r.columns.Set(float64(len(fr.Schema.Columns)))
	r.lastRun.Set(float64(fr.GeneratedAt.Unix()))
}

// WriteTextfile writes all metrics to path in the format read by the
// node-exporter textfile collector. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

// WriteText encodes all metrics to w in the Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
	}
	return nil
}
