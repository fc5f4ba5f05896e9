package model

import "time"

// Column labels of the fleet report.
const (
	ColumnClusterName     = "Cluster Name"
	ColumnClusterID       = "Cluster ID"
	ColumnPlatformVersion = "OpenShift Version"
)

// Schema is the run-wide column layout: the sorted union of operator names
// observed across the whole roster.
type Schema struct {
	Columns []string `json:"columns"`

	// Union of every cluster's versions per operator
	Versions OperatorSet `json:"-"`
}

// AggregatedRow is one cluster's data projected onto the schema.
type AggregatedRow struct {
	Name            string            `json:"cluster_name"`
	ID              string            `json:"cluster_id"`
	PlatformVersion string            `json:"platform_version"`
	Cells           map[string]string `json:"operators"`
	Alerts          []string          `json:"alerts"`
	Failed          bool              `json:"failed,omitempty"`
}

// Values returns the row as a flat record aligned with FleetReport.Header.
func (r AggregatedRow) Values(columns []string, includeVersion bool) []string {
	out := make([]string, 0, len(columns)+3)
	out = append(out, r.Name, r.ID)
	if includeVersion {
		out = append(out, r.PlatformVersion)
	}
	for _, col := range columns {
		out = append(out, r.Cells[col])
	}
	return out
}

// ClusterFailure records a cluster whose inspection failed during a run.
type ClusterFailure struct {
	Cluster ClusterRef `json:"cluster"`
	Error   string     `json:"error"`
}

// FleetReport is the aggregated result of one run over a roster.
type FleetReport struct {
	GeneratedAt    time.Time        `json:"generated_at"`
	Schema         Schema           `json:"schema"`
	Rows           []AggregatedRow  `json:"rows"`
	Failures       []ClusterFailure `json:"failures,omitempty"`
	IncludeVersion bool             `json:"include_version"`
}

// Header returns the report header row.
func (fr FleetReport) Header() []string {
	out := make([]string, 0, len(fr.Schema.Columns)+3)
	out = append(out, ColumnClusterName, ColumnClusterID)
	if fr.IncludeVersion {
		out = append(out, ColumnPlatformVersion)
	}
	return append(out, fr.Schema.Columns...)
}

// Records returns every row as a flat record aligned with Header.
func (fr FleetReport) Records() [][]string {
	out := make([][]string, len(fr.Rows))
	for i := range fr.Rows {
		out[i] = fr.Rows[i].Values(fr.Schema.Columns, fr.IncludeVersion)
	}
	return out
}
