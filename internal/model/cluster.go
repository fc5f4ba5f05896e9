package model

import "time"

// UnknownVersion is reported when a cluster's platform version cannot be determined.
const UnknownVersion = "Unknown"

// ClusterRef identifies one cluster of the fleet roster.
type ClusterRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClusterFacts holds everything parsed from a single inspection report.
// A failed inspection still produces facts: empty operators, no alerts and
// an unknown platform version, with Err describing the failure.
type ClusterFacts struct {
	Cluster ClusterRef

	Operators       OperatorSet
	Alerts          []string
	PlatformVersion string

	// Set when the inspection tool could not produce a report
	Err error

	// Wall time spent on inspection and parsing
	Duration time.Duration
}

// Failed reports whether the inspection for this cluster failed.
func (f ClusterFacts) Failed() bool {
	return f.Err != nil
}

// FailedFacts returns the degraded facts recorded for a cluster whose
// inspection failed.
func FailedFacts(ref ClusterRef, err error) ClusterFacts {
	return ClusterFacts{
		Cluster:         ref,
		Operators:       OperatorSet{},
		PlatformVersion: UnknownVersion,
		Err:             err,
	}
}
