// Package inspector runs the external cluster-inspection tool and returns its
// raw text report.
package inspector

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvocation marks every failure to obtain a report for a cluster.
	ErrInvocation = errors.New("inspection failed")
)

// Invoker produces the raw inspection report for one cluster.
type Invoker interface {
	Inspect(ctx context.Context, clusterID string) (string, error)
}

// InvocationError describes a failed inspection of a single cluster.
type InvocationError struct {
	ClusterID string
	ExitCode  int    // -1 when the process did not exit normally
	Stderr    string // trimmed, possibly truncated
	Err       error
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("inspecting cluster %s", e.ClusterID)
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(": exit status %d", e.ExitCode)
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Unwrap exposes both ErrInvocation and the underlying cause.
func (e *InvocationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvocation}
	}
	return []error{ErrInvocation, e.Err}
}
