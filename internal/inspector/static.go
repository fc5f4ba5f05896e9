package inspector

import (
	"context"
	"os"
	"path/filepath"
)

// StaticInvoker serves previously captured reports from a directory, one
// <clusterID>.txt file per cluster. Used for offline analysis and tests.
type StaticInvoker struct {
	dir     string
	reports map[string]string
}

// NewStaticInvoker creates an invoker that reads reports from dir.
func NewStaticInvoker(dir string) *StaticInvoker {
	return &StaticInvoker{dir: dir}
}

// NewStaticInvokerFromReports creates an invoker from in-memory reports keyed
// by cluster id. Unknown ids fail like an unreachable cluster.
func NewStaticInvokerFromReports(reports map[string]string) *StaticInvoker {
	return &StaticInvoker{reports: reports}
}

// Inspect returns the stored report for clusterID.
func (s *StaticInvoker) Inspect(ctx context.Context, clusterID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.reports != nil {
		report, ok := s.reports[clusterID]
		if !ok {
			return "", &InvocationError{ClusterID: clusterID, ExitCode: -1, Err: os.ErrNotExist}
		}
		return report, nil
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(clusterID)+".txt"))
	if err != nil {
		return "", &InvocationError{ClusterID: clusterID, ExitCode: -1, Err: err}
	}
	return string(data), nil
}
