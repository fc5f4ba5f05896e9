package inspector

import (
	"context"
	"time"

	"github.com/guimove/ocpfleet/internal/cache"
	"github.com/guimove/ocpfleet/pkg/logging"
)

type cachedReport struct {
	ClusterID   string    `json:"cluster_id"`
	Report      string    `json:"report"`
	InspectedAt time.Time `json:"inspected_at"`
}

// CachingInvoker serves reports from a FileCache and falls back to the
// wrapped Invoker on a miss. Failed inspections are never cached.
type CachingInvoker struct {
	next  Invoker
	cache *cache.FileCache
	ttl   time.Duration
}

// NewCachingInvoker wraps next with a report cache.
func NewCachingInvoker(next Invoker, fc *cache.FileCache, ttl time.Duration) *CachingInvoker {
	return &CachingInvoker{next: next, cache: fc, ttl: ttl}
}

// Inspect returns a cached report when fresh, otherwise runs the wrapped invoker.
func (c *CachingInvoker) Inspect(ctx context.Context, clusterID string) (string, error) {
	var entry cachedReport
	if c.cache.Get(clusterID, c.ttl, &entry) && entry.ClusterID == clusterID {
		logging.Debug("Inspector", "Using cached report for cluster %s", clusterID)
		return entry.Report, nil
	}

	report, err := c.next.Inspect(ctx, clusterID)
	if err != nil {
		return "", err
	}

	entry = cachedReport{ClusterID: clusterID, Report: report, InspectedAt: time.Now()}
	if err := c.cache.Set(clusterID, entry); err != nil {
		logging.Warn("Inspector", "Could not cache report for cluster %s: %v", clusterID, err)
	}
	return report, nil
}
