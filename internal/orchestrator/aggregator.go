package orchestrator

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guimove/ocpfleet/internal/inspector"
	"github.com/guimove/ocpfleet/internal/model"
	"github.com/guimove/ocpfleet/internal/parser"
	"github.com/guimove/ocpfleet/internal/roster"
	"github.com/guimove/ocpfleet/pkg/logging"
)

// InspectionObserver is notified after every cluster inspection.
// Implementations must be safe for concurrent use.
type InspectionObserver interface {
	ObserveInspection(clusterID string, d time.Duration, err error)
}

// Aggregator inspects every cluster of a roster once and builds the fleet
// report from the parsed facts.
type Aggregator struct {
	Invoker        inspector.Invoker
	Parser         parser.ReportParser
	Parallelism    int
	IncludeVersion bool
	Observer       InspectionObserver

	now func() time.Time
}

// NewAggregator creates an aggregator that inspects clusters sequentially.
func NewAggregator(inv inspector.Invoker, p parser.ReportParser) *Aggregator {
	return &Aggregator{
		Invoker:        inv,
		Parser:         p,
		Parallelism:    1,
		IncludeVersion: true,
		now:            time.Now,
	}
}

// Collect inspects each cluster exactly once, with at most Parallelism
// inspections in flight, and returns the facts in roster order.
//
// A failed inspection never aborts collection: the cluster gets degraded
// facts (see model.FailedFacts). Only cancellation of ctx is returned as an
// error.
func (a *Aggregator) Collect(ctx context.Context, r roster.Roster) ([]model.ClusterFacts, error) {
	facts := make([]model.ClusterFacts, len(r))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.Parallelism, 1))

	for i, ref := range r {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			facts[i] = a.Inspect(gctx, ref)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return facts, nil
}

// Inspect runs the invoker and parser for one cluster. Failures are
// recorded in the returned facts.
func (a *Aggregator) Inspect(ctx context.Context, ref model.ClusterRef) model.ClusterFacts {
	start := time.Now()
	raw, err := a.Invoker.Inspect(ctx, ref.ID)
	elapsed := time.Since(start)

	if a.Observer != nil {
		a.Observer.ObserveInspection(ref.ID, elapsed, err)
	}

	if err != nil {
		logging.Debug("Aggregator", "Inspection of cluster %s failed after %s: %v", ref.ID, elapsed, err)
		f := model.FailedFacts(ref, err)
		f.Duration = elapsed
		return f
	}

	parsed := a.Parser.Parse(raw)
	logging.Debug("Aggregator", "Cluster %s: %d operators, %d alerts, version %s (%s)",
		ref.ID, len(parsed.Operators), len(parsed.Alerts), parsed.PlatformVersion, elapsed)

	return model.ClusterFacts{
		Cluster:         ref,
		Operators:       parsed.Operators,
		Alerts:          parsed.Alerts,
		PlatformVersion: parsed.PlatformVersion,
		Duration:        elapsed,
	}
}

// BuildSchema folds every cluster's operators into the fleet schema. The
// column order depends only on the set of names, never on roster order.
func BuildSchema(facts []model.ClusterFacts) model.Schema {
	union := model.OperatorSet{}
	for i := range facts {
		union.Merge(facts[i].Operators)
	}
	return model.Schema{
		Columns:  union.Names(),
		Versions: union,
	}
}

// Project builds one row per cluster, in roster order, with a cell for every
// schema column. Operators a cluster does not run get an empty cell.
func Project(schema model.Schema, facts []model.ClusterFacts) []model.AggregatedRow {
	rows := make([]model.AggregatedRow, len(facts))
	for i := range facts {
		f := &facts[i]

		cells := make(map[string]string, len(schema.Columns))
		for _, col := range schema.Columns {
			cells[col] = f.Operators.Cell(col)
		}

		alerts := f.Alerts
		if alerts == nil {
			alerts = []string{}
		}

		rows[i] = model.AggregatedRow{
			Name:            f.Cluster.Name,
			ID:              f.Cluster.ID,
			PlatformVersion: f.PlatformVersion,
			Cells:           cells,
			Alerts:          alerts,
			Failed:          f.Failed(),
		}
	}
	return rows
}

// Aggregate runs collection, the schema fold and the projection. No row is
// built before every cluster has contributed to the schema.
func (a *Aggregator) Aggregate(ctx context.Context, r roster.Roster) (*model.FleetReport, error) {
	facts, err := a.Collect(ctx, r)
	if err != nil {
		return nil, err
	}
	return a.assemble(facts), nil
}

func (a *Aggregator) assemble(facts []model.ClusterFacts) *model.FleetReport {
	schema := BuildSchema(facts)

	var failures []model.ClusterFailure
	for i := range facts {
		if facts[i].Failed() {
			failures = append(failures, model.ClusterFailure{
				Cluster: facts[i].Cluster,
				Error:   facts[i].Err.Error(),
			})
		}
	}

	now := time.Now
	if a.now != nil {
		now = a.now
	}

	return &model.FleetReport{
		GeneratedAt:    now().UTC(),
		Schema:         schema,
		Rows:           Project(schema, facts),
		Failures:       failures,
		IncludeVersion: a.IncludeVersion,
	}
}
