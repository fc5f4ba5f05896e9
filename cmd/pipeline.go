package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	awspkg "github.com/guimove/ocpfleet/internal/aws"
	"github.com/guimove/ocpfleet/internal/cache"
	"github.com/guimove/ocpfleet/internal/inspector"
	"github.com/guimove/ocpfleet/internal/kube"
	"github.com/guimove/ocpfleet/internal/orchestrator"
	"github.com/guimove/ocpfleet/internal/output"
	"github.com/guimove/ocpfleet/internal/parser"
	"github.com/guimove/ocpfleet/internal/roster"
	"github.com/guimove/ocpfleet/pkg/logging"
)

// addRosterFlags registers the flags selecting a ConfigMap roster.
func addRosterFlags(cmd *cobra.Command) {
	cmd.Flags().String("roster-configmap", "", "read the roster from a ConfigMap (namespace/name)")
	cmd.Flags().String("roster-key", "", "ConfigMap data key holding the roster CSV")
}

// resolveInvoker builds the report source: captured reports when a reports
// directory is configured, the inspection tool otherwise. Either is wrapped
// in a report cache when a cache directory is set.
func resolveInvoker() (inspector.Invoker, error) {
	var inv inspector.Invoker
	if cfg.Inspector.ReportsDir != "" {
		logging.Debug("CLI", "Reading captured reports from %s", cfg.Inspector.ReportsDir)
		inv = inspector.NewStaticInvoker(cfg.Inspector.ReportsDir)
	} else {
		inv = inspector.NewExecInvoker(cfg.Inspector.Command,
			inspector.WithArgs(cfg.Inspector.Args...),
			inspector.WithIDFlag(cfg.Inspector.IDFlag),
			inspector.WithTimeout(cfg.Inspector.Timeout),
		)
	}

	if cfg.Cache.Dir == "" {
		return inv, nil
	}

	fc := cache.NewFileCache(cfg.Cache.Dir)
	if drop, _ := rootCmd.PersistentFlags().GetBool("clear-cache"); drop {
		if err := fc.Clear(); err != nil {
			return nil, fmt.Errorf("clearing report cache %s: %w", fc.Dir(), err)
		}
		logging.Info("CLI", "Cleared report cache %s", fc.Dir())
	}

	logging.Debug("CLI", "Caching reports in %s for %s", fc.Dir(), cfg.Cache.TTL)
	return inspector.NewCachingInvoker(inv, fc, cfg.Cache.TTL), nil
}

// loadRoster reads the roster from the positional file argument or from the
// ConfigMap named by --roster-configmap. Skipped records are logged.
func loadRoster(ctx context.Context, cmd *cobra.Command, args []string) (roster.Roster, error) {
	cmRef, _ := cmd.Flags().GetString("roster-configmap")

	var (
		r        roster.Roster
		warnings []error
		err      error
	)

	switch {
	case cmRef != "" && len(args) > 0:
		return nil, fmt.Errorf("give either a roster file or --roster-configmap, not both")
	case cmRef != "":
		key := cfg.Kubernetes.RosterKey
		if k, _ := cmd.Flags().GetString("roster-key"); k != "" {
			key = k
		}
		ref, perr := kube.ParseRosterRef(cmRef, key)
		if perr != nil {
			return nil, perr
		}
		client, kubeContext, cerr := kube.NewClient(kube.ClientOptions{
			Kubeconfig: cfg.Kubernetes.Kubeconfig,
			Context:    cfg.Kubernetes.Context,
		})
		if cerr != nil {
			return nil, fmt.Errorf("connecting to Kubernetes: %w", cerr)
		}
		logging.Debug("CLI", "Loading roster from %s (context %s)", ref, kubeContext)
		r, warnings, err = kube.LoadRoster(ctx, client, ref)
	case len(args) > 0:
		r, warnings, err = roster.ReadFile(args[0])
	default:
		return nil, fmt.Errorf("a roster file or --roster-configmap is required")
	}

	for _, w := range warnings {
		logging.Warn("Roster", "Skipping record: %v", w)
	}
	if err != nil {
		return nil, err
	}

	logging.Debug("CLI", "Loaded %d clusters: %s", len(r), strings.Join(r.IDs(), ", "))
	return r, nil
}

// newOrchestrator wires the aggregator, the metrics recorder and the S3
// uploader from the loaded configuration.
func newOrchestrator() (*orchestrator.Orchestrator, error) {
	inv, err := resolveInvoker()
	if err != nil {
		return nil, err
	}

	agg := orchestrator.NewAggregator(inv, parser.NewTextParser())
	agg.Parallelism = cfg.Aggregation.Parallelism
	agg.IncludeVersion = cfg.Aggregation.IncludeVersion

	orch := orchestrator.New(agg)
	orch.NewUploader = func(ctx context.Context) (output.Uploader, error) {
		u, err := awspkg.NewS3Uploader(ctx, "")
		if err != nil {
			return nil, err
		}
		return u, nil
	}
	return orch, nil
}
