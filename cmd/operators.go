package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/guimove/ocpfleet/internal/orchestrator"
)

var operatorsCmd = &cobra.Command{
	Use:   "operators [roster.csv]",
	Short: "Report installed operator versions across the fleet",
	Long: `Inspects every cluster of the roster and prints one row per cluster with
one column per operator found anywhere in the fleet. A cell lists the
versions of that operator installed on the cluster, or is empty.

The roster is a CSV file of "id,name" records, or a ConfigMap given with
--roster-configmap. Clusters that cannot be inspected keep an empty row and
are reported as warnings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOperators,
}

func init() {
	f := operatorsCmd.Flags()
	f.StringP("output", "o", "", "output format: table, csv (alias file), json")
	f.String("output-file", "", "write the report to a file or s3://bucket/key")
	f.Bool("no-version", false, "omit the OpenShift version column")
	addRosterFlags(operatorsCmd)

	rootCmd.AddCommand(operatorsCmd)
}

func runOperators(cmd *cobra.Command, args []string) error {
	// Flag overrides
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output.Format = v
	}
	if v, _ := cmd.Flags().GetString("output-file"); v != "" {
		cfg.Output.File = v
	}
	if noVersion, _ := cmd.Flags().GetBool("no-version"); noVersion {
		cfg.Aggregation.IncludeVersion = false
	}

	// No cluster is inspected with an unusable configuration
	if err := cfg.ValidateOutput(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := loadRoster(ctx, cmd, args)
	if err != nil {
		return err
	}

	orch, err := newOrchestrator()
	if err != nil {
		return err
	}

	_, err = orch.Run(ctx, r, orchestrator.RunOptions{
		Format:      cfg.Output.Format,
		Destination: cfg.Output.File,
		MetricsFile: cfg.Metrics.TextfilePath,
	})
	return err
}
