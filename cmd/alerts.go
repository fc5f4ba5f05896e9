package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/guimove/ocpfleet/internal/orchestrator"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts [roster.csv]",
	Short: "List firing alerts for every cluster of the fleet",
	Long: `Inspects every cluster of the roster and prints, per cluster, the alerts
found in its report in report order. Repeated alerts are listed each time
they appear.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAlerts,
}

func init() {
	alertsCmd.Flags().String("output-file", "", "write the listing to a file or s3://bucket/key")
	addRosterFlags(alertsCmd)

	rootCmd.AddCommand(alertsCmd)
}

func runAlerts(cmd *cobra.Command, args []string) error {
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

	dest, _ := cmd.Flags().GetString("output-file")
	_, err = orch.Run(ctx, r, orchestrator.RunOptions{
		Format:      "alerts",
		Destination: dest,
		MetricsFile: cfg.Metrics.TextfilePath,
	})
	return err
}
