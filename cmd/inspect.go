package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/guimove/ocpfleet/internal/model"
	"github.com/guimove/ocpfleet/internal/report"
	"github.com/guimove/ocpfleet/internal/roster"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <cluster-id>",
	Short: "Inspect one cluster and display the parsed report",
	Long: `Runs the inspection tool for a single cluster and shows what the parser
extracted from its report: platform version, operators and alerts. Useful
for checking a new tool version against the report grammar.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.StringP("output", "o", "table", "output format: table, json")
	f.String("name", "", "cluster name shown in the output (default: the id)")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ref := model.ClusterRef{ID: args[0], Name: args[0]}
	if name, _ := cmd.Flags().GetString("name"); name != "" {
		ref.Name = name
	}

	orch, err := newOrchestrator()
	if err != nil {
		return err
	}
	fr, err := orch.Aggregator.Aggregate(ctx, roster.Roster{ref})
	if err != nil {
		return err
	}
	if len(fr.Failures) > 0 {
		return fmt.Errorf("inspecting cluster %s: %s", ref.ID, fr.Failures[0].Error)
	}

	outputFmt, _ := cmd.Flags().GetString("output")
	var buf bytes.Buffer
	switch outputFmt {
	case "json":
		if err := report.NewReporter("json", &buf).Report(ctx, fr); err != nil {
			return err
		}
	case "table":
		if err := report.NewTableReporter(&buf).Report(ctx, fr); err != nil {
			return err
		}
		if err := report.NewReporter("alerts", &buf).Report(ctx, fr); err != nil {
			return err
		}
	default:
		return fmt.Errorf("output format must be table or json, got %q", outputFmt)
	}

	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}
