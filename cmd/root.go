package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/guimove/ocpfleet/internal/config"
	"github.com/guimove/ocpfleet/pkg/logging"
)

var (
	cfgFile string
	cfg     config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ocpfleet",
	Short: "Fleet-wide operator and alert report for OpenShift clusters",
	Long: `ocpfleet runs the cluster inspection tool once per cluster of a roster,
parses its text report and merges the results into one fleet view.

The operators report has one row per cluster and one column per operator
installed anywhere in the fleet. The alerts report lists the firing alerts
of every cluster.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the literal: loadConfig refers to rootCmd.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ocpfleet.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	// Global flags that map to config
	rootCmd.PersistentFlags().String("inspector-command", "", "inspection tool to run for each cluster")
	rootCmd.PersistentFlags().Duration("timeout", 0, "per-cluster inspection timeout (0 = none)")
	rootCmd.PersistentFlags().IntP("parallelism", "p", 0, "maximum concurrent inspections")
	rootCmd.PersistentFlags().String("reports-dir", "", "read captured <id>.txt reports instead of running the tool")
	rootCmd.PersistentFlags().String("cache-dir", "", "cache inspection reports in this directory")
	rootCmd.PersistentFlags().Duration("cache-ttl", 0, "how long cached reports stay fresh")
	rootCmd.PersistentFlags().String("metrics-file", "", "write run metrics to a node-exporter textfile")
	rootCmd.PersistentFlags().String("kubeconfig", "", "path to kubeconfig file")
	rootCmd.PersistentFlags().String("kube-context", "", "Kubernetes context name")
	rootCmd.PersistentFlags().Bool("clear-cache", false, "drop cached reports before inspecting")
}

// configFlags maps config keys to the persistent flags that override them.
var configFlags = map[string]string{
	"inspector.command":       "inspector-command",
	"inspector.timeout":       "timeout",
	"inspector.reports_dir":   "reports-dir",
	"aggregation.parallelism": "parallelism",
	"cache.dir":               "cache-dir",
	"cache.ttl":               "cache-ttl",
	"metrics.textfile_path":   "metrics-file",
	"kubernetes.kubeconfig":   "kubeconfig",
	"kubernetes.context":      "kube-context",
}

func loadConfig() error {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("ocpfleet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ocpfleet")
	}

	setDefaults(v, config.Default())

	for key, flag := range configFlags {
		if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}

	// Environment variable overrides, e.g. OCPFLEET_AGGREGATION_PARALLELISM
	v.SetEnvPrefix("OCPFLEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not an error if missing)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg = config.Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	if err := initLogging(); err != nil {
		return err
	}

	// Output settings only concern the operators report, see runOperators
	return cfg.Validate()
}

// setDefaults registers every config key with its default. Unset flags then
// do not override defaults with zero values, and AutomaticEnv can see keys
// that appear in no config file.
func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("inspector.command", d.Inspector.Command)
	v.SetDefault("inspector.id_flag", d.Inspector.IDFlag)
	v.SetDefault("inspector.timeout", d.Inspector.Timeout)
	v.SetDefault("inspector.reports_dir", d.Inspector.ReportsDir)
	v.SetDefault("aggregation.parallelism", d.Aggregation.Parallelism)
	v.SetDefault("aggregation.include_version", d.Aggregation.IncludeVersion)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("kubernetes.kubeconfig", d.Kubernetes.Kubeconfig)
	v.SetDefault("kubernetes.context", d.Kubernetes.Context)
	v.SetDefault("kubernetes.roster_key", d.Kubernetes.RosterKey)
	v.SetDefault("metrics.textfile_path", d.Metrics.TextfilePath)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.file", d.Output.File)
	v.SetDefault("log.level", d.Log.Level)
}

func initLogging() error {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if verbose {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, os.Stderr)
	return nil
}
