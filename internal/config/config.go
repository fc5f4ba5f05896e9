package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrOutputFileRequired is returned when CSV output is requested without a destination.
var ErrOutputFileRequired = errors.New("an output file must be specified for csv output")

// Config is the top-level configuration for ocpfleet.
type Config struct {
	Inspector   InspectorConfig   `yaml:"inspector" mapstructure:"inspector"`
	Aggregation AggregationConfig `yaml:"aggregation" mapstructure:"aggregation"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Kubernetes  KubernetesConfig  `yaml:"kubernetes" mapstructure:"kubernetes"`
	Metrics     MetricsConfig     `yaml:"metrics" mapstructure:"metrics"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

type InspectorConfig struct {
	Command string        `yaml:"command" mapstructure:"command"`
	Args    []string      `yaml:"args" mapstructure:"args"`
	IDFlag  string        `yaml:"id_flag" mapstructure:"id_flag"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Read <reports_dir>/<id>.txt instead of running the command
	ReportsDir string `yaml:"reports_dir" mapstructure:"reports_dir"`
}

type AggregationConfig struct {
	Parallelism    int  `yaml:"parallelism" mapstructure:"parallelism"`
	IncludeVersion bool `yaml:"include_version" mapstructure:"include_version"`
}

type CacheConfig struct {
	Dir string        `yaml:"dir" mapstructure:"dir"` // empty = disabled
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// KubernetesConfig locates a roster stored in a ConfigMap.
type KubernetesConfig struct {
	Kubeconfig string `yaml:"kubeconfig" mapstructure:"kubeconfig"`
	Context    string `yaml:"context" mapstructure:"context"`
	RosterKey  string `yaml:"roster_key" mapstructure:"roster_key"`
}

type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path" mapstructure:"textfile_path"`
}

type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"`
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Inspector: InspectorConfig{
			Command: "ocp_insights.sh",
			IDFlag:  "--id",
			Timeout: 2 * time.Minute,
		},
		Aggregation: AggregationConfig{
			Parallelism:    4,
			IncludeVersion: true,
		},
		Cache: CacheConfig{
			TTL: 15 * time.Minute,
		},
		Kubernetes: KubernetesConfig{
			RosterKey: "clusters.csv",
		},
		Output: OutputConfig{
			Format: "table",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the settings shared by every command.
func (c *Config) Validate() error {
	if c.Inspector.Command == "" && c.Inspector.ReportsDir == "" {
		return fmt.Errorf("inspector command must not be empty")
	}
	if c.Inspector.Timeout < 0 {
		return fmt.Errorf("inspector timeout must be non-negative, got %v", c.Inspector.Timeout)
	}
	if c.Cache.Dir != "" && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive when caching is enabled, got %v", c.Cache.TTL)
	}
	if c.Aggregation.Parallelism <= 0 {
		c.Aggregation.Parallelism = 1
	}
	return nil
}

// ValidateOutput checks the operators report output settings. It normalizes
// the format, accepting "file" as an alias for "csv".
func (c *Config) ValidateOutput() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "file" {
		c.Output.Format = "csv"
	}
	validFormats := map[string]bool{"table": true, "csv": true, "json": true}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("output format must be table, csv, or json, got %q", c.Output.Format)
	}
	if c.Output.Format == "csv" && c.Output.File == "" {
		return ErrOutputFileRequired
	}
	return nil
}
