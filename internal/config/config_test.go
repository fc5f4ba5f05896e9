package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if err := cfg.ValidateOutput(); err != nil {
		t.Fatalf("default output should be valid: %v", err)
	}
}

func TestValidateOutput_CSVRequiresFile(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "csv"
	if err := cfg.ValidateOutput(); !errors.Is(err, ErrOutputFileRequired) {
		t.Fatalf("expected ErrOutputFileRequired, got %v", err)
	}

	cfg.Output.File = "out.csv"
	if err := cfg.ValidateOutput(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateOutput_FileAlias(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "File"
	cfg.Output.File = "out.csv"
	if err := cfg.ValidateOutput(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Format != "csv" {
		t.Errorf("expected format normalized to csv, got %q", cfg.Output.Format)
	}
}

func TestValidateOutput_InvalidFormat(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "xml"
	if err := cfg.ValidateOutput(); err == nil {
		t.Error("expected error for invalid output format")
	}
}

func TestValidate_EmptyCommand(t *testing.T) {
	cfg := Default()
	cfg.Inspector.Command = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty command")
	}

	cfg.Inspector.ReportsDir = "/tmp/reports"
	if err := cfg.Validate(); err != nil {
		t.Errorf("reports dir should replace the command: %v", err)
	}
}

func TestValidate_CacheTTL(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = t.TempDir()
	cfg.Cache.TTL = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero cache ttl")
	}

	cfg.Cache.TTL = time.Minute
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_Parallelism_FixesZero(t *testing.T) {
	cfg := Default()
	cfg.Aggregation.Parallelism = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Aggregation.Parallelism != 1 {
		t.Errorf("expected parallelism fixed to 1, got %d", cfg.Aggregation.Parallelism)
	}
}

func TestValidate_IgnoresOutputSettings(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "csv"
	if err := cfg.Validate(); err != nil {
		t.Errorf("output settings must not affect general validation: %v", err)
	}
	if err := cfg.ValidateOutput(); !errors.Is(err, ErrOutputFileRequired) {
		t.Errorf("expected ErrOutputFileRequired, got %v", err)
	}
}
