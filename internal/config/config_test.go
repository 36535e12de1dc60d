package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to be valid, got: %v", err)
	}

	start, end, err := cfg.Generate.Window()
	if err != nil {
		t.Fatalf("Window() failed: %v", err)
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days != 365 {
		t.Errorf("Expected 365-day default window, got %d", days)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"end before start", func(c *Config) {
			c.Generate.StartDate = "2025-01-31"
			c.Generate.EndDate = "2025-01-01"
		}, "before start_date"},
		{"bad date", func(c *Config) { c.Generate.StartDate = "01/11/2024" }, "generate.start_date"},
		{"zero customers", func(c *Config) { c.Generate.NumCustomers = 0 }, "num_customers"},
		{"negative loans", func(c *Config) { c.Generate.NumLoans = -1 }, "num_loans"},
		{"zero branches", func(c *Config) { c.Generate.NumBranches = 0 }, "num_branches"},
		{"fraction above one", func(c *Config) { c.Generate.RepaymentFraction = 1.5 }, "repayment_fraction"},
		{"fraction below zero", func(c *Config) { c.Generate.RepaymentFraction = -0.1 }, "repayment_fraction"},
		{"officer range", func(c *Config) {
			c.Generate.MinOfficers = 8
			c.Generate.MaxOfficers = 4
		}, "max_officers"},
		{"archive inside output", func(c *Config) {
			c.Generate.OutputDir = "out"
			c.Generate.ArchivePath = filepath.Join("out", "bundle.zip")
		}, "archive_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.NumCustomers = 0
	cfg.Generate.NumLoans = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	if strings.Count(err.Error(), "\n  - ") != 2 {
		t.Errorf("Expected two bullet points, got: %v", err)
	}
}

func TestBoundaryFractionsAllowed(t *testing.T) {
	for _, frac := range []float64{0, 1} {
		cfg := DefaultConfig()
		cfg.Generate.RepaymentFraction = frac
		if err := cfg.Validate(); err != nil {
			t.Errorf("Expected fraction %.1f to be valid, got: %v", frac, err)
		}
	}
}

func TestSingleDayWindowAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.StartDate = "2025-10-31"
	cfg.Generate.EndDate = "2025-10-31"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected single-day window to be valid, got: %v", err)
	}
}

func TestArchiveBesideOutputAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.OutputDir = "dataset"
	cfg.Generate.ArchivePath = "dataset.zip"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected sibling archive to be valid, got: %v", err)
	}
}

func TestLoadFromViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("generate.num_customers", 100)
	viper.Set("generate.start_date", "2025-01-01")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Generate.NumCustomers != 100 {
		t.Errorf("Expected 100 customers, got %d", cfg.Generate.NumCustomers)
	}
	if cfg.Generate.StartDate != "2025-01-01" {
		t.Errorf("Expected start 2025-01-01, got %s", cfg.Generate.StartDate)
	}
	// Unset keys keep their defaults
	if cfg.Generate.NumLoans != NumLoans {
		t.Errorf("Expected default loans %d, got %d", NumLoans, cfg.Generate.NumLoans)
	}
}

func TestValidateDatabase(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidateDatabase(); err == nil {
		t.Error("Expected missing DSN to fail")
	}
	cfg.Database.DSN = "user:pass@tcp(localhost:3306)/mfi"
	if err := cfg.ValidateDatabase(); err != nil {
		t.Errorf("Expected valid database config, got: %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	t.Setenv("MFIGEN_GENERATE_FRAUD_FRACTION", "0.2")
	t.Setenv("MFIGEN_GENERATE_END_DATE", "2025-06-30")

	SetDefaults()
	viper.SetEnvPrefix("MFIGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Generate.FraudFraction != 0.2 {
		t.Errorf("Expected fraud fraction 0.2, got %v", cfg.Generate.FraudFraction)
	}
	if cfg.Generate.EndDate != "2025-06-30" {
		t.Errorf("Expected end 2025-06-30, got %s", cfg.Generate.EndDate)
	}
	if cfg.Generate.Seed != Seed {
		t.Errorf("Expected default seed %d, got %d", Seed, cfg.Generate.Seed)
	}
}
