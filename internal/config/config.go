package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the dataset generator
type Config struct {
	// Database configuration (import command)
	Database DatabaseConfig `mapstructure:"database"`

	// Data generation configuration
	Generate GenerateConfig `mapstructure:"generate"`

	// Logging
	Verbose bool `mapstructure:"verbose"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	// Connection string (DSN)
	// Format: user:password@tcp(host:port)/database
	DSN string `mapstructure:"dsn"`

	// Driver (mysql)
	Driver string `mapstructure:"driver"`

	// Connection pool settings
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// GenerateConfig holds data generation settings
type GenerateConfig struct {
	// Random seed for reproducibility (0 = random)
	Seed int64 `mapstructure:"seed"`

	// Output locations
	OutputDir   string `mapstructure:"output_dir"`
	ArchivePath string `mapstructure:"archive_path"`

	// Volume settings
	NumCustomers int `mapstructure:"num_customers"`
	NumLoans     int `mapstructure:"num_loans"`
	NumBranches  int `mapstructure:"num_branches"`
	MinOfficers  int `mapstructure:"min_officers"`
	MaxOfficers  int `mapstructure:"max_officers"`

	// Simulation window, inclusive (YYYY-MM-DD)
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`

	// Subsampling (0.0-1.0) and the fixed seeds that pick each subsample
	RepaymentFraction float64 `mapstructure:"repayment_fraction"`
	FraudFraction     float64 `mapstructure:"fraud_fraction"`
	FeatureFraction   float64 `mapstructure:"feature_fraction"`
	RepaymentSeed     int64   `mapstructure:"repayment_seed"`
	FraudSeed         int64   `mapstructure:"fraud_seed"`
	FeatureSeed       int64   `mapstructure:"feature_seed"`

	// Age is ReferenceYear minus birth year
	ReferenceYear int `mapstructure:"reference_year"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          DBDriver,
			MaxOpenConns:    DBMaxOpenConns,
			MaxIdleConns:    DBMaxIdleConns,
			ConnMaxLifetime: DBConnMaxLifetime,
			ConnMaxIdleTime: DBConnMaxIdleTime,
		},
		Generate: GenerateConfig{
			Seed:              Seed,
			OutputDir:         OutputDir,
			ArchivePath:       ArchivePath,
			NumCustomers:      NumCustomers,
			NumLoans:          NumLoans,
			NumBranches:       NumBranches,
			MinOfficers:       MinOfficersPerBranch,
			MaxOfficers:       MaxOfficersPerBranch,
			StartDate:         StartDate,
			EndDate:           EndDate,
			RepaymentFraction: RepaymentSampleFraction,
			FraudFraction:     FraudSampleFraction,
			FeatureFraction:   FeatureSampleFraction,
			RepaymentSeed:     RepaymentSampleSeed,
			FraudSeed:         FraudSampleSeed,
			FeatureSeed:       FeatureSampleSeed,
			ReferenceYear:     ReferenceYear,
		},
		Verbose: false,
	}
}

// SetDefaults registers every key with viper so environment variables and
// config files can override keys that have no bound flag.
func SetDefaults() {
	d := DefaultConfig()

	viper.SetDefault("verbose", d.Verbose)

	viper.SetDefault("database.dsn", d.Database.DSN)
	viper.SetDefault("database.driver", d.Database.Driver)
	viper.SetDefault("database.max_open_conns", d.Database.MaxOpenConns)
	viper.SetDefault("database.max_idle_conns", d.Database.MaxIdleConns)
	viper.SetDefault("database.conn_max_lifetime", d.Database.ConnMaxLifetime)
	viper.SetDefault("database.conn_max_idle_time", d.Database.ConnMaxIdleTime)

	g := d.Generate
	viper.SetDefault("generate.seed", g.Seed)
	viper.SetDefault("generate.output_dir", g.OutputDir)
	viper.SetDefault("generate.archive_path", g.ArchivePath)
	viper.SetDefault("generate.num_customers", g.NumCustomers)
	viper.SetDefault("generate.num_loans", g.NumLoans)
	viper.SetDefault("generate.num_branches", g.NumBranches)
	viper.SetDefault("generate.min_officers", g.MinOfficers)
	viper.SetDefault("generate.max_officers", g.MaxOfficers)
	viper.SetDefault("generate.start_date", g.StartDate)
	viper.SetDefault("generate.end_date", g.EndDate)
	viper.SetDefault("generate.repayment_fraction", g.RepaymentFraction)
	viper.SetDefault("generate.fraud_fraction", g.FraudFraction)
	viper.SetDefault("generate.feature_fraction", g.FeatureFraction)
	viper.SetDefault("generate.repayment_seed", g.RepaymentSeed)
	viper.SetDefault("generate.fraud_seed", g.FraudSeed)
	viper.SetDefault("generate.feature_seed", g.FeatureSeed)
	viper.SetDefault("generate.reference_year", g.ReferenceYear)
}

// Load reads configuration from viper into a Config struct
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Unmarshal viper config into struct
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Window returns the parsed simulation window. Both dates are UTC midnights.
func (g *GenerateConfig) Window() (start, end time.Time, err error) {
	start, err = time.Parse(DateLayout, g.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("generate.start_date %q: %w", g.StartDate, err)
	}
	end, err = time.Parse(DateLayout, g.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("generate.end_date %q: %w", g.EndDate, err)
	}
	return start, end, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []string
	g := &c.Generate

	// Validate generation config
	if g.NumCustomers <= 0 {
		errs = append(errs, "generate.num_customers must be positive")
	}
	if g.NumLoans <= 0 {
		errs = append(errs, "generate.num_loans must be positive")
	}
	if g.NumBranches <= 0 {
		errs = append(errs, "generate.num_branches must be positive")
	}
	if g.MinOfficers < 1 {
		errs = append(errs, "generate.min_officers must be >= 1")
	}
	if g.MaxOfficers < g.MinOfficers {
		errs = append(errs, "generate.max_officers must not be less than min_officers")
	}

	// Validate window
	start, end, err := g.Window()
	if err != nil {
		errs = append(errs, err.Error())
	} else if end.Before(start) {
		errs = append(errs, fmt.Sprintf("generate.end_date (%s) is before start_date (%s)", g.EndDate, g.StartDate))
	}

	// Validate fractions
	if g.RepaymentFraction < 0 || g.RepaymentFraction > 1 {
		errs = append(errs, "generate.repayment_fraction must be between 0.0 and 1.0")
	}
	if g.FraudFraction < 0 || g.FraudFraction > 1 {
		errs = append(errs, "generate.fraud_fraction must be between 0.0 and 1.0")
	}
	if g.FeatureFraction < 0 || g.FeatureFraction > 1 {
		errs = append(errs, "generate.feature_fraction must be between 0.0 and 1.0")
	}

	// Validate output locations
	if g.OutputDir == "" {
		errs = append(errs, "generate.output_dir must be set")
	}
	if g.ArchivePath == "" {
		errs = append(errs, "generate.archive_path must be set")
	} else if g.OutputDir != "" && isWithin(g.OutputDir, g.ArchivePath) {
		errs = append(errs, "generate.archive_path must not be inside output_dir")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", joinErrors(errs))
	}

	return nil
}

// ValidateDatabase checks the settings the import command needs
func (c *Config) ValidateDatabase() error {
	var errs []string

	if c.Database.DSN == "" {
		errs = append(errs, "database.dsn is required")
	}
	if c.Database.MaxOpenConns < 1 {
		errs = append(errs, "database.max_open_conns must be >= 1")
	}
	if c.Database.MaxIdleConns < 0 {
		errs = append(errs, "database.max_idle_conns must be >= 0")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, "database.max_idle_conns should not exceed max_open_conns")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", joinErrors(errs))
	}

	return nil
}

// isWithin reports whether path resolves to a location under dir
func isWithin(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// joinErrors joins error messages with newline and bullet points
func joinErrors(errs []string) string {
	result := errs[0]
	for i := 1; i < len(errs); i++ {
		result += "\n  - " + errs[i]
	}
	return result
}
