package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/willfong/mfi-generator/internal/ui"
)

//go:embed schemas/*.sql
var schemaFS embed.FS

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema [type]",
	Short: "Output database schema files",
	Long: `Output the SQL schema for setting up the database.

Available schema types:
  full      Complete schema with tables and indexes (default)
  tables    Tables only, no indexes (for bulk loading)
  indexes   Indexes only (run after bulk data load)

The schema covers the ten dataset tables and targets MariaDB 11+ or MySQL 8+.

Bulk Loading Strategy:
  1. Create tables without indexes: mfigen schema tables | mariadb ...
  2. Load the CSVs with LOAD DATA INFILE (or mfigen import)
  3. Create indexes and foreign keys: mfigen schema indexes | mariadb ...

Examples:
  mfigen schema                           # Output complete schema
  mfigen schema full -o kechita.sql       # Save full schema to file
  mfigen schema tables | mariadb kechita  # Create tables only
  mfigen schema indexes                   # Output index creation SQL`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"full", "tables", "indexes"},
	Run:       runSchema,
}

var schemaOutputFile string

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaOutputFile, "output", "o", "", "output file (default: stdout)")
}

func runSchema(cmd *cobra.Command, args []string) {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}

	schemaType := "full"
	if len(args) > 0 {
		schemaType = args[0]
	}

	content, err := readSchema(schemaType)
	if err == nil && schemaOutputFile == "" {
		_, err = cmd.OutOrStdout().Write(content)
	} else if err == nil {
		err = writeSchemaFile(schemaOutputFile, content)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}
	if schemaOutputFile != "" {
		fmt.Fprintln(os.Stderr, u.Success("Schema written to: "+schemaOutputFile))
	}
}

// writeSchemaFile writes content to path, creating parent directories.
func writeSchemaFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}

// schemaFiles maps schema types to embedded files
var schemaFiles = map[string]string{
	"full":    "schemas/schema.sql",
	"tables":  "schemas/schema_no_indexes.sql",
	"indexes": "schemas/schema_indexes.sql",
}

// readSchema returns the embedded SQL for a schema type
func readSchema(schemaType string) ([]byte, error) {
	filename, ok := schemaFiles[schemaType]
	if !ok {
		return nil, fmt.Errorf("unknown schema type '%s' (valid types: full, tables, indexes)", schemaType)
	}
	content, err := schemaFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	return content, nil
}
