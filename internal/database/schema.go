package database

import (
	"context"
	"fmt"
	"strings"
)

// SplitStatements splits a SQL script into statements, dropping comment lines
// and USE statements.
func SplitStatements(script string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSpace(current.String())
			current.Reset()
			if strings.HasPrefix(strings.ToUpper(stmt), "USE ") {
				continue
			}
			statements = append(statements, stmt)
		}
	}

	return statements
}

// CreateTables runs the CREATE TABLE statements of a script as
// CREATE TABLE IF NOT EXISTS, skipping DROP and database-level statements.
func CreateTables(ctx context.Context, pool *Pool, script string) error {
	for _, stmt := range SplitStatements(script) {
		upper := strings.ToUpper(stmt)
		if !strings.HasPrefix(upper, "CREATE TABLE") {
			continue
		}
		if !strings.HasPrefix(upper, "CREATE TABLE IF NOT EXISTS") {
			stmt = "CREATE TABLE IF NOT EXISTS" + stmt[len("CREATE TABLE"):]
		}
		if _, err := pool.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// CreateIndexes runs an index script after loading. Indexes and constraints
// that already exist are skipped. progress is called after each statement.
func CreateIndexes(ctx context.Context, pool *Pool, script string, progress func(done, total int)) error {
	statements := SplitStatements(script)

	for i, stmt := range statements {
		if _, err := pool.ExecContext(ctx, stmt); err != nil {
			errStr := err.Error()
			if !strings.Contains(errStr, "Duplicate") && !strings.Contains(errStr, "already exists") {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}
		if progress != nil {
			progress(i+1, len(statements))
		}
	}
	return nil
}
