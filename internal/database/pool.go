package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/willfong/mfi-generator/internal/config"
)

// Pool wraps a sql.DB with statement metrics and lifecycle management
type Pool struct {
	db     *sql.DB
	config config.DatabaseConfig

	// Metrics
	totalQueries   atomic.Int64
	failedQueries  atomic.Int64
	totalLatencyNs atomic.Int64
}

// NewPool creates a connection pool for bulk loading. The DSN is rewritten to
// allow LOAD DATA LOCAL INFILE.
func NewPool(cfg config.DatabaseConfig) (*Pool, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	driver := cfg.Driver
	if driver == "" {
		driver = config.DBDriver
	}

	dsn := cfg.DSN
	if driver == "mysql" {
		var err error
		if dsn, err = EnableLocalInfile(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply pool configuration
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	return &Pool{db: db, config: cfg}, nil
}

// EnableLocalInfile parses a MySQL DSN and turns on LOCAL INFILE support
func EnableLocalInfile(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid database DSN: %w", err)
	}
	cfg.AllowAllFiles = true
	return cfg.FormatDSN(), nil
}

// MaskDSN hides the password in a DSN for display
func MaskDSN(dsn string) string {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "(invalid DSN)"
	}
	if cfg.Passwd != "" {
		cfg.Passwd = "***"
	}
	return cfg.FormatDSN()
}

// Connect verifies the database connection is working
func (p *Pool) Connect(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close gracefully shuts down the connection pool
func (p *Pool) Close() error {
	return p.db.Close()
}

// Conn reserves a single connection so session settings stick
func (p *Pool) Conn(ctx context.Context) (*sql.Conn, error) {
	return p.db.Conn(ctx)
}

// ExecContext executes a query that doesn't return rows
func (p *Pool) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := p.db.ExecContext(ctx, query, args...)
	p.recordQuery(time.Since(start), err)
	return result, err
}

// execConn runs a statement on a reserved connection and records it
func (p *Pool) execConn(ctx context.Context, conn *sql.Conn, query string) (sql.Result, error) {
	start := time.Now()
	result, err := conn.ExecContext(ctx, query)
	p.recordQuery(time.Since(start), err)
	return result, err
}

// recordQuery updates internal metrics
func (p *Pool) recordQuery(duration time.Duration, err error) {
	p.totalQueries.Add(1)
	p.totalLatencyNs.Add(duration.Nanoseconds())
	if err != nil {
		p.failedQueries.Add(1)
	}
}

// Stats returns current pool statistics
func (p *Pool) Stats() PoolStats {
	dbStats := p.db.Stats()
	total := p.totalQueries.Load()

	var avg time.Duration
	if total > 0 {
		avg = time.Duration(p.totalLatencyNs.Load() / total)
	}

	return PoolStats{
		OpenConnections: dbStats.OpenConnections,
		InUse:           dbStats.InUse,
		Idle:            dbStats.Idle,
		WaitCount:       dbStats.WaitCount,
		WaitDuration:    dbStats.WaitDuration,
		TotalQueries:    total,
		FailedQueries:   p.failedQueries.Load(),
		AvgLatency:      avg,
	}
}

// PoolStats contains connection pool and statement statistics
type PoolStats struct {
	// Connection pool stats
	OpenConnections int
	InUse           int
	Idle            int
	WaitCount       int64
	WaitDuration    time.Duration

	// Statement stats
	TotalQueries  int64
	FailedQueries int64
	AvgLatency    time.Duration
}
