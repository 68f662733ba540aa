// Package database provides connection pool management and the transaction
// manager used as the unit of work across repositories.
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Config holds connection pool settings.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// Connect opens a connection pool and verifies it with a ping.
func Connect(cfg Config) (*sql.DB, error) {
	connStr := cfg.ConnectionString

	switch cfg.Driver {
	case "postgres":
	case "mysql":
		var err error
		connStr, err = MySQLFoundRowsDSN(connStr)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// MySQLFoundRowsDSN rewrites a MySQL connection string so that UPDATE results
// report matched rows instead of changed rows. The repositories use
// RowsAffected to detect missing rows, and without clientFoundRows a no-op
// update (the same values written twice) is indistinguishable from an update
// against a row that does not exist.
func MySQLFoundRowsDSN(dsn string) (string, error) {
	mysqlCfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse mysql connection string: %w", err)
	}
	mysqlCfg.ClientFoundRows = true
	return mysqlCfg.FormatDSN(), nil
}
