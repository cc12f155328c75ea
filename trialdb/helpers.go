package trialdb

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"cohort.clinicaltrials.dev/internal/appconf"
)

//go:embed schema.sql
var ddl string

// connPragmas are applied to every pooled connection. The cascade deletes on
// the dashboard tables need foreign_keys enabled on the connection issuing
// the delete, so a one-off Exec is not enough.
const connPragmas = "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// createDB opens the SQLite database at the configured path and applies the schema
func createDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("test database must use in-memory storage, got %s", config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath+connPragmas)
	if err != nil {
		return nil, err
	}

	configureConnectionPool(db, config.DBPath)

	ctx := context.Background()
	err = performDatabaseMigration(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	return db, nil
}

// configureConnectionPool sizes the pool for concurrent API reads. In-memory
// databases are pinned to a single connection because each pooled connection
// would otherwise open its own empty database.
func configureConnectionPool(db *sql.DB, dbPath string) {
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
		return
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	statements := strings.Split(ddl, "-- migrate") // Split DDL into individual statements
	for _, stmt := range statements {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, trimmedStmt); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmedStmt, err)
		}
	}
	return nil
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
