// Package database owns the SQLite handle. All access is funneled through DB,
// which serializes writes behind a single lock while letting reads proceed
// concurrently with each other.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/madpixels/lingocards/internal/infrastructure/config"
)

// driverName identifies the sqlite driver variant carrying ulower, a
// Unicode-aware LOWER replacement. SQLite's built-in LOWER folds ASCII only,
// which would make case-insensitive search miss any non-Latin text.
const driverName = "sqlite3_unicode"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("ulower", strings.ToLower, true)
		},
	})
}

// DB wraps the sqlite connection with a single-writer, multi-reader queue.
// SQLite allows only one writer per database file; the lock keeps write
// transactions from ever contending at the driver level.
type DB struct {
	conn *sqlx.DB
	mu   sync.RWMutex
}

// NewConnection opens (creating if needed) the database file, applies the
// required pragmas and initializes the schema. The returned cleanup closes
// the handle.
func NewConnection(cfg *config.Config) (*DB, func(), error) {
	path := cfg.Database.Path
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	conn, err := sqlx.Connect(driverName, path)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	db := &DB{conn: conn}
	cleanup := func() { _ = conn.Close() }

	if err := db.init(); err != nil {
		cleanup()
		return nil, nil, err
	}
	return db, cleanup, nil
}

// NewMemoryConnection opens a private in-memory database. Used by tests.
func NewMemoryConnection() (*DB, func(), error) {
	conn, err := sqlx.Connect(driverName, ":memory:")
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	db := &DB{conn: conn}
	cleanup := func() { _ = conn.Close() }
	if err := db.init(); err != nil {
		cleanup()
		return nil, nil, err
	}
	return db, cleanup, nil
}

func (d *DB) init() error {
	if _, err := d.conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	// A single underlying connection keeps the in-memory database coherent
	// and matches the one-writer model of a sqlite file.
	d.conn.SetMaxOpenConns(1)
	d.conn.SetMaxIdleConns(1)
	return initSchema(d.conn)
}

// Read runs fn with shared access. Reads may overlap each other but never a
// write.
func (d *DB) Read(ctx context.Context, fn func(conn *sqlx.DB) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return fn(d.conn)
}

// Write runs fn inside a transaction with exclusive access. At most one write
// is in flight at a time; on error the transaction is rolled back, so partial
// writes never land.
func (d *DB) Write(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	tx, err := d.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
