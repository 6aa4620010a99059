// Package db provides SQLite connectivity helpers and migration support for
// the graph metastore.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"
)

// Hardened DSN parameters applied to every pool.
const (
	busyTimeoutMillis = "5000"
	synchronousMode   = "NORMAL"
	journalMode       = "WAL"
)

// OpenWrite opens a single-connection write pool for the given SQLite file.
// SQLite allows one writer at a time; MaxOpenConns=1 plus _txlock=immediate
// keeps writers queued in Go instead of failing with SQLITE_BUSY.
func OpenWrite(path string) (*sql.DB, error) {
	return open(path, true, 1)
}

// OpenRead opens a read pool. maxOpen <= 0 selects a default of 4.
func OpenRead(path string, maxOpen int) (*sql.DB, error) {
	if maxOpen <= 0 {
		maxOpen = 4
	}
	return open(path, false, maxOpen)
}

// OpenPair opens the write pool and the read pool for one file.
func OpenPair(path string, readMaxOpen int) (writeDB, readDB *sql.DB, err error) {
	writeDB, err = OpenWrite(path)
	if err != nil {
		return nil, nil, err
	}
	readDB, err = OpenRead(path, readMaxOpen)
	if err != nil {
		_ = writeDB.Close()
		return nil, nil, err
	}
	return writeDB, readDB, nil
}

func open(path string, writable bool, maxOpen int) (*sql.DB, error) {
	params := url.Values{}
	params.Set("_journal_mode", journalMode)
	params.Set("_busy_timeout", busyTimeoutMillis)
	params.Set("_synchronous", synchronousMode)
	params.Set("_foreign_keys", "on")
	if writable {
		params.Set("_txlock", "immediate")
	}

	pool, err := sql.Open("sqlite3", path+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	pool.SetMaxOpenConns(maxOpen)
	pool.SetMaxIdleConns(maxOpen)
	pool.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	return pool, nil
}
