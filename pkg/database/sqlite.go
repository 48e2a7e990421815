// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/lopezator/migrator"
	"github.com/mattn/go-sqlite3"
)

var (
	sqliteVersionLogOnce sync.Once

	sqliteMigrations = migrator.Migrations(
		execsql(
			"create_accounts",
			`create table if not exists accounts(account_id primary key not null, label, balance real not null default 0, created_at datetime);`,
		),
		execsql(
			"create_transactions",
			`create table if not exists transactions(transaction_id primary key not null, account_id not null references accounts(account_id), amount real not null, occurred_at datetime, kind not null);`,
		),
		execsql(
			"create_transactions__account_id_idx",
			`create index transactions_account_id on transactions (account_id);`,
		),
		execsql(
			"create_transactions__kind_idx",
			`create index transactions_kind on transactions (kind);`,
		),
	)
)

type sqlite struct {
	path   string
	logger log.Logger
}

func (s *sqlite) Connect(ctx context.Context) (*sql.DB, error) {
	if s == nil {
		return nil, fmt.Errorf("nil %T", s)
	}

	sqliteVersionLogOnce.Do(func() {
		if v, _, _ := sqlite3.Version(); v != "" {
			s.logger.Log("database", fmt.Sprintf("sqlite version %s", v))
		}
	})

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return db, err
	}
	if err := migrate(db, sqliteMigrations); err != nil {
		return db, err
	}

	// Spin up metrics only after everything works
	go recordStats(ctx, db, "sqlite")

	return db, nil
}

func sqliteConnection(logger log.Logger, path string) *sqlite {
	if path == "" || strings.Contains(path, "..") {
		// don't filepath.Abs to avoid full-fs reads
		path = "ledger.db"
	}
	return &sqlite{
		path:   path,
		logger: logger,
	}
}

// TestSQLiteDB is a wrapper around sql.DB for SQLite connections designed for tests to provide
// a clean database for each testcase.  Callers should cleanup with Close() when finished.
type TestSQLiteDB struct {
	DB *sql.DB

	shutdown func() // context shutdown func
}

func (r *TestSQLiteDB) Close() error {
	r.shutdown()
	return r.DB.Close()
}

// CreateTestSQLiteDB returns a TestSQLiteDB which can be used in tests
// as a clean sqlite database. All migrations are ran on the db before.
//
// The database is closed when the test finishes.
func CreateTestSQLiteDB(t *testing.T) *TestSQLiteDB {
	t.Helper()

	ctx, cancelFunc := context.WithCancel(context.Background())

	path := filepath.Join(t.TempDir(), "ledger.db")
	db, err := sqliteConnection(log.NewNopLogger(), path).Connect(ctx)
	if err != nil {
		cancelFunc()
		t.Fatalf("sqlite test: %v", err)
	}

	testDB := &TestSQLiteDB{DB: db, shutdown: cancelFunc}
	t.Cleanup(func() { testDB.Close() })
	return testDB
}
