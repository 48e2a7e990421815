// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/moov-io/base/docker"

	"github.com/go-kit/kit/log"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/lopezator/migrator"
	"github.com/ory/dockertest/v3"
)

var (
	mysqlMigrations = migrator.Migrations(
		execsql(
			"create_accounts",
			`create table if not exists accounts(account_id varchar(40) primary key not null, label varchar(100), balance double not null default 0, created_at datetime);`,
		),
		execsql(
			"create_transactions",
			`create table if not exists transactions(transaction_id varchar(40) primary key not null, account_id varchar(40) not null, amount double not null, occurred_at datetime, kind varchar(10) not null, foreign key (account_id) references accounts(account_id));`,
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

type discardLogger struct{}

func (l discardLogger) Print(v ...interface{}) {}

func init() {
	gomysql.SetLogger(discardLogger{})
}

type mysql struct {
	dsn    string
	logger log.Logger
}

func (my *mysql) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("mysql", my.dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return db, err
	}
	if err := migrate(db, mysqlMigrations); err != nil {
		return db, err
	}

	go recordStats(ctx, db, "mysql")

	return db, nil
}

func mysqlConnection(logger log.Logger, user, pass string, address string, database string) *mysql {
	timeout := "30s"
	params := fmt.Sprintf("timeout=%s&charset=utf8mb4&parseTime=true&loc=UTC&sql_mode=ALLOW_INVALID_DATES", timeout)
	dsn := fmt.Sprintf("%s:%s@%s/%s?%s", user, pass, address, database, params)
	return &mysql{
		dsn:    dsn,
		logger: logger,
	}
}

// TestMySQLDB is a wrapper around sql.DB for MySQL connections designed for tests to provide
// a clean database for each testcase.  Callers should cleanup with Close() when finished.
type TestMySQLDB struct {
	DB *sql.DB

	container *dockertest.Resource
	shutdown  func()
}

func (r *TestMySQLDB) Close() error {
	r.shutdown()
	r.container.Close()
	return r.DB.Close()
}

// CreateTestMySQLDB returns a TestMySQLDB which can be used in tests
// as a clean mysql database. All migrations are ran on the db before.
//
// Tests are skipped with -short or when Docker isn't available.
func CreateTestMySQLDB(t *testing.T) *TestMySQLDB {
	t.Helper()

	if testing.Short() {
		t.Skip("-short flag enabled")
	}
	if !docker.Enabled() {
		t.Skip("Docker not enabled")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatal(err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8",
		Env: []string{
			"MYSQL_USER=moov",
			"MYSQL_PASSWORD=secret",
			"MYSQL_ROOT_PASSWORD=secret",
			"MYSQL_DATABASE=ledger",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = pool.Retry(func() error {
		db, err := sql.Open("mysql", fmt.Sprintf("moov:secret@tcp(localhost:%s)/ledger", resource.GetPort("3306/tcp")))
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Ping()
	})
	if err != nil {
		resource.Close()
		t.Fatal(err)
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	address := fmt.Sprintf("tcp(localhost:%s)", resource.GetPort("3306/tcp"))

	db, err := mysqlConnection(log.NewNopLogger(), "moov", "secret", address, "ledger").Connect(ctx)
	if err != nil {
		cancelFunc()
		resource.Close()
		t.Fatal(err)
	}

	testDB := &TestMySQLDB{DB: db, container: resource, shutdown: cancelFunc}
	t.Cleanup(func() { testDB.Close() })
	return testDB
}
