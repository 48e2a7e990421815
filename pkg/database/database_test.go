// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/moov-io/ledger/pkg/config"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/require"
)

func TestNew__SQLite(t *testing.T) {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	cfg := config.Database{
		SQLite: &config.SQLite{
			Path: filepath.Join(t.TempDir(), "ledger.db"),
		},
	}
	db, err := New(ctx, log.NewNopLogger(), cfg)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping())
}

func TestNew__Missing(t *testing.T) {
	db, err := New(context.Background(), log.NewNopLogger(), config.Database{})
	require.Error(t, err)
	require.Nil(t, db)
}

func TestSQLite__tables(t *testing.T) {
	db := CreateTestSQLiteDB(t)

	for _, table := range []string{"accounts", "transactions"} {
		var n int
		err := db.DB.QueryRow(`select count(*) from ` + table).Scan(&n)
		require.NoError(t, err, table)
		require.Equal(t, 0, n, table)
	}
}

func TestSQLite__migrateTwice(t *testing.T) {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	path := filepath.Join(t.TempDir(), "ledger.db")

	db, err := sqliteConnection(log.NewNopLogger(), path).Connect(ctx)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqliteConnection(log.NewNopLogger(), path).Connect(ctx)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestSQLite__path(t *testing.T) {
	s := sqliteConnection(log.NewNopLogger(), "../../etc/ledger.db")
	require.Equal(t, "ledger.db", s.path)

	s = sqliteConnection(log.NewNopLogger(), "")
	require.Equal(t, "ledger.db", s.path)
}

func TestMySQL__basic(t *testing.T) {
	db := CreateTestMySQLDB(t)
	require.NoError(t, db.DB.Ping())
}

func TestMySQL__mysqlConnection(t *testing.T) {
	my := mysqlConnection(log.NewNopLogger(), "moov", "secret", "tcp(localhost:3306)", "ledger")
	require.NotNil(t, my)
	require.Contains(t, my.dsn, "moov:secret@tcp(localhost:3306)/ledger?")
	require.Contains(t, my.dsn, "parseTime=true")
}
