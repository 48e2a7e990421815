// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/moov-io/ledger/pkg/config"

	"github.com/go-kit/kit/log"
	kitprom "github.com/go-kit/kit/metrics/prometheus"
	"github.com/lopezator/migrator"
	stdprom "github.com/prometheus/client_golang/prometheus"
)

var (
	connections = kitprom.NewGaugeFrom(stdprom.GaugeOpts{
		Name: "database_connections",
		Help: "How many database connections and what status they're in.",
	}, []string{"type", "state"})
)

// New establishes a database connection for the configured store and runs
// every pending migration. MySQL is preferred when both stores are configured.
func New(ctx context.Context, logger log.Logger, cfg config.Database) (*sql.DB, error) {
	if cfg.MySQL != nil {
		logger.Log("database", "using mysql database provider", "address", cfg.MySQL.Address)
		return mysqlConnection(logger, cfg.MySQL.Username, cfg.MySQL.GetPassword(), cfg.MySQL.Address, cfg.MySQL.Database).Connect(ctx)
	}
	if cfg.SQLite != nil {
		logger.Log("database", "using sqlite database provider", "path", cfg.SQLite.Path)
		return sqliteConnection(logger, cfg.SQLite.Path).Connect(ctx)
	}
	return nil, errors.New("no database configured")
}

func execsql(name, raw string) *migrator.MigrationNoTx {
	return &migrator.MigrationNoTx{
		Name: name,
		Func: func(db *sql.DB) error {
			_, err := db.Exec(raw)
			return err
		},
	}
}

func migrate(db *sql.DB, migrations migrator.Option) error {
	m, err := migrator.New(migrations)
	if err != nil {
		return err
	}
	if err := m.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %v", err)
	}
	return nil
}

// recordStats updates the connection gauge every second until ctx is done.
func recordStats(ctx context.Context, db *sql.DB, _type string) {
	t := time.NewTicker(1 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			stats := db.Stats()
			connections.With("type", _type, "state", "idle").Set(float64(stats.Idle))
			connections.With("type", _type, "state", "inuse").Set(float64(stats.InUse))
			connections.With("type", _type, "state", "open").Set(float64(stats.OpenConnections))
		}
	}
}
