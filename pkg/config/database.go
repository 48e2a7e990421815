// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"

	"github.com/moov-io/ledger/pkg/util"
)

// Database selects the store. MySQL is used when configured, otherwise SQLite.
type Database struct {
	SQLite *SQLite `yaml:"sqlite" json:"sqlite"`
	MySQL  *MySQL  `yaml:"mysql" json:"mysql"`
}

func (cfg Database) Validate() error {
	if cfg.SQLite != nil && cfg.SQLite.Path == "" {
		return errors.New("sqlite: missing path")
	}
	if my := cfg.MySQL; my != nil {
		if my.Address == "" || my.Database == "" {
			return errors.New("mysql: missing address or database")
		}
	}
	return nil
}

type SQLite struct {
	Path string `yaml:"path" json:"path"`
}

type MySQL struct {
	Address  string `yaml:"address" json:"address"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	Database string `yaml:"database" json:"database"`
}

func (cfg *MySQL) GetPassword() string {
	pass := os.Getenv("MYSQL_PASSWORD")
	if cfg == nil {
		return pass
	}
	return util.Or(pass, cfg.Password)
}
