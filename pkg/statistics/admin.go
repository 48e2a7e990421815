// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package statistics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/moov-io/base/admin"
	moovhttp "github.com/moov-io/base/http"
	"github.com/moov-io/ledger/pkg/client"
	"github.com/moov-io/ledger/pkg/util"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

type adminStatistics struct {
	Accounts     *client.AccountStatistics     `json:"accounts"`
	Transactions *client.TransactionStatistics `json:"transactions"`
}

// RegisterAdminRoutes adds GET /statistics to the admin server which returns
// both aggregates in one response.
func RegisterAdminRoutes(logger log.Logger, svc *admin.Server, engine *Engine, timeout time.Duration) {
	svc.AddHandler("/statistics", getStatistics(logger, engine, timeout))
}

func getStatistics(logger log.Logger, engine *Engine, timeout time.Duration) http.HandlerFunc {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			moovhttp.Problem(w, fmt.Errorf("unsupported HTTP verb %s", r.Method))
			return
		}

		var resp adminStatistics
		err := util.Timeout(func() error {
			var err error
			if resp.Accounts, err = engine.AccountStatistics(); err != nil {
				return err
			}
			resp.Transactions, err = engine.TransactionStatistics()
			return err
		}, timeout)
		if err != nil {
			level.Error(logger).Log("statistics", "problem reading statistics", "error", err)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(client.Error{Error: "problem reading statistics"})
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
