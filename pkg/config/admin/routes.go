// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package admin

import (
	"encoding/json"
	"net/http"

	"github.com/moov-io/base/admin"
	"github.com/moov-io/ledger/pkg/config"
	"github.com/moov-io/ledger/x/mask"
)

// RegisterRoutes will add HTTP handlers for the ledger's admin HTTP server
func RegisterRoutes(svc *admin.Server, cfg *config.Config) {
	if cfg.Admin.DisableConfigEndpoint {
		return
	}
	svc.AddHandler("/config", marshalConfig(cfg))
}

func marshalConfig(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(maskPasswords(cfg))
	}
}

func maskPasswords(cfg *config.Config) *config.Config {
	out := *cfg
	if my := cfg.Database.MySQL; my != nil {
		masked := *my
		masked.Password = mask.Password(my.GetPassword())
		out.Database.MySQL = &masked
	}
	return &out
}
