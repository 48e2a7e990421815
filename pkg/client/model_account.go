// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package client

import (
	"time"

	"github.com/moov-io/ledger/pkg/id"
)

// Account is a ledger entity holding a balance.
type Account struct {
	AccountID id.Account `json:"accountID"`
	// Label is an optional owner name or description.
	Label     string    `json:"label,omitempty"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaveAccount is the request body for creating or updating an Account.
// An empty AccountID creates a new Account. A well-formed AccountID which
// doesn't exist also creates a new Account under a server assigned AccountID.
type SaveAccount struct {
	AccountID id.Account `json:"accountID,omitempty" validate:"omitempty,len=40,hexadecimal"`
	Label     string     `json:"label,omitempty" validate:"max=100"`
	Balance   *float64   `json:"balance" validate:"required"`
}

// AccountStatistics aggregates every Account's balance.
type AccountStatistics struct {
	Count   int64   `json:"count"`
	Sum     float64 `json:"sum"`
	Average float64 `json:"average"`
}
