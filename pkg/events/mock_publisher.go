// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"context"
	"sync"

	"github.com/moov-io/ledger/pkg/client"
)

type MockPublisher struct {
	Err error

	mu           sync.Mutex
	Accounts     []*client.Account
	Transactions []*client.Transaction
}

func (pub *MockPublisher) AccountSaved(_ context.Context, acct *client.Account) error {
	pub.mu.Lock()
	defer pub.mu.Unlock()
	pub.Accounts = append(pub.Accounts, acct)
	return pub.Err
}

func (pub *MockPublisher) TransactionRecorded(_ context.Context, xact *client.Transaction) error {
	pub.mu.Lock()
	defer pub.mu.Unlock()
	pub.Transactions = append(pub.Transactions, xact)
	return pub.Err
}

func (pub *MockPublisher) Shutdown(_ context.Context) error {
	return nil
}
