// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package accounts

import (
	"github.com/moov-io/base"
	"github.com/moov-io/ledger/pkg/client"
	"github.com/moov-io/ledger/pkg/id"
)

type MockRepository struct {
	Accounts []*client.Account
	Err      error
}

func (r *MockRepository) List() ([]*client.Account, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Accounts, nil
}

func (r *MockRepository) Get(accountID id.Account) (*client.Account, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	for i := range r.Accounts {
		if r.Accounts[i].AccountID == accountID {
			return r.Accounts[i], nil
		}
	}
	return nil, nil
}

func (r *MockRepository) Save(acct *client.Account) (*client.Account, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	out := *acct
	for i := range r.Accounts {
		if out.AccountID != "" && r.Accounts[i].AccountID == out.AccountID {
			r.Accounts[i] = &out
			return &out, nil
		}
	}
	out.AccountID = id.Account(base.ID())
	r.Accounts = append(r.Accounts, &out)
	return &out, nil
}

func (r *MockRepository) Count() (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.Accounts)), nil
}

func (r *MockRepository) SumBalances() (float64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	var sum float64
	for i := range r.Accounts {
		sum += r.Accounts[i].Balance
	}
	return sum, nil
}
