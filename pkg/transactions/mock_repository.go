// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package transactions

import (
	"github.com/moov-io/base"
	"github.com/moov-io/ledger/pkg/client"
	"github.com/moov-io/ledger/pkg/id"
)

type MockRepository struct {
	Transactions []*client.Transaction
	Err          error
}

func (r *MockRepository) List() ([]*client.Transaction, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Transactions, nil
}

func (r *MockRepository) ListByAccount(accountID id.Account) ([]*client.Transaction, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*client.Transaction, 0)
	for i := range r.Transactions {
		if r.Transactions[i].AccountID == accountID {
			out = append(out, r.Transactions[i])
		}
	}
	return out, nil
}

func (r *MockRepository) Save(xact *client.Transaction) (*client.Transaction, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	out := *xact
	out.TransactionID = id.Transaction(base.ID())
	r.Transactions = append(r.Transactions, &out)
	return &out, nil
}

func (r *MockRepository) Count() (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.Transactions)), nil
}

func (r *MockRepository) SumByKind(kind client.TransactionKind) (float64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	var sum float64
	for i := range r.Transactions {
		if r.Transactions[i].Kind == kind {
			sum += r.Transactions[i].Amount
		}
	}
	return sum, nil
}
