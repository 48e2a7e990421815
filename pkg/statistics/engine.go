// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package statistics

import (
	"fmt"

	"github.com/moov-io/ledger/pkg/accounts"
	"github.com/moov-io/ledger/pkg/client"
	"github.com/moov-io/ledger/pkg/transactions"
)

// Engine computes read-only aggregates over the current store contents.
//
// Each aggregate is built from separate store reads which are not taken from
// a single snapshot. Under concurrent writes an average can be computed from a
// count and sum observed at slightly different instants.
type Engine struct {
	accountRepo     accounts.Repository
	transactionRepo transactions.Repository
}

func NewEngine(accountRepo accounts.Repository, transactionRepo transactions.Repository) *Engine {
	return &Engine{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

func (e *Engine) AccountStatistics() (*client.AccountStatistics, error) {
	count, err := e.accountRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("counting accounts: %w", err)
	}
	sum, err := e.accountRepo.SumBalances()
	if err != nil {
		return nil, fmt.Errorf("summing account balances: %w", err)
	}
	stats := &client.AccountStatistics{
		Count: count,
		Sum:   sum,
	}
	if count > 0 {
		stats.Average = sum / float64(count)
	}
	return stats, nil
}

func (e *Engine) TransactionStatistics() (*client.TransactionStatistics, error) {
	count, err := e.transactionRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("counting transactions: %w", err)
	}
	deposits, err := e.transactionRepo.SumByKind(client.DEPOSIT)
	if err != nil {
		return nil, fmt.Errorf("summing deposits: %w", err)
	}
	withdrawals, err := e.transactionRepo.SumByKind(client.WITHDRAWAL)
	if err != nil {
		return nil, fmt.Errorf("summing withdrawals: %w", err)
	}
	return &client.TransactionStatistics{
		Count:          count,
		SumDeposits:    deposits,
		SumWithdrawals: withdrawals,
	}, nil
}
