// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package client

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/moov-io/ledger/pkg/id"
)

// TransactionKind distinguishes deposits from withdrawals.
type TransactionKind string

const (
	DEPOSIT    TransactionKind = "DEPOSIT"
	WITHDRAWAL TransactionKind = "WITHDRAWAL"
)

func (k TransactionKind) Validate() error {
	switch k {
	case DEPOSIT, WITHDRAWAL:
		return nil
	}
	return fmt.Errorf("unknown TransactionKind %q", k)
}

func (k *TransactionKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*k = TransactionKind(strings.ToUpper(strings.TrimSpace(s)))
	return k.Validate()
}

// Transaction is an immutable record of a deposit or withdrawal against one Account.
type Transaction struct {
	TransactionID id.Transaction  `json:"transactionID"`
	AccountID     id.Account      `json:"accountID"`
	Amount        float64         `json:"amount"`
	Date          time.Time       `json:"date"`
	Kind          TransactionKind `json:"kind"`
}

// CreateTransaction is the request body for recording a Transaction.
//
// Date is stored in UTC truncated to whole seconds, so 10:00:00.789+02:00 is
// returned as 08:00:00Z.
type CreateTransaction struct {
	AccountID id.Account      `json:"accountID" validate:"required"`
	Amount    *float64        `json:"amount" validate:"required"`
	Date      *time.Time      `json:"date" validate:"required"`
	Kind      TransactionKind `json:"kind" validate:"required,oneof=DEPOSIT WITHDRAWAL"`
}

// TransactionStatistics sums Transaction amounts by kind.
type TransactionStatistics struct {
	Count          int64   `json:"count"`
	SumDeposits    float64 `json:"sumDeposits"`
	SumWithdrawals float64 `json:"sumWithdrawals"`
}
