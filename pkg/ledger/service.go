// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/moov-io/ledger/pkg/accounts"
	"github.com/moov-io/ledger/pkg/client"
	"github.com/moov-io/ledger/pkg/events"
	"github.com/moov-io/ledger/pkg/id"
	"github.com/moov-io/ledger/pkg/statistics"
	"github.com/moov-io/ledger/pkg/transactions"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-playground/validator/v10"
)

type GetAccountRequest struct {
	AccountID id.Account `json:"accountID" validate:"required"`
}

type SaveAccountRequest = client.SaveAccount

type CreateTransactionRequest = client.CreateTransaction

// Service handles account and transaction requests on top of the stores and
// the aggregation engine.
type Service struct {
	logger log.Logger

	accountRepo     accounts.Repository
	transactionRepo transactions.Repository
	engine          *statistics.Engine
	publisher       events.Publisher

	validate *validator.Validate
}

func NewService(
	logger log.Logger,
	accountRepo accounts.Repository,
	transactionRepo transactions.Repository,
	engine *statistics.Engine,
	publisher events.Publisher,
) *Service {
	if publisher == nil {
		publisher = events.NewDiscardPublisher()
	}
	return &Service{
		logger:          logger,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		engine:          engine,
		publisher:       publisher,
		validate:        newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func (s *Service) check(req interface{}) error {
	if err := s.validate.Struct(req); err != nil {
		return fieldErrors(err)
	}
	return nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]*client.Account, error) {
	accts, err := s.accountRepo.List()
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	if accts == nil {
		accts = make([]*client.Account, 0)
	}
	return accts, nil
}

func (s *Service) GetAccount(ctx context.Context, req GetAccountRequest) (*client.Account, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	acct, err := s.accountRepo.Get(req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("reading account %s: %w", req.AccountID, err)
	}
	if acct == nil {
		return nil, accountNotFound(req.AccountID.String())
	}
	return acct, nil
}

// SaveAccount inserts a new account, or replaces the label and balance of an
// existing one when AccountID matches.
func (s *Service) SaveAccount(ctx context.Context, req SaveAccountRequest) (*client.Account, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	acct, err := s.accountRepo.Save(&client.Account{
		AccountID: req.AccountID,
		Label:     req.Label,
		Balance:   *req.Balance,
	})
	if err != nil {
		return nil, fmt.Errorf("saving account: %w", err)
	}
	if err := s.publisher.AccountSaved(ctx, acct); err != nil {
		level.Warn(s.logger).Log("accounts", "problem publishing event", "accountID", acct.AccountID, "error", err)
	}
	return acct, nil
}

func (s *Service) AccountStatistics(ctx context.Context) (*client.AccountStatistics, error) {
	return s.engine.AccountStatistics()
}

// RecordTransaction writes a transaction for an existing account. Nothing is
// written when the account is unknown.
func (s *Service) RecordTransaction(ctx context.Context, req CreateTransactionRequest) (*client.Transaction, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	acct, err := s.accountRepo.Get(req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("reading account %s: %w", req.AccountID, err)
	}
	if acct == nil {
		return nil, accountNotFound(req.AccountID.String())
	}

	xact, err := s.transactionRepo.Save(&client.Transaction{
		AccountID: acct.AccountID,
		Amount:    *req.Amount,
		Date:      *req.Date,
		Kind:      req.Kind,
	})
	if err != nil {
		return nil, fmt.Errorf("saving transaction: %w", err)
	}
	if err := s.publisher.TransactionRecorded(ctx, xact); err != nil {
		level.Warn(s.logger).Log("transactions", "problem publishing event", "transactionID", xact.TransactionID, "error", err)
	}
	return xact, nil
}

func (s *Service) ListAccountTransactions(ctx context.Context, req GetAccountRequest) ([]*client.Transaction, error) {
	acct, err := s.GetAccount(ctx, req)
	if err != nil {
		return nil, err
	}
	xacts, err := s.transactionRepo.ListByAccount(acct.AccountID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions for %s: %w", acct.AccountID, err)
	}
	if xacts == nil {
		xacts = make([]*client.Transaction, 0)
	}
	return xacts, nil
}

func (s *Service) ListTransactions(ctx context.Context) ([]*client.Transaction, error) {
	xacts, err := s.transactionRepo.List()
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	if xacts == nil {
		xacts = make([]*client.Transaction, 0)
	}
	return xacts, nil
}

func (s *Service) TransactionStatistics(ctx context.Context) (*client.TransactionStatistics, error) {
	return s.engine.TransactionStatistics()
}
