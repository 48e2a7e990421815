// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/moov-io/ledger/pkg/client"
	"github.com/moov-io/ledger/pkg/id"
	"github.com/moov-io/ledger/x/route"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

type Router struct {
	ListAccounts        http.HandlerFunc
	GetAccount          http.HandlerFunc
	SaveAccount         http.HandlerFunc
	AccountStatistics   http.HandlerFunc
	RecordTransaction   http.HandlerFunc
	AccountTransactions http.HandlerFunc
	ListTransactions    http.HandlerFunc
	TransactionStats    http.HandlerFunc
}

func NewRouter(logger log.Logger, svc *Service) *Router {
	return &Router{
		ListAccounts:        listAccounts(logger, svc),
		GetAccount:          getAccount(logger, svc),
		SaveAccount:         saveAccount(logger, svc),
		AccountStatistics:   accountStatistics(logger, svc),
		RecordTransaction:   recordTransaction(logger, svc),
		AccountTransactions: accountTransactions(logger, svc),
		ListTransactions:    listTransactions(logger, svc),
		TransactionStats:    transactionStatistics(logger, svc),
	}
}

func (router *Router) RegisterRoutes(r *mux.Router) {
	r.Methods("GET").Path("/accounts").HandlerFunc(router.ListAccounts)
	r.Methods("POST").Path("/accounts").HandlerFunc(router.SaveAccount)
	r.Methods("GET").Path("/accounts/{accountID}").HandlerFunc(router.GetAccount)
	r.Methods("GET").Path("/accounts/{accountID}/transactions").HandlerFunc(router.AccountTransactions)

	r.Methods("GET").Path("/transactions").HandlerFunc(router.ListTransactions)
	r.Methods("POST").Path("/transactions").HandlerFunc(router.RecordTransaction)

	r.Methods("GET").Path("/statistics/accounts").HandlerFunc(router.AccountStatistics)
	r.Methods("GET").Path("/statistics/transactions").HandlerFunc(router.TransactionStats)
}

// writeError maps service errors onto response codes. Anything which isn't a
// NotFoundError or ValidationError is treated as a storage failure.
func writeError(responder *route.Responder, err error) {
	var notFound *NotFoundError
	var invalid *ValidationError
	switch {
	case errors.As(err, &notFound):
		responder.Log("error", err)
		responder.JSON(http.StatusNotFound, client.Error{
			Error:  err.Error(),
			Entity: notFound.Entity,
			ID:     notFound.ID,
		})
	case errors.As(err, &invalid):
		responder.Problem(err)
	default:
		responder.InternalError(err)
	}
}

func readAccountID(r *http.Request) id.Account {
	return id.Account(route.ReadPathID("accountID", r))
}

func listAccounts(logger log.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder == nil {
			return
		}
		accts, err := svc.ListAccounts(r.Context())
		if err != nil {
			writeError(responder, err)
			return
		}
		responder.JSON(http.StatusOK, accts)
	}
}

func getAccount(logger log.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder == nil {
			return
		}
		acct, err := svc.GetAccount(r.Context(), GetAccountRequest{
			AccountID: readAccountID(r),
		})
		if err != nil {
			writeError(responder, err)
			return
		}
		responder.JSON(http.StatusOK, acct)
	}
}

func saveAccount(logger log.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder == nil {
			return
		}
		var req SaveAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responder.Problem(fmt.Errorf("invalid account: %v", err))
			return
		}
		acct, err := svc.SaveAccount(r.Context(), req)
		if err != nil {
			writeError(responder, err)
			return
		}
		responder.Log("accounts", "saved account", "accountID", acct.AccountID)
		responder.JSON(http.StatusOK, acct)
	}
}

func accountStatistics(logger log.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder == nil {
			return
		}
		stats, err := svc.AccountStatistics(r.Context())
		if err != nil {
			writeError(responder, err)
			return
		}
		responder.JSON(http.StatusOK, stats)
	}
}

func recordTransaction(logger log.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder == nil {
			return
		}
		var req CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responder.Problem(fmt.Errorf("invalid transaction: %v", err))
			return
		}
		xact, err := svc.RecordTransaction(r.Context(), req)
		if err != nil {
			writeError(responder, err)
			return
		}
		responder.Log("transactions", "recorded transaction", "transactionID", xact.TransactionID, "accountID", xact.AccountID)
		responder.JSON(http.StatusOK, xact)
	}
}

func accountTransactions(logger log.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder == nil {
			return
		}
		xacts, err := svc.ListAccountTransactions(r.Context(), GetAccountRequest{
			AccountID: readAccountID(r),
		})
		if err != nil {
			writeError(responder, err)
			return
		}
		responder.JSON(http.StatusOK, xacts)
	}
}

func listTransactions(logger log.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder == nil {
			return
		}
		xacts, err := svc.ListTransactions(r.Context())
		if err != nil {
			writeError(responder, err)
			return
		}
		responder.JSON(http.StatusOK, xacts)
	}
}

func transactionStatistics(logger log.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder == nil {
			return
		}
		stats, err := svc.TransactionStatistics(r.Context())
		if err != nil {
			writeError(responder, err)
			return
		}
		responder.JSON(http.StatusOK, stats)
	}
}
