// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package transactions

import (
	"database/sql"
	"errors"
	"time"

	"github.com/moov-io/base"
	"github.com/moov-io/ledger/pkg/client"
	"github.com/moov-io/ledger/pkg/id"
)

// Repository is the durable store of Transactions. Transactions are never
// updated or deleted once saved.
type Repository interface {
	List() ([]*client.Transaction, error)
	ListByAccount(accountID id.Account) ([]*client.Transaction, error)

	// Save inserts a new Transaction and returns it with TransactionID populated.
	Save(xact *client.Transaction) (*client.Transaction, error)

	Count() (int64, error)

	// SumByKind returns zero when no Transactions of kind exist.
	SumByKind(kind client.TransactionKind) (float64, error)
}

func NewRepo(db *sql.DB) Repository {
	return &sqlRepo{db: db}
}

type sqlRepo struct {
	db *sql.DB
}

func (r *sqlRepo) List() ([]*client.Transaction, error) {
	query := `select transaction_id, account_id, amount, occurred_at, kind from transactions order by occurred_at;`
	return r.list(query)
}

func (r *sqlRepo) ListByAccount(accountID id.Account) ([]*client.Transaction, error) {
	query := `select transaction_id, account_id, amount, occurred_at, kind from transactions where account_id = ? order by occurred_at;`
	return r.list(query, accountID)
}

func (r *sqlRepo) list(query string, args ...interface{}) ([]*client.Transaction, error) {
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*client.Transaction, 0)
	for rows.Next() {
		var (
			xact client.Transaction
			date time.Time
		)
		if err := rows.Scan(&xact.TransactionID, &xact.AccountID, &xact.Amount, &date, &xact.Kind); err != nil {
			return nil, err
		}
		xact.Date = date.UTC()
		out = append(out, &xact)
	}
	return out, rows.Err()
}

func (r *sqlRepo) Save(xact *client.Transaction) (*client.Transaction, error) {
	if xact == nil {
		return nil, errors.New("nil Transaction")
	}
	if err := xact.Kind.Validate(); err != nil {
		return nil, err
	}

	out := *xact
	out.TransactionID = id.Transaction(base.ID())
	out.Date = out.Date.UTC().Truncate(time.Second)

	query := `insert into transactions (transaction_id, account_id, amount, occurred_at, kind) values (?, ?, ?, ?, ?);`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(out.TransactionID, out.AccountID, out.Amount, out.Date, out.Kind); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sqlRepo) Count() (int64, error) {
	query := `select count(*) from transactions;`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var n int64
	if err := stmt.QueryRow().Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *sqlRepo) SumByKind(kind client.TransactionKind) (float64, error) {
	query := `select sum(amount) from transactions where kind = ?;`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var sum sql.NullFloat64
	if err := stmt.QueryRow(kind).Scan(&sum); err != nil {
		return 0, err
	}
	return sum.Float64, nil
}
