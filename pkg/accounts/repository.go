// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package accounts

import (
	"database/sql"
	"errors"
	"time"

	"github.com/moov-io/base"
	"github.com/moov-io/ledger/pkg/client"
	"github.com/moov-io/ledger/pkg/id"
)

// Repository is the durable store of Accounts.
type Repository interface {
	// List returns every Account. Callers shouldn't depend on the order.
	List() ([]*client.Account, error)

	// Get returns nil (and a nil error) when no Account exists for accountID.
	Get(accountID id.Account) (*client.Account, error)

	// Save updates the Account when AccountID matches an existing row. Otherwise
	// it inserts the Account under a newly generated AccountID.
	// The persisted Account is returned with its AccountID populated.
	Save(acct *client.Account) (*client.Account, error)

	Count() (int64, error)

	// SumBalances returns zero when there are no Accounts.
	SumBalances() (float64, error)
}

func NewRepo(db *sql.DB) Repository {
	return &sqlRepo{db: db}
}

type sqlRepo struct {
	db *sql.DB
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row scanner) (*client.Account, error) {
	var (
		acct      client.Account
		label     sql.NullString
		createdAt *time.Time
	)
	if err := row.Scan(&acct.AccountID, &label, &acct.Balance, &createdAt); err != nil {
		return nil, err
	}
	acct.Label = label.String
	if createdAt != nil {
		acct.CreatedAt = createdAt.UTC()
	}
	return &acct, nil
}

func (r *sqlRepo) List() ([]*client.Account, error) {
	query := `select account_id, label, balance, created_at from accounts order by created_at;`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*client.Account
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, acct)
	}
	return out, rows.Err()
}

func (r *sqlRepo) Get(accountID id.Account) (*client.Account, error) {
	query := `select account_id, label, balance, created_at from accounts where account_id = ? limit 1;`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	acct, err := scanAccount(stmt.QueryRow(accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return acct, nil
}

func (r *sqlRepo) Save(acct *client.Account) (*client.Account, error) {
	if acct == nil {
		return nil, errors.New("nil Account")
	}
	out := *acct
	if out.AccountID != "" {
		existing, err := r.Get(out.AccountID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			out.CreatedAt = existing.CreatedAt
			return &out, r.update(&out)
		}
	}
	// Only the store assigns IDs. Unknown AccountIDs are replaced.
	out.AccountID = id.Account(base.ID())
	out.CreatedAt = time.Now().UTC().Truncate(time.Second)
	return &out, r.insert(&out)
}

func (r *sqlRepo) insert(acct *client.Account) error {
	query := `insert into accounts (account_id, label, balance, created_at) values (?, ?, ?, ?);`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(acct.AccountID, acct.Label, acct.Balance, acct.CreatedAt)
	return err
}

func (r *sqlRepo) update(acct *client.Account) error {
	query := `update accounts set label = ?, balance = ? where account_id = ?;`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(acct.Label, acct.Balance, acct.AccountID)
	return err
}

func (r *sqlRepo) Count() (int64, error) {
	query := `select count(*) from accounts;`
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

func (r *sqlRepo) SumBalances() (float64, error) {
	query := `select sum(balance) from accounts;`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var sum sql.NullFloat64
	if err := stmt.QueryRow().Scan(&sum); err != nil {
		return 0, err
	}
	return sum.Float64, nil
}
