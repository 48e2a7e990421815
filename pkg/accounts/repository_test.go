// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package accounts

import (
	"testing"

	"github.com/moov-io/base"
	"github.com/moov-io/ledger/pkg/client"
	"github.com/moov-io/ledger/pkg/database"
	"github.com/moov-io/ledger/pkg/id"

	"github.com/stretchr/testify/require"
)

func setupSQLiteDB(t *testing.T) *sqlRepo {
	db := database.CreateTestSQLiteDB(t)
	return &sqlRepo{db: db.DB}
}

func setupMySQLDB(t *testing.T) *sqlRepo {
	db := database.CreateTestMySQLDB(t)
	return &sqlRepo{db: db.DB}
}

func TestRepository__Save(t *testing.T) {
	t.Parallel()

	check := func(t *testing.T, repo *sqlRepo) {
		acct, err := repo.Save(&client.Account{Label: "checking", Balance: 100.0})
		require.NoError(t, err)
		require.NotEmpty(t, acct.AccountID)
		require.False(t, acct.CreatedAt.IsZero())

		found, err := repo.Get(acct.AccountID)
		require.NoError(t, err)
		require.Equal(t, acct, found)

		// update keeps the ID and creation time
		acct.Balance = 12.5
		acct.Label = "savings"
		updated, err := repo.Save(acct)
		require.NoError(t, err)
		require.Equal(t, acct.AccountID, updated.AccountID)

		found, err = repo.Get(acct.AccountID)
		require.NoError(t, err)
		require.Equal(t, 12.5, found.Balance)
		require.Equal(t, "savings", found.Label)
		require.Equal(t, acct.CreatedAt, found.CreatedAt)

		n, err := repo.Count()
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
	}

	t.Run("sqlite", func(t *testing.T) { check(t, setupSQLiteDB(t)) })
	t.Run("mysql", func(t *testing.T) { check(t, setupMySQLDB(t)) })
}

func TestRepository__SaveUnknownID(t *testing.T) {
	t.Parallel()

	check := func(t *testing.T, repo *sqlRepo) {
		accountID := id.Account(base.ID())
		acct, err := repo.Save(&client.Account{AccountID: accountID, Balance: 3.0})
		require.NoError(t, err)
		require.NotEqual(t, accountID, acct.AccountID)
		require.Len(t, acct.AccountID.String(), 40)

		found, err := repo.Get(accountID)
		require.NoError(t, err)
		require.Nil(t, found)

		found, err = repo.Get(acct.AccountID)
		require.NoError(t, err)
		require.Equal(t, acct, found)
	}

	t.Run("sqlite", func(t *testing.T) { check(t, setupSQLiteDB(t)) })
	t.Run("mysql", func(t *testing.T) { check(t, setupMySQLDB(t)) })
}

func TestRepository__Get(t *testing.T) {
	repo := setupSQLiteDB(t)

	acct, err := repo.Get(id.Account(base.ID()))
	require.NoError(t, err)
	require.Nil(t, acct)
}

func TestRepository__List(t *testing.T) {
	t.Parallel()

	check := func(t *testing.T, repo *sqlRepo) {
		accounts, err := repo.List()
		require.NoError(t, err)
		require.Len(t, accounts, 0)

		a1, err := repo.Save(&client.Account{Balance: 1.0})
		require.NoError(t, err)
		a2, err := repo.Save(&client.Account{Balance: 2.0})
		require.NoError(t, err)

		accounts, err = repo.List()
		require.NoError(t, err)
		require.ElementsMatch(t, []*client.Account{a1, a2}, accounts)
	}

	t.Run("sqlite", func(t *testing.T) { check(t, setupSQLiteDB(t)) })
	t.Run("mysql", func(t *testing.T) { check(t, setupMySQLDB(t)) })
}

func TestRepository__Aggregates(t *testing.T) {
	t.Parallel()

	check := func(t *testing.T, repo *sqlRepo) {
		n, err := repo.Count()
		require.NoError(t, err)
		require.Equal(t, int64(0), n)

		sum, err := repo.SumBalances()
		require.NoError(t, err)
		require.Equal(t, 0.0, sum)

		for _, balance := range []float64{100.0, 25.5, -5.5} {
			_, err := repo.Save(&client.Account{Balance: balance})
			require.NoError(t, err)
		}

		n, err = repo.Count()
		require.NoError(t, err)
		require.Equal(t, int64(3), n)

		sum, err = repo.SumBalances()
		require.NoError(t, err)
		require.InDelta(t, 120.0, sum, 0.0001)
	}

	t.Run("sqlite", func(t *testing.T) { check(t, setupSQLiteDB(t)) })
	t.Run("mysql", func(t *testing.T) { check(t, setupMySQLDB(t)) })
}

func TestMockRepository(t *testing.T) {
	repo := &MockRepository{}

	acct, err := repo.Save(&client.Account{Balance: 4.0})
	require.NoError(t, err)
	require.NotEmpty(t, acct.AccountID)

	found, err := repo.Get(acct.AccountID)
	require.NoError(t, err)
	require.Equal(t, acct, found)

	sum, err := repo.SumBalances()
	require.NoError(t, err)
	require.Equal(t, 4.0, sum)
}
