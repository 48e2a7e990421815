// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package statistics

import (
	"fmt"

	"github.com/moov-io/ledger/pkg/client"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

var (
	accountsTotal = prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
		Name: "ledger_accounts_total",
		Help: "How many accounts exist",
	}, nil)

	accountBalanceSum = prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
		Name: "ledger_account_balance_sum",
		Help: "Sum of every account's balance",
	}, nil)

	transactionsTotal = prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
		Name: "ledger_transactions_total",
		Help: "How many transactions have been recorded",
	}, nil)

	transactionAmountSum = prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
		Name: "ledger_transaction_amount_sum",
		Help: "Sum of transaction amounts by kind",
	}, []string{"kind"})
)

type gauges struct {
	accounts       metrics.Gauge
	balances       metrics.Gauge
	transactions   metrics.Gauge
	transactionSum metrics.Gauge
}

// Reporter periodically copies the Engine's aggregates into prometheus gauges.
type Reporter struct {
	engine *Engine
	logger log.Logger
	gauges gauges

	sched *cron.Cron
}

func NewReporter(logger log.Logger, engine *Engine) *Reporter {
	return &Reporter{
		engine: engine,
		logger: logger,
		gauges: gauges{
			accounts:       accountsTotal,
			balances:       accountBalanceSum,
			transactions:   transactionsTotal,
			transactionSum: transactionAmountSum,
		},
	}
}

// Start schedules Refresh with a cron spec (e.g. "@every 1m") and returns
// after the first refresh has been attempted. An empty schedule disables the job.
func (r *Reporter) Start(schedule string) error {
	if r == nil || schedule == "" {
		return nil
	}
	sched := cron.New()
	if _, err := sched.AddFunc(schedule, r.refresh); err != nil {
		return fmt.Errorf("statistics: invalid schedule %q: %v", schedule, err)
	}
	r.sched = sched
	r.refresh()
	r.sched.Start()
	return nil
}

func (r *Reporter) Stop() {
	if r == nil || r.sched == nil {
		return
	}
	<-r.sched.Stop().Done()
}

func (r *Reporter) refresh() {
	if err := r.Refresh(); err != nil {
		level.Error(r.logger).Log("statistics", "problem refreshing gauges", "error", err)
	}
}

// Refresh reads both aggregates and updates the gauges.
func (r *Reporter) Refresh() error {
	acctStats, err := r.engine.AccountStatistics()
	if err != nil {
		return err
	}
	r.gauges.accounts.Set(float64(acctStats.Count))
	r.gauges.balances.Set(acctStats.Sum)

	xactStats, err := r.engine.TransactionStatistics()
	if err != nil {
		return err
	}
	r.gauges.transactions.Set(float64(xactStats.Count))
	r.gauges.transactionSum.With("kind", string(client.DEPOSIT)).Set(xactStats.SumDeposits)
	r.gauges.transactionSum.With("kind", string(client.WITHDRAWAL)).Set(xactStats.SumWithdrawals)
	return nil
}
