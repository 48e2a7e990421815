// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moov-io/base/admin"
	"github.com/moov-io/ledger"
	"github.com/moov-io/ledger/pkg/accounts"
	"github.com/moov-io/ledger/pkg/config"
	cfgadmin "github.com/moov-io/ledger/pkg/config/admin"
	"github.com/moov-io/ledger/pkg/database"
	"github.com/moov-io/ledger/pkg/events"
	service "github.com/moov-io/ledger/pkg/ledger"
	"github.com/moov-io/ledger/pkg/statistics"
	"github.com/moov-io/ledger/pkg/transactions"
	"github.com/moov-io/ledger/pkg/util"
	"github.com/moov-io/ledger/x/route"
	"github.com/moov-io/ledger/x/trace"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

var (
	flagConfigFile = flag.String("config", "", "Filepath for config file to load")
)

func main() {
	flag.Parse()

	cfg := readConfig(util.Or(os.Getenv("CONFIG_FILE"), *flagConfigFile))
	cfg.Logger.Log("startup", fmt.Sprintf("Starting ledger server version %s", ledger.Version))

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	// Listen for application termination.
	errs := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	_, traceCloser, err := trace.NewTracer(cfg.Logger, cfg.Tracing)
	if err != nil {
		panic(fmt.Sprintf("ERROR starting tracer: %v", err))
	}
	defer traceCloser.Close()

	// migrate database
	db, err := database.New(ctx, cfg.Logger, cfg.Database)
	if err != nil {
		panic(fmt.Sprintf("error creating database: %v", err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			cfg.Logger.Log("exit", err)
		}
	}()

	publisher, err := events.NewPublisher(ctx, cfg.Events)
	if err != nil {
		panic(fmt.Sprintf("ERROR opening event stream: %v", err))
	}
	defer func() {
		if err := publisher.Shutdown(context.Background()); err != nil {
			cfg.Logger.Log("events", "problem shutting down publisher", "error", err)
		}
	}()

	// Setup repositories and services
	accountRepo := accounts.NewRepo(db)
	transactionRepo := transactions.NewRepo(db)
	engine := statistics.NewEngine(accountRepo, transactionRepo)
	svc := service.NewService(cfg.Logger, accountRepo, transactionRepo, engine, publisher)

	reporter := statistics.NewReporter(cfg.Logger, engine)
	if err := reporter.Start(cfg.Statistics.Schedule); err != nil {
		panic(fmt.Sprintf("ERROR starting statistics reporter: %v", err))
	}
	defer reporter.Stop()

	// Spin up admin HTTP server
	adminServer := setupAdminServer(cfg, db, engine)
	go func() {
		cfg.Logger.Log("admin", fmt.Sprintf("listening on %s", adminServer.BindAddr()))
		if err := adminServer.Listen(); err != nil {
			err = fmt.Errorf("problem starting admin http: %v", err)
			cfg.Logger.Log("admin", err)
			errs <- err
		}
	}()
	defer adminServer.Shutdown()

	// Create HTTP handler
	handler := mux.NewRouter()
	route.PingRoute(cfg.Logger, handler)
	service.NewRouter(cfg.Logger, svc).RegisterRoutes(handler)

	// Create main HTTP server
	serve := setupHTTPServer(cfg.Http.BindAddress, handler)
	shutdownServer := func() {
		if err := serve.Shutdown(context.TODO()); err != nil {
			cfg.Logger.Log("shutdown", err)
		}
	}
	defer shutdownServer()

	// Start main HTTP server
	go func() {
		if certFile, keyFile := os.Getenv("HTTPS_CERT_FILE"), os.Getenv("HTTPS_KEY_FILE"); certFile != "" && keyFile != "" {
			cfg.Logger.Log("startup", fmt.Sprintf("binding to %s for secure HTTP server", serve.Addr))
			if err := serve.ListenAndServeTLS(certFile, keyFile); err != nil {
				cfg.Logger.Log("exit", err)
			}
		} else {
			cfg.Logger.Log("startup", fmt.Sprintf("binding to %s for HTTP server", serve.Addr))
			if err := serve.ListenAndServe(); err != nil {
				cfg.Logger.Log("exit", err)
			}
		}
	}()

	if err := <-errs; err != nil {
		cfg.Logger.Log("exit", err)
	}
}

func readConfig(path string) *config.Config {
	cfg, err := config.FromFile(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNopLogger()
	}
	return cfg
}

func setupAdminServer(cfg *config.Config, db *sql.DB, engine *statistics.Engine) *admin.Server {
	svc := admin.NewServer(cfg.Admin.BindAddress)
	svc.AddVersionHandler(ledger.Version) // Setup 'GET /version'
	svc.AddLivenessCheck("database", func() error {
		return util.Timeout(db.Ping, 5*time.Second)
	})
	cfgadmin.RegisterRoutes(svc, cfg)
	statistics.RegisterAdminRoutes(cfg.Logger, svc, engine, cfg.Statistics.Timeout)
	return svc
}

func setupHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: handler,
		TLSConfig: &tls.Config{
			InsecureSkipVerify:       false,
			PreferServerCipherSuites: true,
			MinVersion:               tls.VersionTLS12,
		},
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
