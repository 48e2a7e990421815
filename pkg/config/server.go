// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"time"

	"github.com/robfig/cron/v3"
)

type HTTP struct {
	BindAddress string
}

type Admin struct {
	BindAddress string

	DisableConfigEndpoint bool
}

type Tracing struct {
	Enabled     bool
	ServiceName string

	// SampleRate is the fraction of requests traced. Values of 1.0 or more
	// trace every request.
	SampleRate float64
}

func (cfg Tracing) Validate() error {
	if cfg.Enabled && cfg.ServiceName == "" {
		return errors.New("missing service name")
	}
	if cfg.SampleRate < 0 {
		return errors.New("negative sample rate")
	}
	return nil
}

// Statistics controls the background job which exports ledger aggregates as metrics.
type Statistics struct {
	// Schedule is a cron spec such as "@every 1m". An empty value disables the job.
	Schedule string

	// Timeout bounds the admin /statistics endpoint.
	Timeout time.Duration
}

func (cfg Statistics) Validate() error {
	if cfg.Schedule == "" {
		return nil
	}
	_, err := cron.ParseStandard(cfg.Schedule)
	return err
}
