// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package util

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTimeout = errors.New("timeout exceeded")
)

// Or returns the first non-empty string
func Or(options ...string) string {
	for i := range options {
		if v := strings.TrimSpace(options[i]); v != "" {
			return v
		}
	}
	return ""
}

// Timeout calls f and waits at most d for it to return. ErrTimeout is returned
// when f is still running after d has elapsed.
func Timeout(f func() error, d time.Duration) error {
	answer := make(chan error, 1)
	go func() {
		answer <- f()
	}()
	select {
	case err := <-answer:
		return err
	case <-time.After(d):
		return ErrTimeout
	}
}
