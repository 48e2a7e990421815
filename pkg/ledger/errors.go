// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NotFoundError is returned when a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func accountNotFound(accountID string) error {
	return &NotFoundError{Entity: "account", ID: accountID}
}

// ValidationError wraps a request which failed validation.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return "invalid request"
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// fieldErrors renders validator failures as "field: tag" pairs.
func fieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Err: err}
	}
	var out []string
	for i := range verrs {
		out = append(out, fmt.Sprintf("%s: %s", verrs[i].Field(), verrs[i].Tag()))
	}
	sort.Strings(out)
	return &ValidationError{Err: fmt.Errorf("invalid request: %s", strings.Join(out, ", "))}
}
