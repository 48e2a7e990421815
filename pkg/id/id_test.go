// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package id

import (
	"testing"
)

func TestAccount(t *testing.T) {
	id := Account("ABC123")
	if id.String() != "ABC123" {
		t.Errorf("got %q", id.String())
	}
}

func TestTransaction(t *testing.T) {
	if v := Transaction("xyz").String(); v != "xyz" {
		t.Errorf("got %q", v)
	}
}
