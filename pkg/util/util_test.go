// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package util

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOr(t *testing.T) {
	require.Equal(t, "b", Or("", "  ", "b", "c"))
	require.Equal(t, "", Or())
	require.Equal(t, "", Or("", " "))
}

func TestTimeout(t *testing.T) {
	err := Timeout(func() error {
		return errors.New("bad")
	}, time.Second)
	require.EqualError(t, err, "bad")

	err = Timeout(func() error {
		time.Sleep(250 * time.Millisecond)
		return nil
	}, 10*time.Millisecond)
	require.Equal(t, ErrTimeout, err)
}
