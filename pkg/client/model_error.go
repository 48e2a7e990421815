// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package client

// Error is returned in failed responses. Entity and ID are set when a
// referenced object could not be found.
type Error struct {
	Error  string `json:"error"`
	Entity string `json:"entity,omitempty"`
	ID     string `json:"id,omitempty"`
}
