// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package id

type Account string

func (id Account) String() string {
	return string(id)
}

type Transaction string

func (id Transaction) String() string {
	return string(id)
}
