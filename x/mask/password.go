// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package mask

import (
	"strings"
)

// Password keeps the first and last characters of s and masks the rest,
// e.g. "password" becomes "p******d".
func Password(s string) string {
	runes := []rune(s)
	if len(runes) < 3 {
		return "**" // too short, we can't mask anything
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}
