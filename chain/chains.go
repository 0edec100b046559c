// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - the networks a program can be deployed on
package chain

import (
	"strings"
)

// names of all chains
const (
	Bitmark = "bitmark"
	Testing = "testing"
	Local   = "local"
)

var aliases = map[string]string{
	Bitmark:      Bitmark,
	"live":       Bitmark,
	Testing:      Testing,
	"test":       Testing,
	Local:        Local,
	"regression": Local,
}

// Canonical - the chain name for a name or one of its aliases
func Canonical(name string) (string, bool) {
	c, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Bitmark, Testing, Local:
		return true
	default:
		return false
	}
}

// IsTesting - true for every chain except the live one; derived
// addresses and account prefixes follow this
func IsTesting(name string) bool {
	return Bitmark != name
}
