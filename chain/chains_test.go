// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/stakingd/chain"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		ok       bool
	}{
		{"bitmark", chain.Bitmark, true},
		{"Live", chain.Bitmark, true},
		{" test ", chain.Testing, true},
		{"testing", chain.Testing, true},
		{"regression", chain.Local, true},
		{"local", chain.Local, true},
		{"devnet", "", false},
		{"", "", false},
	}

	for _, test := range tests {
		c, ok := chain.Canonical(test.name)
		assert.Equal(t, test.ok, ok, "ok: %q", test.name)
		assert.Equal(t, test.expected, c, "name: %q", test.name)
		if ok {
			assert.True(t, chain.Valid(c), "valid: %q", c)
		}
	}
}

func TestIsTesting(t *testing.T) {
	assert.False(t, chain.IsTesting(chain.Bitmark), "live")
	assert.True(t, chain.IsTesting(chain.Testing), "testing")
	assert.True(t, chain.IsTesting(chain.Local), "local")
}
