// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/stakingd/keypair"
)

func TestMakeKeyPair(t *testing.T) {
	kp, err := keypair.MakeKeyPair(true)
	if nil != err {
		t.Fatalf("make key pair error: %s", err)
	}
	assert.True(t, kp.Account.IsTesting(), "wrong network")

	again, err := keypair.MakeKeyPairFromSeed(kp.Seed)
	assert.Nil(t, err, "from seed error")
	assert.True(t, kp.Account.Equal(again.Account), "seed does not reproduce account")

	raw := kp.Raw()
	assert.Equal(t, kp.Account.String(), raw.Account, "wrong account text")
	assert.Equal(t, hex.EncodeToString(kp.Account.PublicKeyBytes()), raw.PublicKey, "wrong public key")
	assert.Equal(t, 128, len(raw.PrivateKey), "wrong private key length")
}

func TestBadSeed(t *testing.T) {
	_, err := keypair.MakeKeyPairFromSeed("not-a-seed-0OIl")
	assert.NotNil(t, err, "bad seed accepted")
}
