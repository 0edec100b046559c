// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package request_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/keypair"
	"github.com/bitmark-inc/stakingd/request"
)

func TestSignVerify(t *testing.T) {
	kp, err := keypair.MakeKeyPair(true)
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}
	now := time.Now()

	signed, err := request.Sign(kp.PrivateKey, now, "Staking.Stake", []byte("tree"), []byte("proof"))
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}

	key, err := signed.Verify(now.Add(time.Minute), "Staking.Stake", []byte("tree"), []byte("proof"))
	assert.Nil(t, err, "verify")
	assert.True(t, kp.Account.Equal(key.Identity()), "identity")
	assert.Nil(t, key.Authorised([32]byte{}), "verified key not authorised")

	// survives a JSON round trip, as sent over RPC
	buffer, err := json.Marshal(signed)
	assert.Nil(t, err, "marshal")
	var decoded request.Signed
	assert.Nil(t, json.Unmarshal(buffer, &decoded), "unmarshal")
	_, err = decoded.Verify(now, "Staking.Stake", []byte("tree"), []byte("proof"))
	assert.Nil(t, err, "verify decoded")

	_, err = signed.Verify(now, "Staking.Unstake", []byte("tree"), []byte("proof"))
	assert.Equal(t, fault.InvalidSignature, err, "other command")

	_, err = signed.Verify(now, "Staking.Stake", []byte("treep"), []byte("roof"))
	assert.Equal(t, fault.InvalidSignature, err, "shifted fields")

	_, err = signed.Verify(now.Add(request.Window+time.Second), "Staking.Stake", []byte("tree"), []byte("proof"))
	assert.Equal(t, fault.RecordHasExpired, err, "old request")

	_, err = signed.Verify(now.Add(-request.Window-time.Second), "Staking.Stake", []byte("tree"), []byte("proof"))
	assert.Equal(t, fault.RecordHasExpired, err, "future request")

	var missing *request.Signed
	_, err = missing.Verify(now, "Staking.Stake")
	assert.Equal(t, fault.MissingParameters, err, "missing request")
}
