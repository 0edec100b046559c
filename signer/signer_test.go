// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/stakingd/derivation"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/keypair"
	"github.com/bitmark-inc/stakingd/signer"
)

var programId = derivation.ProgramIdFromName("staking")

func TestVerify(t *testing.T) {
	kp, err := keypair.MakeKeyPair(true)
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}

	message := []byte("stake request")

	key, signature, err := signer.Sign(kp.PrivateKey, message)
	assert.Nil(t, err, "sign")
	assert.True(t, kp.Account.Equal(key.Identity()), "wrong identity")
	assert.Nil(t, key.Authorised(programId), "verified key rejected")

	again, err := signer.Verify(kp.Account, message, signature)
	assert.Nil(t, err, "verify")
	assert.Nil(t, again.Authorised(programId), "verified key rejected")

	_, err = signer.Verify(kp.Account, []byte("other request"), signature)
	assert.Equal(t, fault.InvalidSignature, err, "signature over other message accepted")

	_, err = signer.Verify(nil, message, signature)
	assert.Equal(t, fault.MissingParameters, err, "nil account accepted")
}

func TestUnverified(t *testing.T) {
	kp, err := keypair.MakeKeyPair(true)
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}

	key := signer.Unverified(kp.Account)
	assert.True(t, kp.Account.Equal(key.Identity()), "wrong identity")
	assert.Equal(t, fault.Unauthorised, key.Authorised(programId), "unsigned key accepted")
}

func TestDerivedCannotSign(t *testing.T) {
	kp, err := keypair.MakeKeyPair(true)
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}
	authority, err := derivation.New(programId, true).TreeAuthority(kp.Account)
	if nil != err {
		t.Fatalf("derivation error: %s", err)
	}

	_, err = signer.Verify(authority.Address, []byte("message"), make([]byte, 64))
	assert.Equal(t, fault.DerivedAccountCannotSign, err, "derived account signed")

	var s signer.Signer = authority
	assert.Nil(t, s.Authorised(programId), "derivation proof rejected")
}
