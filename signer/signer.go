// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signer

import (
	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/derivation"
	"github.com/bitmark-inc/stakingd/fault"
)

// Signer - an identity able to authorise an action
//
// key holders authorise by a verified signature, derived identities by
// their derivation proof
type Signer interface {
	Identity() *account.Account
	Authorised(invoker derivation.ProgramId) error
}

// derivation proofs are signers
var _ Signer = (*derivation.Authority)(nil)

// Key - a key holding identity
type Key struct {
	account  *account.Account
	verified bool
}

// Verify - check a key holder's signature over a request
func Verify(acc *account.Account, message []byte, signature account.Signature) (*Key, error) {
	if nil == acc || nil == acc.AccountInterface {
		return nil, fault.MissingParameters
	}
	if acc.IsDerived() {
		return nil, fault.DerivedAccountCannotSign
	}
	if err := acc.CheckSignature(message, signature); nil != err {
		return nil, fault.InvalidSignature
	}
	return &Key{
		account:  acc,
		verified: true,
	}, nil
}

// Sign - sign a request locally and return the verified signer
func Sign(privateKey *account.PrivateKey, message []byte) (*Key, account.Signature, error) {
	signature := privateKey.Sign(message)
	key, err := Verify(privateKey.Account(), message, signature)
	if nil != err {
		return nil, nil, err
	}
	return key, signature, nil
}

// Unverified - an identity that was named but did not sign
func Unverified(acc *account.Account) *Key {
	return &Key{
		account:  acc,
		verified: false,
	}
}

// Identity - the key holder's account
func (key *Key) Identity() *account.Account {
	return key.account
}

// Authorised - a key holder may act for any program once verified
func (key *Key) Authorised(_ derivation.ProgramId) error {
	if nil == key || !key.verified {
		return fault.Unauthorised
	}
	return nil
}
