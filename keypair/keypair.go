// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair

import (
	"encoding/hex"

	"github.com/bitmark-inc/stakingd/account"
)

// KeyPair - structure to hold public and private keys and the seed
// that was used to generate them
type KeyPair struct {
	Seed       string
	Account    *account.Account
	PrivateKey *account.PrivateKey
}

// RawKeyPair - text version of seed and keys
type RawKeyPair struct {
	Seed       string `json:"seed"`
	Account    string `json:"account"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// MakeKeyPair - create a new seed and generate keys from it
func MakeKeyPair(test bool) (*KeyPair, error) {
	seed, err := account.NewBase58Seed(test)
	if nil != err {
		return nil, err
	}
	return MakeKeyPairFromSeed(seed)
}

// MakeKeyPairFromSeed - generate keys from an existing seed
func MakeKeyPairFromSeed(seed string) (*KeyPair, error) {
	privateKey, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		return nil, err
	}
	return &KeyPair{
		Seed:       seed,
		Account:    privateKey.Account(),
		PrivateKey: privateKey,
	}, nil
}

// Raw - text version for display or saving
func (keyPair *KeyPair) Raw() *RawKeyPair {
	return &RawKeyPair{
		Seed:       keyPair.Seed,
		Account:    keyPair.Account.String(),
		PublicKey:  hex.EncodeToString(keyPair.Account.PublicKeyBytes()),
		PrivateKey: hex.EncodeToString(keyPair.PrivateKey.PrivateKeyBytes()),
	}
}
