// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/stakingd/fault"
)

// seed parameters
var (
	seedHeader = []byte{0x5a, 0xfe, 0x01}
	seedNonce  = [24]byte{}
	seedIndex  = [16]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0xe7,
	}
)

const (
	seedHeaderLength   = 3
	seedPrefixLength   = 1
	seedKeyLength      = 32
	seedChecksumLength = 4
	seedLength         = seedHeaderLength + seedPrefixLength + seedKeyLength + seedChecksumLength
)

// PrivateKey - an ed25519 private key and its network
type PrivateKey struct {
	Test       bool
	PrivateKey ed25519.PrivateKey
}

// NewBase58Seed - create a new seed from secure random data
func NewBase58Seed(test bool) (string, error) {
	secretKey := make([]byte, seedKeyLength)
	if _, err := rand.Read(secretKey); nil != err {
		return "", err
	}
	return packSeed(secretKey, test), nil
}

func packSeed(secretKey []byte, test bool) string {
	net := byte(0x00)
	if test {
		net = 0x01
	}
	packed := make([]byte, 0, seedLength)
	packed = append(packed, seedHeader...)
	packed = append(packed, net)
	packed = append(packed, secretKey...)
	checksum := sha3.Sum256(packed)
	packed = append(packed, checksum[:seedChecksumLength]...)
	return base58.Encode(packed)
}

// PrivateKeyFromBase58Seed - convert a Base58 encoded seed string to a private key
func PrivateKeyFromBase58Seed(seedBase58Encoded string) (*PrivateKey, error) {

	seed, err := base58.Decode(seedBase58Encoded)
	if nil != err {
		return nil, fault.CannotDecodeSeed
	}
	if seedLength != len(seed) {
		return nil, fault.InvalidSeedLength
	}

	if !bytes.Equal(seedHeader, seed[:seedHeaderLength]) {
		return nil, fault.InvalidSeedHeader
	}

	checksumStart := len(seed) - seedChecksumLength
	checksum := sha3.Sum256(seed[:checksumStart])
	if !bytes.Equal(checksum[:seedChecksumLength], seed[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	// first byte of prefix is test/live indication
	isTest := 0x01 == seed[seedHeaderLength]

	var secretKey [seedKeyLength]byte
	copy(secretKey[:], seed[seedHeaderLength+seedPrefixLength:checksumStart])

	encrypted := secretbox.Seal([]byte{}, seedIndex[:], &seedNonce, &secretKey)

	_, priv, err := ed25519.GenerateKey(bytes.NewBuffer(encrypted))
	if nil != err {
		return nil, err
	}

	return &PrivateKey{
		Test:       isTest,
		PrivateKey: priv,
	}, nil
}

// PrivateKeyFromBytes - wrap a raw 64 byte ed25519 private key
func PrivateKeyFromBytes(privateKey []byte, test bool) (*PrivateKey, error) {
	if ed25519.PrivateKeySize != len(privateKey) {
		return nil, fault.InvalidKeyLength
	}
	k := make([]byte, ed25519.PrivateKeySize)
	copy(k, privateKey)
	return &PrivateKey{
		Test:       test,
		PrivateKey: k,
	}, nil
}

// Account - the public account of this key
func (privateKey *PrivateKey) Account() *Account {
	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, privateKey.PrivateKey[ed25519.PrivateKeySize-ed25519.PublicKeySize:])
	return &Account{
		AccountInterface: &ED25519Account{
			Test:      privateKey.Test,
			PublicKey: publicKey,
		},
	}
}

// Sign - sign a message
func (privateKey *PrivateKey) Sign(message []byte) Signature {
	return ed25519.Sign(privateKey.PrivateKey, message)
}

// PrivateKeyBytes - the raw private key
func (privateKey *PrivateKey) PrivateKeyBytes() []byte {
	return privateKey.PrivateKey[:]
}
