// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/stakingd/fault"
)

// enumeration of supported key algorithms
const (
	// list of valid algorithms
	Nothing = iota // zero keytype, never valid in an encoded account
	ED25519
	Derived // keyless, address computed by the derivation package
	// end of list (one greater than last item)
	algorithmLimit
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm

	// IdentityLength - bytes in the raw identity of every account type
	IdentityLength = 32
)

// Account - base type for accounts
type Account struct {
	AccountInterface
}

// AccountInterface - methods common to key holding and derived accounts
type AccountInterface interface {
	KeyType() int
	PublicKeyBytes() []byte
	CheckSignature(message []byte, signature Signature) error
	Bytes() []byte
	String() string
	MarshalText() ([]byte, error)
	IsTesting() bool
}

// ED25519Account - an identity backed by an ed25519 key pair
type ED25519Account struct {
	Test      bool
	PublicKey []byte
}

// DerivedAccount - an identity with no private key
//
// it can own items and co-sign only by a derivation proof,
// never by a signature
type DerivedAccount struct {
	Test    bool
	Address []byte
}

// AccountFromBase58 - convert a Base58 encoded string to an account
//
// one of the specific account types are returned using the base "AccountInterface"
// interface type to allow individual methods to be called.
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	accountDecoded, err := base58.Decode(accountBase58Encoded)
	if nil != err || len(accountDecoded) <= checksumLength {
		return nil, fault.CannotDecodeAccount
	}

	checksumStart := len(accountDecoded) - checksumLength
	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	return AccountFromBytes(accountDecoded[:checksumStart])
}

// AccountFromBytes - convert a byte encoded buffer to an account
func AccountFromBytes(accountBytes []byte) (*Account, error) {
	if 0 == len(accountBytes) {
		return nil, fault.CannotDecodeAccount
	}

	keyVariant := accountBytes[0]

	// check key type
	if keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.NotPublicKey
	}

	// compute algorithm
	keyAlgorithm := int(keyVariant >> algorithmShift)
	if keyAlgorithm <= Nothing || keyAlgorithm >= algorithmLimit {
		return nil, fault.InvalidKeyType
	}

	// network selection
	isTest := 0 != keyVariant&testKeyCode

	key := accountBytes[1:]
	if IdentityLength != len(key) {
		return nil, fault.InvalidKeyLength
	}
	k := make([]byte, IdentityLength)
	copy(k, key)

	switch keyAlgorithm {
	case ED25519:
		return &Account{
			AccountInterface: &ED25519Account{
				Test:      isTest,
				PublicKey: k,
			},
		}, nil
	case Derived:
		return &Account{
			AccountInterface: &DerivedAccount{
				Test:    isTest,
				Address: k,
			},
		}, nil
	default:
		return nil, fault.InvalidKeyType
	}
}

// Equal - true if both accounts denote the same identity
//
// the network flag is part of the identity
func (account *Account) Equal(other *Account) bool {
	if nil == account || nil == other || nil == account.AccountInterface || nil == other.AccountInterface {
		return false
	}
	return bytes.Equal(account.Bytes(), other.Bytes())
}

// IsDerived - true for keyless accounts
func (account *Account) IsDerived() bool {
	return nil != account && nil != account.AccountInterface && Derived == account.KeyType()
}

// UnmarshalText - convert Base58 text to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.AccountInterface = a.AccountInterface
	return nil
}

// encode a key variant and identity as base58 with checksum
func toBase58(buffer []byte) string {
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

func keyVariant(algorithm int, test bool) byte {
	v := byte(algorithm<<algorithmShift) | publicKeyCode
	if test {
		v |= testKeyCode
	}
	return v
}

// ED25519
// -------

// KeyType - key type code (see enumeration above)
func (account *ED25519Account) KeyType() int {
	return ED25519
}

// PublicKeyBytes - fetch the public key as byte slice
func (account *ED25519Account) PublicKeyBytes() []byte {
	return account.PublicKey[:]
}

// CheckSignature - check the signature of a message
func (account *ED25519Account) CheckSignature(message []byte, signature Signature) error {

	if ed25519.SignatureSize != len(signature) || ed25519.PublicKeySize != len(account.PublicKey) {
		return fault.InvalidSignature
	}

	if !ed25519.Verify(account.PublicKey[:], message, signature) {
		return fault.InvalidSignature
	}
	return nil
}

// Bytes - byte slice for encoded key
func (account *ED25519Account) Bytes() []byte {
	return append([]byte{keyVariant(ED25519, account.Test)}, account.PublicKey[:]...)
}

// String - base58 encoding of encoded key
func (account *ED25519Account) String() string {
	return toBase58(account.Bytes())
}

// MarshalText - convert an account to its Base58 JSON form
func (account ED25519Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// IsTesting - return whether the public key is in test mode or not
func (account ED25519Account) IsTesting() bool {
	return account.Test
}

// Derived
// -------

// KeyType - key type code (see enumeration above)
func (account *DerivedAccount) KeyType() int {
	return Derived
}

// PublicKeyBytes - the derived address, there is no corresponding key
func (account *DerivedAccount) PublicKeyBytes() []byte {
	return account.Address[:]
}

// CheckSignature - a derived account never signs
func (account *DerivedAccount) CheckSignature(message []byte, signature Signature) error {
	return fault.DerivedAccountCannotSign
}

// Bytes - byte slice for encoded address
func (account *DerivedAccount) Bytes() []byte {
	return append([]byte{keyVariant(Derived, account.Test)}, account.Address[:]...)
}

// String - base58 encoding of encoded address
func (account *DerivedAccount) String() string {
	return toBase58(account.Bytes())
}

// MarshalText - convert an account to its Base58 JSON form
func (account DerivedAccount) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// IsTesting - return whether the address is in test mode or not
func (account DerivedAccount) IsTesting() bool {
	return account.Test
}
