// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package derivation

import (
	"github.com/mr-tron/base58"
	"go.dedis.ch/kyber/v3/group/edwards25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/fault"
)

// limits on the seed tuple
const (
	MaximumSeeds      = 16
	MaximumSeedLength = 32
)

// appended to every derivation so an address can never collide with a
// digest computed for any other purpose
const addressMarker = "ProgramDerivedAddress"

// ProgramIdLength - bytes in a program id
const ProgramIdLength = 32

// ProgramId - identity of the program on whose behalf addresses are derived
type ProgramId [ProgramIdLength]byte

// ProgramIdFromName - fixed program id for a well known program name
func ProgramIdFromName(name string) ProgramId {
	return sha3.Sum256([]byte("program:" + name))
}

// String - base58 form
func (id ProgramId) String() string {
	return base58.Encode(id[:])
}

// MarshalText - base58 text form
func (id ProgramId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert base58 text to a program id
func (id *ProgramId) UnmarshalText(s []byte) error {
	b, err := base58.Decode(string(s))
	if nil != err || ProgramIdLength != len(b) {
		return fault.InvalidKeyLength
	}
	copy(id[:], b)
	return nil
}

// used only to decide whether a candidate address is a curve point
var curve = edwards25519.NewBlakeSHA256Ed25519()

// Deriver - derives keyless addresses for one program
type Deriver struct {
	programId ProgramId
	test      bool
}

// New - create a deriver for a program on a test or live network
func New(programId ProgramId, test bool) *Deriver {
	return &Deriver{
		programId: programId,
		test:      test,
	}
}

// ProgramId - the program this deriver works for
func (d *Deriver) ProgramId() ProgramId {
	return d.programId
}

// IsTesting - network of the derived accounts
func (d *Deriver) IsTesting() bool {
	return d.test
}

// Create - compute the address for an exact seed tuple and bump
//
// fails with NotDerivedAddress if the result is a valid curve point,
// since a private key could then exist for it
func (d *Deriver) Create(bump byte, seeds ...[]byte) (*account.Account, error) {
	return createAddress(d.programId, d.test, bump, seeds)
}

// Find - search for the highest bump giving an off-curve address
func (d *Deriver) Find(seeds ...[]byte) (*Authority, error) {
	if err := validateSeeds(seeds); nil != err {
		return nil, err
	}

	for bump := 255; bump >= 0; bump -= 1 {
		address, err := createAddress(d.programId, d.test, byte(bump), seeds)
		if fault.NotDerivedAddress == err {
			continue
		}
		if nil != err {
			return nil, err
		}
		return &Authority{
			ProgramId: d.programId,
			Seeds:     copySeeds(seeds),
			Bump:      byte(bump),
			Address:   address,
		}, nil
	}
	return nil, fault.NoViableBump
}

func createAddress(programId ProgramId, test bool, bump byte, seeds [][]byte) (*account.Account, error) {
	if err := validateSeeds(seeds); nil != err {
		return nil, err
	}

	h := sha3.New256()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write([]byte{bump})
	h.Write(programId[:])
	h.Write([]byte(addressMarker))
	address := h.Sum(nil)

	if isOnCurve(address) {
		return nil, fault.NotDerivedAddress
	}

	return &account.Account{
		AccountInterface: &account.DerivedAccount{
			Test:    test,
			Address: address,
		},
	}, nil
}

// a valid compressed edwards25519 point could have a private key
func isOnCurve(b []byte) bool {
	p := curve.Point()
	return nil == p.UnmarshalBinary(b)
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) > MaximumSeeds {
		return fault.InvalidSeeds
	}
	for _, seed := range seeds {
		if len(seed) > MaximumSeedLength {
			return fault.InvalidSeeds
		}
	}
	return nil
}

func copySeeds(seeds [][]byte) [][]byte {
	result := make([][]byte, len(seeds))
	for i, seed := range seeds {
		result[i] = append([]byte{}, seed...)
	}
	return result
}
