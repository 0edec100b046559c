// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package derivation

import (
	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/fault"
)

// domain tags of the two authorities
const (
	TreeAuthorityTag   = "tree_owner"
	EscrowAuthorityTag = "staking_details"
)

// Authority - a derived identity together with its derivation proof
//
// whoever holds the seeds and bump can act as Address, provided the
// action is taken by the program the address was derived for
type Authority struct {
	ProgramId ProgramId
	Seeds     [][]byte
	Bump      byte
	Address   *account.Account
}

// Identity - the derived account
func (authority *Authority) Identity() *account.Account {
	return authority.Address
}

// Authorised - check the derivation proof for an action taken by invoker
func (authority *Authority) Authorised(invoker ProgramId) error {
	if nil == authority.Address {
		return fault.Unauthorised
	}
	if invoker != authority.ProgramId {
		return fault.Unauthorised
	}
	address, err := createAddress(authority.ProgramId, authority.Address.IsTesting(), authority.Bump, authority.Seeds)
	if nil != err {
		return fault.Unauthorised
	}
	if !address.Equal(authority.Address) {
		return fault.Unauthorised
	}
	return nil
}

// TreeAuthority - the per collection signing identity
//
// seeds: tag ++ collection
func (d *Deriver) TreeAuthority(collection *account.Account) (*Authority, error) {
	if nil == collection || nil == collection.AccountInterface {
		return nil, fault.InvalidSeeds
	}
	return d.Find([]byte(TreeAuthorityTag), collection.PublicKeyBytes())
}

// EscrowAuthority - the per (collection, holder) custody identity
//
// seeds: tag ++ collection ++ holder
func (d *Deriver) EscrowAuthority(collection *account.Account, holder *account.Account) (*Authority, error) {
	if nil == collection || nil == collection.AccountInterface || nil == holder || nil == holder.AccountInterface {
		return nil, fault.InvalidSeeds
	}
	return d.Find([]byte(EscrowAuthorityTag), collection.PublicKeyBytes(), holder.PublicKeyBytes())
}
