// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/request"
	"github.com/bitmark-inc/stakingd/rpc/ledger"
	"github.com/bitmark-inc/stakingd/staking"
)

// Stake - escrow the holder's item
func (client *Client) Stake(collection *account.Account, holder *account.PrivateKey, proof *staking.Proof) (*ledger.StakeReply, error) {
	signed, err := request.Sign(holder, client.now(), ledger.StakeCommand, ledger.StakeFields(collection, proof)...)
	if nil != err {
		return nil, err
	}

	arguments := ledger.StakeArguments{
		Collection: collection,
		Holder:     signed,
		Proof:      proof,
	}

	var reply ledger.StakeReply
	if err := client.call("Ledger.Stake", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Unstake - return the staked item of holder to caller
//
// a nil holder means the caller's own stake
func (client *Client) Unstake(collection *account.Account, holder *account.Account, caller *account.PrivateKey, proof *staking.Proof) (*ledger.UnstakeReply, error) {
	signed, err := request.Sign(caller, client.now(), ledger.UnstakeCommand, ledger.UnstakeFields(collection, holder, proof)...)
	if nil != err {
		return nil, err
	}

	arguments := ledger.UnstakeArguments{
		Collection: collection,
		Holder:     holder,
		Caller:     signed,
		Proof:      proof,
	}

	var reply ledger.UnstakeReply
	if err := client.call("Ledger.Unstake", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Record - the active stake of holder
func (client *Client) Record(collection *account.Account, holder *account.Account) (*ledger.RecordReply, error) {
	arguments := ledger.RecordArguments{
		Collection: collection,
		Holder:     holder,
	}

	var reply ledger.RecordReply
	if err := client.call("Ledger.Record", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
