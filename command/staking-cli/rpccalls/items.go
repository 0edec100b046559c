// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/indexer"
	"github.com/bitmark-inc/stakingd/issuance"
	"github.com/bitmark-inc/stakingd/request"
	"github.com/bitmark-inc/stakingd/rpc/items"
)

// Issue - mint a new item to holder
func (client *Client) Issue(collection *account.Account, holder *account.PrivateKey) (*issuance.ItemRef, error) {
	signed, err := request.Sign(holder, client.now(), items.IssueCommand, items.IssueFields(collection, holder.Account())...)
	if nil != err {
		return nil, err
	}

	arguments := items.IssueArguments{
		Collection: collection,
		Holder:     signed,
	}

	var reply issuance.ItemRef
	if err := client.call("Items.Issue", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Proof - a fresh proof of the item at index in collection
func (client *Client) Proof(collection *account.Account, index uint32) (*indexer.Item, error) {
	return client.proof(&items.ProofArguments{Collection: collection, Index: index})
}

// AssetProof - a fresh proof of the item with an asset id
func (client *Client) AssetProof(assetId *account.Account) (*indexer.Item, error) {
	return client.proof(&items.ProofArguments{AssetId: assetId})
}

func (client *Client) proof(arguments *items.ProofArguments) (*indexer.Item, error) {
	var reply indexer.Item
	if err := client.call("Items.Proof", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// List - items owned by owner
func (client *Client) List(owner *account.Account, start int, count int) ([]*indexer.Item, error) {
	arguments := items.ListArguments{
		Owner: owner,
		Start: start,
		Count: count,
	}

	var reply items.ListReply
	if err := client.call("Items.List", &arguments, &reply); nil != err {
		return nil, err
	}
	return reply.Items, nil
}
