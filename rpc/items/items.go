// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package items

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/indexer"
	"github.com/bitmark-inc/stakingd/issuance"
	"github.com/bitmark-inc/stakingd/request"
	"github.com/bitmark-inc/stakingd/rpc/ratelimit"
)

const (
	rateLimitItems = 200
	rateBurstItems = 100

	// limit for count
	maximumItemList = 100

	// IssueCommand - signed request name of Issue
	IssueCommand = "Items.Issue"
)

// Program - the part of the staking program used here
type Program interface {
	IssueItem(collection *account.Account, holder *account.Account) (*issuance.ItemRef, error)
	ItemProof(collection *account.Account, index uint32) (*indexer.Item, error)
	AssetProof(assetId *account.Account) (*indexer.Item, error)
	ItemList(owner *account.Account, start int, count int) ([]*indexer.Item, error)
}

// Items - type for RPC calls
type Items struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Program Program
	Now     func() time.Time
}

// New - create an items RPC handler
func New(log *logger.L, p Program) *Items {
	return &Items{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitItems, rateBurstItems),
		Program: p,
		Now:     time.Now,
	}
}

// ---

// IssueArguments - arguments for Issue
type IssueArguments struct {
	Collection *account.Account `json:"collection"`
	Holder     *request.Signed  `json:"holder"`
}

// IssueFields - the signed fields of an issue request
func IssueFields(collection *account.Account, holder *account.Account) [][]byte {
	return [][]byte{
		collection.Bytes(),
		holder.Bytes(),
	}
}

// Issue - mint a new item to the signing holder
func (items *Items) Issue(arguments *IssueArguments, reply *issuance.ItemRef) error {
	if err := ratelimit.Limit(items.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Collection || nil == arguments.Holder || nil == arguments.Holder.Identity {
		return fault.MissingParameters
	}

	holder, err := arguments.Holder.Verify(items.Now(), IssueCommand, IssueFields(arguments.Collection, arguments.Holder.Identity)...)
	if nil != err {
		return err
	}

	ref, err := items.Program.IssueItem(arguments.Collection, holder.Identity())
	if nil != err {
		return err
	}
	*reply = *ref
	return nil
}

// ---

// ProofArguments - arguments for Proof
//
// an asset id takes priority over collection and index
type ProofArguments struct {
	Collection *account.Account `json:"collection"`
	Index      uint32           `json:"index"`
	AssetId    *account.Account `json:"assetId"`
}

// Proof - a fresh proof of one item from the index
func (items *Items) Proof(arguments *ProofArguments, reply *indexer.Item) error {
	if err := ratelimit.Limit(items.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.MissingParameters
	}

	var item *indexer.Item
	var err error
	switch {
	case nil != arguments.AssetId:
		item, err = items.Program.AssetProof(arguments.AssetId)
	case nil != arguments.Collection:
		item, err = items.Program.ItemProof(arguments.Collection, arguments.Index)
	default:
		return fault.MissingParameters
	}
	if nil != err {
		return err
	}
	*reply = *item
	return nil
}

// ---

// ListArguments - arguments for List
type ListArguments struct {
	Owner *account.Account `json:"owner"`
	Start int              `json:"start"`
	Count int              `json:"count"`
}

// ListReply - result of List
type ListReply struct {
	Items []*indexer.Item `json:"items"`
}

// List - items currently owned by an identity
func (items *Items) List(arguments *ListArguments, reply *ListReply) error {
	if nil == arguments || nil == arguments.Owner {
		return fault.MissingParameters
	}

	if err := ratelimit.LimitN(items.Limiter, arguments.Count, maximumItemList); nil != err {
		return err
	}

	list, err := items.Program.ItemList(arguments.Owner, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}
	reply.Items = list
	return nil
}
