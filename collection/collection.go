// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package collection - turn an allocated tree region into a collection
// whose tree authority is derived by this program
package collection

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/compression"
	"github.com/bitmark-inc/stakingd/derivation"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/storage"
)

// Ref - a created collection
type Ref struct {
	Tree          *account.Account     `json:"tree"`
	TreeAuthority *account.Account     `json:"treeAuthority"`
	Capacity      compression.Capacity `json:"capacity"`
}

// Initializer - creates collections
type Initializer struct {
	log         *logger.L
	compression compression.Service
	deriver     *derivation.Deriver
}

// New - create an initializer acting as the deriver's program
func New(log *logger.L, svc compression.Service, deriver *derivation.Deriver) *Initializer {
	return &Initializer{
		log:         log,
		compression: svc,
		deriver:     deriver,
	}
}

// CreateCollection - initialise the tree at the allocated region tree
//
// the region must have been allocated by payer to exactly
// compression.AccountSize of the requested capacity
func (c *Initializer) CreateCollection(trx storage.Transaction, payer *account.Account, tree *account.Account, maxDepth uint32, maxBufferSize uint32) (*Ref, *compression.Event, error) {
	if nil == trx || nil == tree || nil == tree.AccountInterface {
		return nil, nil, fault.MissingParameters
	}

	capacity := compression.Capacity{
		MaxDepth:      maxDepth,
		MaxBufferSize: maxBufferSize,
	}
	if !capacity.Valid() {
		return nil, nil, fault.InvalidCapacity
	}

	authority, err := c.deriver.TreeAuthority(tree)
	if nil != err {
		return nil, nil, err
	}

	event, err := c.compression.Init(trx, c.deriver.ProgramId(), tree, capacity, authority)
	if nil != err {
		return nil, nil, err
	}

	c.log.Infof("create: %s  depth: %d  buffer: %d  payer: %s  authority: %s", tree, maxDepth, maxBufferSize, payer, authority.Address)

	return &Ref{
		Tree:          tree,
		TreeAuthority: authority.Address,
		Capacity:      capacity,
	}, event, nil
}
