// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collections

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/collection"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/program"
	"github.com/bitmark-inc/stakingd/request"
	"github.com/bitmark-inc/stakingd/rpc/ratelimit"
	"github.com/bitmark-inc/stakingd/signer"
	"github.com/bitmark-inc/stakingd/util"
)

const (
	rateLimitCollections = 100
	rateBurstCollections = 50

	// CreateCommand - signed request name of Create
	CreateCommand = "Collections.Create"
)

// Program - the part of the staking program used here
type Program interface {
	CreateCollection(payer signer.Signer, tree signer.Signer, maxDepth uint32, maxBufferSize uint32) (*collection.Ref, error)
	Collection(tree *account.Account) (*program.CollectionInfo, error)
}

// Collections - type for RPC calls
type Collections struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Program Program
	Now     func() time.Time
}

// New - create a collections RPC handler
func New(log *logger.L, p Program) *Collections {
	return &Collections{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitCollections, rateBurstCollections),
		Program: p,
		Now:     time.Now,
	}
}

// ---

// CreateArguments - arguments for Create
//
// payer and tree both sign CreateFields
type CreateArguments struct {
	Payer         *request.Signed `json:"payer"`
	Tree          *request.Signed `json:"tree"`
	MaxDepth      uint32          `json:"maxDepth"`
	MaxBufferSize uint32          `json:"maxBufferSize"`
}

// CreateFields - the signed fields of a create request
func CreateFields(payer *account.Account, tree *account.Account, maxDepth uint32, maxBufferSize uint32) [][]byte {
	return [][]byte{
		payer.Bytes(),
		tree.Bytes(),
		util.Varint64(uint64(maxDepth)),
		util.Varint64(uint64(maxBufferSize)),
	}
}

// Create - allocate and initialise a collection tree
func (c *Collections) Create(arguments *CreateArguments, reply *collection.Ref) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Payer || nil == arguments.Tree ||
		nil == arguments.Payer.Identity || nil == arguments.Tree.Identity {
		return fault.MissingParameters
	}

	fields := CreateFields(arguments.Payer.Identity, arguments.Tree.Identity, arguments.MaxDepth, arguments.MaxBufferSize)
	now := c.Now()
	payer, err := arguments.Payer.Verify(now, CreateCommand, fields...)
	if nil != err {
		return err
	}
	tree, err := arguments.Tree.Verify(now, CreateCommand, fields...)
	if nil != err {
		return err
	}

	c.Log.Infof("create: tree: %s  depth: %d  buffer: %d", tree.Identity(), arguments.MaxDepth, arguments.MaxBufferSize)

	ref, err := c.Program.CreateCollection(payer, tree, arguments.MaxDepth, arguments.MaxBufferSize)
	if nil != err {
		return err
	}
	*reply = *ref
	return nil
}

// ---

// InfoArguments - arguments for Info
type InfoArguments struct {
	Tree *account.Account `json:"tree"`
}

// Info - committed state of a collection
func (c *Collections) Info(arguments *InfoArguments, reply *program.CollectionInfo) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Tree {
		return fault.MissingParameters
	}

	info, err := c.Program.Collection(arguments.Tree)
	if nil != err {
		return err
	}
	*reply = *info
	return nil
}
