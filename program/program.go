// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package program - the entry points of the staking program
//
// each entry point is one unit of work: it holds the storage unit lock
// from start to commit, any error aborts every write made so far, and
// the change log events are only published after a successful commit
package program

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/collection"
	"github.com/bitmark-inc/stakingd/compression"
	"github.com/bitmark-inc/stakingd/derivation"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/indexer"
	"github.com/bitmark-inc/stakingd/issuance"
	"github.com/bitmark-inc/stakingd/merkle"
	"github.com/bitmark-inc/stakingd/metadata"
	"github.com/bitmark-inc/stakingd/signer"
	"github.com/bitmark-inc/stakingd/staking"
	"github.com/bitmark-inc/stakingd/storage"
)

// Name - the program id is derived from this
const Name = "staking"

// Publisher - receives the events of committed units
type Publisher interface {
	Publish(event *compression.Event)
}

// Info - static description of the program
type Info struct {
	ProgramId            derivation.ProgramId `json:"programId"`
	CompressionProgramId derivation.ProgramId `json:"compressionProgramId"`
	Testing              bool                 `json:"testing"`
}

// CollectionInfo - ledger and index state of a collection
type CollectionInfo struct {
	Tree          *account.Account     `json:"tree"`
	TreeAuthority *account.Account     `json:"treeAuthority"`
	Capacity      compression.Capacity `json:"capacity"`
	Minted        uint64               `json:"minted"`
	Sequence      uint64               `json:"sequence"`
	Root          merkle.Digest        `json:"root"`
	Indexed       uint64               `json:"indexed"`
}

// Program - all components wired to one compression service
type Program struct {
	log         *logger.L
	compression compression.Service
	deriver     *derivation.Deriver
	collections *collection.Initializer
	issuance    *issuance.Service
	ledger      *staking.Ledger
	index       *indexer.Indexer
	publisher   Publisher
	override    *metadata.Override
}

// New - wire the components
//
// a non-empty override replaces fields of the default issuance bundle
func New(log *logger.L, svc compression.Service, deriver *derivation.Deriver, index *indexer.Indexer, publisher Publisher, override *metadata.Override) *Program {
	return &Program{
		log:         log,
		compression: svc,
		deriver:     deriver,
		collections: collection.New(log, svc, deriver),
		issuance:    issuance.New(log, svc, deriver),
		ledger:      staking.New(log, svc, deriver),
		index:       index,
		publisher:   publisher,
		override:    override,
	}
}

// Info - identities of the program
func (p *Program) Info() *Info {
	return &Info{
		ProgramId:            p.deriver.ProgramId(),
		CompressionProgramId: p.compression.ProgramId(),
		Testing:              p.deriver.IsTesting(),
	}
}

// CreateCollection - allocate the region of tree and initialise it
//
// both payer and tree must have signed the request
func (p *Program) CreateCollection(payer signer.Signer, tree signer.Signer, maxDepth uint32, maxBufferSize uint32) (*collection.Ref, error) {
	if nil == payer || nil == tree {
		return nil, fault.MissingParameters
	}
	size, err := compression.AccountSize(compression.Capacity{MaxDepth: maxDepth, MaxBufferSize: maxBufferSize})
	if nil != err {
		return nil, err
	}

	var ref *collection.Ref
	err = p.unit("create collection", func(trx storage.Transaction) ([]*compression.Event, error) {
		err := p.compression.Allocate(trx, p.deriver.ProgramId(), payer, tree, size)
		if nil != err {
			return nil, err
		}
		r, event, err := p.collections.CreateCollection(trx, payer.Identity(), tree.Identity(), maxDepth, maxBufferSize)
		if nil != err {
			return nil, err
		}
		ref = r
		return []*compression.Event{event}, nil
	})
	return ref, err
}

// IssueItem - mint a new item to holder
func (p *Program) IssueItem(collection *account.Account, holder *account.Account) (*issuance.ItemRef, error) {
	var attributes *metadata.Args
	if !p.override.IsEmpty() {
		defaults, err := p.issuance.Attributes(collection)
		if nil != err {
			return nil, err
		}
		attributes = defaults.With(p.override)
	}

	var ref *issuance.ItemRef
	err := p.unit("issue", func(trx storage.Transaction) ([]*compression.Event, error) {
		r, event, err := p.issuance.IssueItemWith(trx, collection, holder, attributes)
		if nil != err {
			return nil, err
		}
		ref = r
		return []*compression.Event{event}, nil
	})
	return ref, err
}

// Stake - move holder's proven item into escrow
func (p *Program) Stake(collection *account.Account, holder signer.Signer, proof *staking.Proof) (*staking.Record, error) {
	var record *staking.Record
	err := p.unit("stake", func(trx storage.Transaction) ([]*compression.Event, error) {
		r, event, err := p.ledger.Stake(trx, collection, holder, proof)
		if nil != err {
			return nil, err
		}
		record = r
		return []*compression.Event{event}, nil
	})
	return record, err
}

// Unstake - return the item staked by holder to caller
//
// a nil holder means the caller's own stake
func (p *Program) Unstake(collection *account.Account, holder *account.Account, caller signer.Signer, proof *staking.Proof) error {
	return p.unit("unstake", func(trx storage.Transaction) ([]*compression.Event, error) {
		event, err := p.ledger.Unstake(trx, collection, holder, caller, proof)
		if nil != err {
			return nil, err
		}
		return []*compression.Event{event}, nil
	})
}

// Record - the committed stake of holder
func (p *Program) Record(collection *account.Account, holder *account.Account) (*staking.Record, error) {
	return p.ledger.Record(nil, collection, holder)
}

// Escrow - identity that holds holder's staked item
func (p *Program) Escrow(collection *account.Account, holder *account.Account) (*account.Account, error) {
	return p.ledger.Escrow(collection, holder)
}

// ItemProof - fresh proof of the item at index
func (p *Program) ItemProof(collection *account.Account, index uint32) (*indexer.Item, error) {
	return p.index.Proof(collection, index)
}

// AssetProof - fresh proof of the item with an asset id
func (p *Program) AssetProof(assetId *account.Account) (*indexer.Item, error) {
	return p.index.ProofByAsset(assetId)
}

// ItemList - items owned by owner
func (p *Program) ItemList(owner *account.Account, start int, count int) ([]*indexer.Item, error) {
	return p.index.List(owner, start, count)
}

// Collection - committed state of a collection
func (p *Program) Collection(tree *account.Account) (*CollectionInfo, error) {
	config, err := p.compression.Config(nil, tree)
	if nil != err {
		return nil, err
	}
	header, err := p.compression.Header(nil, tree)
	if nil != err {
		return nil, err
	}
	root, err := p.compression.Root(nil, tree)
	if nil != err {
		return nil, err
	}

	info := &CollectionInfo{
		Tree:          tree,
		TreeAuthority: header.Authority,
		Capacity:      header.Capacity,
		Minted:        config.Minted,
		Sequence:      header.Sequence,
		Root:          root,
	}
	if state, err := p.index.Tree(tree); nil == err {
		info.Indexed = state.Sequence
	}
	return info, nil
}

// run f as one unit of work, publishing its events after commit
func (p *Program) unit(name string, f func(trx storage.Transaction) ([]*compression.Event, error)) error {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	defer trx.Abort()

	events, err := f(trx)
	if nil != err {
		p.log.Debugf("%s: aborted: %s", name, err)
		return err
	}

	err = trx.Commit()
	if nil != err {
		p.log.Errorf("%s: commit error: %s", name, err)
		return err
	}

	for _, event := range events {
		p.publisher.Publish(event)
	}
	return nil
}
