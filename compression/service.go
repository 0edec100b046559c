// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compression

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/derivation"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/merkle"
	"github.com/bitmark-inc/stakingd/metadata"
	"github.com/bitmark-inc/stakingd/signer"
	"github.com/bitmark-inc/stakingd/storage"
	"github.com/bitmark-inc/stakingd/util"
)

// ProgramName - name the compression program id is derived from
const ProgramName = "compression"

// MaximumAccountSize - largest region Allocate will create
const MaximumAccountSize = 10 * 1024 * 1024

// Proof - membership credential for one leaf
//
// Path holds one sibling digest per level starting at the leaf level
type Proof struct {
	Root        merkle.Digest   `json:"root"`
	DataHash    merkle.Digest   `json:"dataHash"`
	CreatorHash merkle.Digest   `json:"creatorHash"`
	Nonce       uint64          `json:"nonce"`
	Index       uint32          `json:"index"`
	Path        []merkle.Digest `json:"path"`
}

// Pack - canonical encoding, used when a proof is signed
func (proof *Proof) Pack() util.Packed {
	p := util.Packed{}.
		Fixed(proof.Root[:]).
		Fixed(proof.DataHash[:]).
		Fixed(proof.CreatorHash[:]).
		Varint(proof.Nonce).
		Varint(uint64(proof.Index)).
		Varint(uint64(len(proof.Path)))
	for _, d := range proof.Path {
		p = p.Fixed(d[:])
	}
	return p
}

// Service - the authenticated structure storage service
//
// every mutation runs inside the caller's unit of work and returns the
// change log event to publish once that unit commits; invoker is the
// program making the call and is what derived signers are checked
// against; a nil trx on a read gives the committed state
type Service interface {
	ProgramId() derivation.ProgramId
	AssetId(tree *account.Account, nonce uint64) (*account.Account, error)

	Allocate(trx storage.Transaction, invoker derivation.ProgramId, payer signer.Signer, tree signer.Signer, size int) error
	Init(trx storage.Transaction, invoker derivation.ProgramId, tree *account.Account, capacity Capacity, authority signer.Signer) (*Event, error)
	Append(trx storage.Transaction, invoker derivation.ProgramId, tree *account.Account, owner *account.Account, args *metadata.Args, authority signer.Signer) (*Event, error)
	Transfer(trx storage.Transaction, invoker derivation.ProgramId, tree *account.Account, proof *Proof, owner signer.Signer, newOwner *account.Account) (*Event, error)

	Config(trx storage.Transaction, tree *account.Account) (*TreeConfig, error)
	Header(trx storage.Transaction, tree *account.Account) (*Header, error)
	Root(trx storage.Transaction, tree *account.Account) (merkle.Digest, error)
}

type compressor struct {
	log     *logger.L
	deriver *derivation.Deriver
}

// New - compression service for a test or live network
func New(log *logger.L, test bool) Service {
	return &compressor{
		log:     log,
		deriver: derivation.New(derivation.ProgramIdFromName(ProgramName), test),
	}
}

func (c *compressor) ProgramId() derivation.ProgramId {
	return c.deriver.ProgramId()
}

// AssetId - stable identity of the item issued with nonce
func (c *compressor) AssetId(tree *account.Account, nonce uint64) (*account.Account, error) {
	if nil == tree || nil == tree.AccountInterface {
		return nil, fault.MissingParameters
	}
	n := make([]byte, 8)
	binary.BigEndian.PutUint64(n, nonce)
	authority, err := c.deriver.Find([]byte(assetTag), tree.PublicKeyBytes(), n)
	if nil != err {
		return nil, err
	}
	return authority.Address, nil
}

// Allocate - create a zero filled region for a tree
//
// both the payer and the new tree identity must sign
func (c *compressor) Allocate(trx storage.Transaction, invoker derivation.ProgramId, payer signer.Signer, tree signer.Signer, size int) error {
	if nil == trx || nil == payer || nil == tree {
		return fault.MissingParameters
	}
	if err := payer.Authorised(invoker); nil != err {
		return fault.Unauthorised
	}
	if err := tree.Authorised(invoker); nil != err {
		return fault.Unauthorised
	}
	if size <= 0 || size > MaximumAccountSize {
		return fault.InvalidAccountSize
	}

	key := tree.Identity().PublicKeyBytes()
	if trx.Has(storage.Pool.TreeAccounts, key) {
		return fault.AccountAlreadyExists
	}
	trx.Put(storage.Pool.TreeAccounts, key, make([]byte, size))

	c.log.Infof("allocate: %s  size: %d  payer: %s", tree.Identity(), size, payer.Identity())
	return nil
}

// Init - write an empty tree into an allocated region
func (c *compressor) Init(trx storage.Transaction, invoker derivation.ProgramId, tree *account.Account, capacity Capacity, authority signer.Signer) (*Event, error) {
	if nil == trx || nil == tree || nil == authority {
		return nil, fault.MissingParameters
	}
	if !capacity.Valid() {
		return nil, fault.InvalidCapacity
	}
	if err := authority.Authorised(invoker); nil != err {
		return nil, fault.Unauthorised
	}

	key := tree.PublicKeyBytes()
	region := trx.Get(storage.Pool.TreeAccounts, key)
	if nil == region {
		return nil, fault.AccountNotAllocated
	}
	if !isZero(region) {
		return nil, fault.AlreadyInitialised
	}
	if len(region) != accountSize(capacity) {
		return nil, fault.InvalidCapacity
	}
	if trx.Has(storage.Pool.TreeConfigs, key) {
		return nil, fault.AlreadyInitialised
	}

	identity := authority.Identity()
	t := newTree(capacity, identity)
	config := &TreeConfig{
		Creator:  identity,
		Delegate: identity,
		Capacity: capacity.Leaves(),
		Minted:   0,
	}

	trx.Put(storage.Pool.TreeAccounts, key, t.pack())
	trx.Put(storage.Pool.TreeConfigs, key, config.Pack())

	c.log.Infof("init: %s  depth: %d  buffer: %d  authority: %s", tree, capacity.MaxDepth, capacity.MaxBufferSize, identity)

	event := &Event{
		Kind:     EventInit,
		Tree:     tree,
		Capacity: capacity,
		Sequence: t.Sequence,
	}
	recordEvent(trx, event)
	return event, nil
}

// Append - mint a new item owned and delegated to owner
func (c *compressor) Append(trx storage.Transaction, invoker derivation.ProgramId, tree *account.Account, owner *account.Account, args *metadata.Args, authority signer.Signer) (*Event, error) {
	if nil == trx || nil == tree || nil == owner || nil == authority {
		return nil, fault.MissingParameters
	}
	if err := args.Validate(); nil != err {
		return nil, err
	}

	config, err := c.Config(trx, tree)
	if nil != err {
		return nil, err
	}
	if !config.mayMint(authority.Identity()) {
		return nil, fault.Unauthorised
	}
	if err := authority.Authorised(invoker); nil != err {
		return nil, fault.Unauthorised
	}
	if config.Minted >= config.Capacity {
		return nil, fault.CollectionFull
	}

	t, err := c.load(trx, tree)
	if nil != err {
		return nil, err
	}

	assetId, err := c.AssetId(tree, config.Minted)
	if nil != err {
		return nil, err
	}
	leaf := &LeafSchema{
		AssetId:     assetId,
		Owner:       owner,
		Delegate:    owner,
		Nonce:       config.Minted,
		DataHash:    args.DataHash(),
		CreatorHash: args.CreatorHash(),
	}

	index, path, err := t.append(leaf.Hash())
	if nil != err {
		return nil, err
	}
	config.Minted += 1

	key := tree.PublicKeyBytes()
	trx.Put(storage.Pool.TreeAccounts, key, t.pack())
	trx.Put(storage.Pool.TreeConfigs, key, config.Pack())

	c.log.Infof("append: %s  index: %d  nonce: %d  owner: %s", tree, index, leaf.Nonce, owner)

	event := &Event{
		Kind:     EventAppend,
		Tree:     tree,
		Capacity: t.Capacity,
		Sequence: t.Sequence,
		Index:    index,
		Path:     path,
		Leaf:     leaf,
	}
	recordEvent(trx, event)
	return event, nil
}

// Transfer - move an item from the proven owner to newOwner
func (c *compressor) Transfer(trx storage.Transaction, invoker derivation.ProgramId, tree *account.Account, proof *Proof, owner signer.Signer, newOwner *account.Account) (*Event, error) {
	if nil == trx || nil == tree || nil == proof || nil == owner || nil == newOwner {
		return nil, fault.MissingParameters
	}
	if err := owner.Authorised(invoker); nil != err {
		return nil, fault.Unauthorised
	}

	t, err := c.load(trx, tree)
	if nil != err {
		return nil, err
	}

	assetId, err := c.AssetId(tree, proof.Nonce)
	if nil != err {
		return nil, err
	}
	current := owner.Identity()
	previous := &LeafSchema{
		AssetId:     assetId,
		Owner:       current,
		Delegate:    current,
		Nonce:       proof.Nonce,
		DataHash:    proof.DataHash,
		CreatorHash: proof.CreatorHash,
	}
	leaf := previous.withOwner(newOwner)

	path, err := t.replace(proof.Root, previous.Hash(), leaf.Hash(), proof.Index, proof.Path)
	if fault.StaleProof == err {
		if age, ok := t.RootAge(proof.Root); ok {
			c.log.Infof("transfer: %s  index: %d  proof is %d versions behind", tree, proof.Index, age)
		} else {
			c.log.Infof("transfer: %s  index: %d  proof is older than the change log", tree, proof.Index)
		}
		return nil, err
	}
	if nil != err {
		return nil, err
	}

	trx.Put(storage.Pool.TreeAccounts, tree.PublicKeyBytes(), t.pack())

	c.log.Infof("transfer: %s  index: %d  from: %s  to: %s", tree, proof.Index, current, newOwner)

	event := &Event{
		Kind:     EventTransfer,
		Tree:     tree,
		Capacity: t.Capacity,
		Sequence: t.Sequence,
		Index:    proof.Index,
		Path:     path,
		Leaf:     leaf,
	}
	recordEvent(trx, event)
	return event, nil
}

// Config - the issuance record of a tree
func (c *compressor) Config(trx storage.Transaction, tree *account.Account) (*TreeConfig, error) {
	if nil == tree || nil == tree.AccountInterface {
		return nil, fault.MissingParameters
	}
	buffer := get(trx, storage.Pool.TreeConfigs, tree.PublicKeyBytes())
	if nil == buffer {
		return nil, fault.CollectionNotFound
	}
	config, err := UnpackTreeConfig(buffer)
	if nil != err {
		fault.Criticalf("compression: tree config: %s  corrupt: %s", tree, err)
		return nil, err
	}
	return config, nil
}

// Header - the fixed part of a tree account
func (c *compressor) Header(trx storage.Transaction, tree *account.Account) (*Header, error) {
	t, err := c.load(trx, tree)
	if nil != err {
		return nil, err
	}
	return &t.Header, nil
}

// Root - the current commitment root of a tree
func (c *compressor) Root(trx storage.Transaction, tree *account.Account) (merkle.Digest, error) {
	t, err := c.load(trx, tree)
	if nil != err {
		return merkle.Digest{}, err
	}
	return t.Root(), nil
}

func (c *compressor) load(trx storage.Transaction, tree *account.Account) (*Tree, error) {
	if nil == tree || nil == tree.AccountInterface {
		return nil, fault.MissingParameters
	}
	region := get(trx, storage.Pool.TreeAccounts, tree.PublicKeyBytes())
	if nil == region {
		return nil, fault.AccountNotAllocated
	}
	return unpackTree(region)
}

func get(trx storage.Transaction, pool *storage.PoolHandle, key []byte) []byte {
	if nil == trx {
		return pool.Get(key)
	}
	return trx.Get(pool, key)
}
