// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexer

import (
	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/compression"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/merkle"
	"github.com/bitmark-inc/stakingd/storage"
)

// Item - an indexed leaf, with a proof against the latest indexed root
// when requested through Proof
type Item struct {
	Tree  *account.Account        `json:"tree"`
	Index uint32                  `json:"index"`
	Leaf  *compression.LeafSchema `json:"leaf"`
	Proof *compression.Proof      `json:"proof,omitempty"`
}

// maximum items returned by one List call
const maximumListCount = 100

// Tree - indexed state of a tree
func (ix *Indexer) Tree(tree *account.Account) (*TreeState, error) {
	if nil == tree || nil == tree.AccountInterface {
		return nil, fault.MissingParameters
	}

	ix.RLock()
	defer ix.RUnlock()

	return treeState(tree.PublicKeyBytes())
}

// Proof - current proof of the item at index
func (ix *Indexer) Proof(tree *account.Account, index uint32) (*Item, error) {
	if nil == tree || nil == tree.AccountInterface {
		return nil, fault.MissingParameters
	}

	ix.RLock()
	defer ix.RUnlock()

	return proof(tree.PublicKeyBytes(), index)
}

// ProofByAsset - current proof of the item with an asset id
func (ix *Indexer) ProofByAsset(assetId *account.Account) (*Item, error) {
	if nil == assetId || nil == assetId.AccountInterface {
		return nil, fault.MissingParameters
	}

	ix.RLock()
	defer ix.RUnlock()

	key := storage.Pool.IndexAssets.Get(assetId.PublicKeyBytes())
	if nil == key {
		return nil, fault.ItemNotFound
	}
	tree, index, err := splitLeafKey(key)
	if nil != err {
		fault.Criticalf("indexer: asset: %s  corrupt location: %x", assetId, key)
		return nil, err
	}
	return proof(tree, index)
}

// List - items currently owned by owner, in tree then index order
//
// start is the number of items to skip
func (ix *Indexer) List(owner *account.Account, start int, count int) ([]*Item, error) {
	if nil == owner || nil == owner.AccountInterface {
		return nil, fault.MissingParameters
	}
	if start < 0 || count <= 0 || count > maximumListCount {
		return nil, fault.InvalidCount
	}

	ix.RLock()
	defer ix.RUnlock()

	cursor := storage.Pool.IndexOwners.NewPrefixCursor(owner.PublicKeyBytes())
	if start > 0 {
		if _, err := cursor.Fetch(start); nil != err {
			return nil, err
		}
	}
	elements, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	items := make([]*Item, 0, len(elements))
	for _, e := range elements {
		tree, index, err := splitOwnerKey(e.Key)
		if nil != err {
			fault.Criticalf("indexer: owner key: %x  error: %s", e.Key, err)
			return nil, err
		}
		state, err := treeState(tree)
		if nil != err {
			return nil, err
		}
		leaf, err := leafAt(tree, index)
		if nil != err {
			return nil, err
		}
		items = append(items, &Item{
			Tree:  state.Tree,
			Index: index,
			Leaf:  leaf,
		})
	}
	return items, nil
}

func treeState(tree []byte) (*TreeState, error) {
	buffer := storage.Pool.IndexTrees.Get(tree)
	if nil == buffer {
		return nil, fault.CollectionNotFound
	}
	state, err := unpackTreeState(buffer)
	if nil != err {
		fault.Criticalf("indexer: tree: %x  corrupt: %s", tree, err)
		return nil, err
	}
	return state, nil
}

func leafAt(tree []byte, index uint32) (*compression.LeafSchema, error) {
	buffer := storage.Pool.IndexLeaves.Get(leafKey(tree, index))
	if nil == buffer {
		return nil, fault.ItemNotFound
	}
	leaf, err := compression.UnpackLeaf(buffer)
	if nil != err {
		fault.Criticalf("indexer: leaf: %x[%d]  corrupt: %s", tree, index, err)
		return nil, err
	}
	return leaf, nil
}

func proof(tree []byte, index uint32) (*Item, error) {
	state, err := treeState(tree)
	if nil != err {
		return nil, err
	}
	if index >= state.LeafCount {
		return nil, fault.InvalidLeafIndex
	}
	leaf, err := leafAt(tree, index)
	if nil != err {
		return nil, err
	}

	depth := int(state.Capacity.MaxDepth)
	empty := merkle.EmptyNodes(depth)
	path := make([]merkle.Digest, depth)
	for level := 0; level < depth; level += 1 {
		path[level] = sibling(tree, level, index, empty)
	}

	return &Item{
		Tree:  state.Tree,
		Index: index,
		Leaf:  leaf,
		Proof: &compression.Proof{
			Root:        state.Root,
			DataHash:    leaf.DataHash,
			CreatorHash: leaf.CreatorHash,
			Nonce:       leaf.Nonce,
			Index:       index,
			Path:        path,
		},
	}, nil
}
