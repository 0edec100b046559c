// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexer

import (
	"encoding/binary"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/compression"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/merkle"
	"github.com/bitmark-inc/stakingd/util"
)

// TreeState - what the indexer knows about one tree
type TreeState struct {
	Tree      *account.Account     `json:"tree"`
	Capacity  compression.Capacity `json:"capacity"`
	LeafCount uint32               `json:"leafCount"`
	Sequence  uint64               `json:"sequence"`
	Root      merkle.Digest        `json:"root"`
}

func (state *TreeState) pack() util.Packed {
	return util.Packed{}.
		Fixed(state.Tree.Bytes()).
		Varint(uint64(state.Capacity.MaxDepth)).
		Varint(uint64(state.Capacity.MaxBufferSize)).
		Varint(uint64(state.LeafCount)).
		Varint(state.Sequence).
		Fixed(state.Root[:])
}

func unpackTreeState(buffer []byte) (*TreeState, error) {
	u := util.NewUnpacker(buffer)
	tree, err := account.AccountFromBytes(u.Fixed(account.IdentityLength + 1))
	if nil != u.Err() {
		return nil, u.Err()
	}
	if nil != err {
		return nil, err
	}
	state := &TreeState{
		Tree: tree,
		Capacity: compression.Capacity{
			MaxDepth:      uint32(u.Varint()),
			MaxBufferSize: uint32(u.Varint()),
		},
		LeafCount: uint32(u.Varint()),
		Sequence:  u.Varint(),
	}
	copy(state.Root[:], u.Fixed(merkle.DigestLength))
	if err := u.Done(); nil != err {
		return nil, err
	}
	return state, nil
}

// key of a leaf or an owner entry: tree ++ index
func leafKey(tree []byte, index uint32) []byte {
	key := make([]byte, len(tree)+4)
	copy(key, tree)
	binary.BigEndian.PutUint32(key[len(tree):], index)
	return key
}

// key of a node: tree ++ level ++ index
func nodeKey(tree []byte, level int, index uint32) []byte {
	key := make([]byte, len(tree)+1+4)
	copy(key, tree)
	key[len(tree)] = byte(level)
	binary.BigEndian.PutUint32(key[len(tree)+1:], index)
	return key
}

// key of an owned item: owner ++ tree ++ index
func ownerKey(owner []byte, tree []byte, index uint32) []byte {
	key := make([]byte, 0, len(owner)+len(tree)+4)
	key = append(key, owner...)
	return append(key, leafKey(tree, index)...)
}

// split a tree ++ index key
func splitLeafKey(key []byte) ([]byte, uint32, error) {
	if len(key) != account.IdentityLength+4 {
		return nil, 0, fault.InvalidKeyLength
	}
	return key[:account.IdentityLength], binary.BigEndian.Uint32(key[account.IdentityLength:]), nil
}

// split the tree ++ index suffix of an owner key
func splitOwnerKey(key []byte) ([]byte, uint32, error) {
	if len(key) != 2*account.IdentityLength+4 {
		return nil, 0, fault.InvalidKeyLength
	}
	return splitLeafKey(key[account.IdentityLength:])
}
