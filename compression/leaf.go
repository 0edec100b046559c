// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compression

import (
	"encoding/binary"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/merkle"
	"github.com/bitmark-inc/stakingd/util"
)

// LeafVersion - the only leaf schema version
const LeafVersion = 1

// seed tag for asset ids
const assetTag = "asset"

// LeafSchema - the fields hashed into a leaf
//
// the delegate of an item always equals its owner: issuance sets both
// to the holder and every transfer sets both to the new owner
type LeafSchema struct {
	AssetId     *account.Account `json:"assetId"`
	Owner       *account.Account `json:"owner"`
	Delegate    *account.Account `json:"delegate"`
	Nonce       uint64           `json:"nonce"`
	DataHash    merkle.Digest    `json:"dataHash"`
	CreatorHash merkle.Digest    `json:"creatorHash"`
}

// Hash - the leaf digest stored in the tree
func (leaf *LeafSchema) Hash() merkle.Digest {
	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, leaf.Nonce)
	return merkle.NewDigestOf(
		[]byte{LeafVersion},
		leaf.AssetId.Bytes(),
		leaf.Owner.Bytes(),
		leaf.Delegate.Bytes(),
		nonce,
		leaf.DataHash[:],
		leaf.CreatorHash[:],
	)
}

// withOwner - the same item with a new owner and delegate
func (leaf *LeafSchema) withOwner(owner *account.Account) *LeafSchema {
	l := *leaf
	l.Owner = owner
	l.Delegate = owner
	return &l
}

// Pack - encode for the indexer
func (leaf *LeafSchema) Pack() util.Packed {
	return util.Packed{}.
		Varint(LeafVersion).
		Fixed(leaf.AssetId.Bytes()).
		Fixed(leaf.Owner.Bytes()).
		Fixed(leaf.Delegate.Bytes()).
		Varint(leaf.Nonce).
		Fixed(leaf.DataHash[:]).
		Fixed(leaf.CreatorHash[:])
}

// UnpackLeaf - decode a packed leaf
func UnpackLeaf(buffer []byte) (*LeafSchema, error) {
	u := util.NewUnpacker(buffer)
	leaf, err := unpackLeaf(u)
	if nil != err {
		return nil, err
	}
	if err := u.Done(); nil != err {
		return nil, err
	}
	return leaf, nil
}

func unpackLeaf(u *util.Unpacker) (*LeafSchema, error) {
	if LeafVersion != u.Varint() {
		if nil != u.Err() {
			return nil, u.Err()
		}
		return nil, fault.InvalidItem
	}
	leaf := &LeafSchema{}
	var err error
	leaf.AssetId, err = unpackAccount(u)
	if nil != err {
		return nil, err
	}
	leaf.Owner, err = unpackAccount(u)
	if nil != err {
		return nil, err
	}
	leaf.Delegate, err = unpackAccount(u)
	if nil != err {
		return nil, err
	}
	leaf.Nonce = u.Varint()
	copy(leaf.DataHash[:], u.Fixed(merkle.DigestLength))
	copy(leaf.CreatorHash[:], u.Fixed(merkle.DigestLength))
	if nil != u.Err() {
		return nil, u.Err()
	}
	return leaf, nil
}

func unpackAccount(u *util.Unpacker) (*account.Account, error) {
	b := u.Fixed(account.IdentityLength + 1)
	if nil != u.Err() {
		return nil, u.Err()
	}
	return account.AccountFromBytes(b)
}
