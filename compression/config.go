// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compression

import (
	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/util"
)

// TreeConfig - issuance bookkeeping for a tree
//
// Creator and Delegate are the identities allowed to mint
type TreeConfig struct {
	Creator  *account.Account `json:"creator"`
	Delegate *account.Account `json:"delegate"`
	Capacity uint64           `json:"capacity"`
	Minted   uint64           `json:"minted"`
}

// mayMint - true if identity is the creator or the delegate
func (config *TreeConfig) mayMint(identity *account.Account) bool {
	return config.Creator.Equal(identity) || config.Delegate.Equal(identity)
}

// Pack - encode for the tree config pool
func (config *TreeConfig) Pack() util.Packed {
	return util.Packed{}.
		Fixed(config.Creator.Bytes()).
		Fixed(config.Delegate.Bytes()).
		Varint(config.Capacity).
		Varint(config.Minted)
}

// UnpackTreeConfig - decode a tree config record
func UnpackTreeConfig(buffer []byte) (*TreeConfig, error) {
	u := util.NewUnpacker(buffer)
	creator, err := unpackAccount(u)
	if nil != err {
		return nil, err
	}
	delegate, err := unpackAccount(u)
	if nil != err {
		return nil, err
	}
	config := &TreeConfig{
		Creator:  creator,
		Delegate: delegate,
		Capacity: u.Varint(),
		Minted:   u.Varint(),
	}
	if err := u.Done(); nil != err {
		return nil, err
	}
	return config, nil
}
