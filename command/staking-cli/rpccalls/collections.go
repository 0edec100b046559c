// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/collection"
	"github.com/bitmark-inc/stakingd/program"
	"github.com/bitmark-inc/stakingd/request"
	"github.com/bitmark-inc/stakingd/rpc/collections"
)

// CreateCollection - allocate and initialise the tree of a new collection
//
// tree is a fresh key whose account becomes the collection address
func (client *Client) CreateCollection(payer *account.PrivateKey, tree *account.PrivateKey, maxDepth uint32, maxBufferSize uint32) (*collection.Ref, error) {
	fields := collections.CreateFields(payer.Account(), tree.Account(), maxDepth, maxBufferSize)
	now := client.now()

	payerSigned, err := request.Sign(payer, now, collections.CreateCommand, fields...)
	if nil != err {
		return nil, err
	}
	treeSigned, err := request.Sign(tree, now, collections.CreateCommand, fields...)
	if nil != err {
		return nil, err
	}

	arguments := collections.CreateArguments{
		Payer:         payerSigned,
		Tree:          treeSigned,
		MaxDepth:      maxDepth,
		MaxBufferSize: maxBufferSize,
	}

	var reply collection.Ref
	if err := client.call("Collections.Create", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// CollectionInfo - committed state of a collection
func (client *Client) CollectionInfo(tree *account.Account) (*program.CollectionInfo, error) {
	var reply program.CollectionInfo
	if err := client.call("Collections.Info", &collections.InfoArguments{Tree: tree}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
