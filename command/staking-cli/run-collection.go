// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/stakingd/keypair"
)

type createCollectionReply struct {
	Seed     string      `json:"treeSeed"`
	Response interface{} `json:"response"`
}

func runCreateCollection(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	depth := c.Int("depth")
	buffer := c.Int("buffer")
	if depth <= 0 || buffer <= 0 {
		return fmt.Errorf("depth: %d and buffer: %d must be positive", depth, buffer)
	}

	payer, err := privateKey(m, c)
	if nil != err {
		return err
	}

	// the collection address is a fresh key that only signs its creation
	tree, err := keypair.MakeKeyPair(m.testnet)
	if nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.CreateCollection(payer, tree.PrivateKey, uint32(depth), uint32(buffer))
	if nil != err {
		return fmt.Errorf("create collection error: %s", err)
	}

	return printJson(m.w, &createCollectionReply{
		Seed:     tree.Seed,
		Response: response,
	})
}

func runCollection(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	collection, err := collectionAccount(c)
	if nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.CollectionInfo(collection)
	if nil != err {
		return fmt.Errorf("collection error: %s", err)
	}

	return printJson(m.w, response)
}
