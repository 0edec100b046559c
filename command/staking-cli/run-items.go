// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/stakingd/account"
)

func runIssue(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	collection, err := collectionAccount(c)
	if nil != err {
		return err
	}

	holder, err := privateKey(m, c)
	if nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Issue(collection, holder)
	if nil != err {
		return fmt.Errorf("issue error: %s", err)
	}

	return printJson(m.w, response)
}

func runProof(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	// an asset id alone identifies the item
	var collection *account.Account
	if "" == c.String("asset") {
		collection, err = collectionAccount(c)
		if nil != err {
			return err
		}
	}

	item, err := selectedItem(client, c, collection)
	if nil != err {
		return fmt.Errorf("proof error: %s", err)
	}

	return printJson(m.w, item)
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := accountOrIdentity(m, c, c.String("owner"))
	if nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	items, err := client.List(owner, c.Int("start"), c.Int("count"))
	if nil != err {
		return fmt.Errorf("list error: %s", err)
	}

	return printJson(m.w, items)
}
