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

func runStake(c *cli.Context) error {

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

	item, err := selectedItem(client, c, collection)
	if nil != err {
		return fmt.Errorf("proof error: %s", err)
	}

	response, err := client.Stake(collection, holder, item.Proof)
	if nil != err {
		return fmt.Errorf("stake error: %s", err)
	}

	return printJson(m.w, response)
}

func runUnstake(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	collection, err := collectionAccount(c)
	if nil != err {
		return err
	}

	caller, err := privateKey(m, c)
	if nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	// no holder means the caller's own stake
	var holder *account.Account
	if name := c.String("holder"); "" != name {
		holder, err = m.config.Account(name)
		if nil != err {
			return err
		}
	}

	item, err := selectedItem(client, c, collection)
	if nil != err {
		return fmt.Errorf("proof error: %s", err)
	}

	response, err := client.Unstake(collection, holder, caller, item.Proof)
	if nil != err {
		return fmt.Errorf("unstake error: %s", err)
	}

	return printJson(m.w, response)
}

func runRecord(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	collection, err := collectionAccount(c)
	if nil != err {
		return err
	}

	holder, err := accountOrIdentity(m, c, c.String("holder"))
	if nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Record(collection, holder)
	if nil != err {
		return fmt.Errorf("record error: %s", err)
	}

	return printJson(m.w, response)
}
