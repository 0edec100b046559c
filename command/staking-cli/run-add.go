// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runAdd(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkName(c.GlobalString("identity"))
	if nil != err {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if nil != err {
		return err
	}

	acc := c.String("account")
	if "" != acc {
		if "" != c.String("seed") {
			return fmt.Errorf("only one of seed or account is allowed")
		}
		err = m.config.AddReceiveOnlyIdentity(name, description, acc)
	} else {
		seed, e := checkSeed(c.String("seed"), m.testnet)
		if nil != e {
			return e
		}
		err = addIdentity(m, c, m.config, name, description, seed)
	}
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "added identity: %s\n", name)
	}
	m.save = true

	return nil
}
