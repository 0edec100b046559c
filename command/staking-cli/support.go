// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/command/staking-cli/configuration"
	"github.com/bitmark-inc/stakingd/command/staking-cli/rpccalls"
	"github.com/bitmark-inc/stakingd/indexer"
	"github.com/bitmark-inc/stakingd/util"
)

// return true if the path is a directory
func checkFileExists(name string) (bool, error) {
	info, err := os.Stat(name)
	if nil != err {
		return false, err
	}
	return info.IsDir(), nil
}

// identity name
func checkName(name string) (string, error) {
	if "" == name {
		return "", fmt.Errorf("identity name is required")
	}
	return name, nil
}

// connection string
func checkConnect(connect string) (string, error) {
	connect = strings.TrimSpace(connect)
	if "" == connect {
		return "", fmt.Errorf("connect is required")
	}
	host, _, err := net.SplitHostPort(connect)
	if nil != err {
		return "", fmt.Errorf("connect: %q  error: %s", connect, err)
	}
	// host names are passed through, addresses are made canonical
	if nil == net.ParseIP(host) {
		return connect, nil
	}
	canonical, err := util.CanonicalIPandPort(connect)
	if nil != err {
		return "", fmt.Errorf("connect: %q  error: %s", connect, err)
	}
	return canonical, nil
}

// description
func checkDescription(description string) (string, error) {
	if "" == description {
		return "", fmt.Errorf("description is required")
	}
	return description, nil
}

// identity to act as, the global flag or the default identity
func identityName(m *metadata, c *cli.Context) string {
	name := c.GlobalString("identity")
	if "" == name {
		name = m.config.DefaultIdentity
	}
	return name
}

// the private key of the acting identity
func privateKey(m *metadata, c *cli.Context) (*account.PrivateKey, error) {
	name := identityName(m, c)

	password := c.GlobalString("password")
	if "" == password {
		p, err := promptPassword(name)
		if nil != err {
			return nil, err
		}
		password = p
	}

	private, err := m.config.Private(password, name)
	if nil != err {
		return nil, err
	}
	return private.PrivateKey, nil
}

// an account from an identity name or Base58, default is the acting identity
func accountOrIdentity(m *metadata, c *cli.Context, name string) (*account.Account, error) {
	if "" == name {
		name = identityName(m, c)
	}
	return m.config.Account(name)
}

// the collection tree of a command
func collectionAccount(c *cli.Context) (*account.Account, error) {
	collection := c.String("collection")
	if "" == collection {
		return nil, fmt.Errorf("collection is required")
	}
	return account.AccountFromBase58(collection)
}

// fetch the current proof of the item selected by --index or --asset
func selectedItem(client *rpccalls.Client, c *cli.Context, collection *account.Account) (*indexer.Item, error) {
	asset := c.String("asset")
	index := c.Int("index")

	switch {
	case "" != asset && index >= 0:
		return nil, fmt.Errorf("only one of index or asset is allowed")
	case "" != asset:
		assetId, err := account.AccountFromBase58(asset)
		if nil != err {
			return nil, err
		}
		return client.AssetProof(assetId)
	case index >= 0:
		return client.Proof(collection, uint32(index))
	default:
		return nil, fmt.Errorf("one of index or asset is required")
	}
}

// connect to the configured stakingd
func newClient(m *metadata) (*rpccalls.Client, error) {
	return rpccalls.NewClient(m.testnet, m.config.Connect, m.verbose, m.e)
}

// used by setup and add to build a new encrypted identity
func addIdentity(m *metadata, c *cli.Context, config *configuration.Configuration, name string, description string, seed string) error {
	password := c.GlobalString("password")
	if "" == password {
		p, err := promptNewPassword()
		if nil != err {
			return err
		}
		password = p
	}
	return config.AddIdentity(name, description, seed, password)
}

// an existing seed or a fresh one when empty
func checkSeed(seed string, testnet bool) (string, error) {
	if "" == seed {
		return account.NewBase58Seed(testnet)
	}
	if _, err := account.PrivateKeyFromBase58Seed(seed); nil != err {
		return "", err
	}
	return seed, nil
}
