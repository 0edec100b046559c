// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/stakingd/chain"
	"github.com/bitmark-inc/stakingd/command/staking-cli/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	testnet bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "staking-cli"
	app.Usage = "stake and unstake compressed collection items"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	collectionFlag := cli.StringFlag{
		Name:  "collection, c",
		Value: "",
		Usage: "*collection tree `ACCOUNT`",
	}
	indexFlag := cli.IntFlag{
		Name:  "index, x",
		Value: -1,
		Usage: "+item leaf `INDEX`",
	}
	assetFlag := cli.StringFlag{
		Name:  "asset, a",
		Value: "",
		Usage: "+item asset id `ACCOUNT`",
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: "testing",
			Usage: " connect to stakingd `NETWORK` [bitmark|testing|local]",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " identity `PASSWORD`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate key pair, will not store in config file",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "setup",
			Usage:     "initialise staking-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: "*stakingd host/IP and port, `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " use existing `SEED` instead of a new one",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to config file, set it as default",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " use existing `SEED` instead of a new one",
				},
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: " receive only identity for `ACCOUNT`",
				},
			},
			Action: runAdd,
		},
		{
			Name:      "create-collection",
			Usage:     "create a collection paid for by the identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "depth, d",
					Value: 14,
					Usage: " tree depth `N`",
				},
				cli.IntFlag{
					Name:  "buffer, b",
					Value: 64,
					Usage: " change log size `N`",
				},
			},
			Action: runCreateCollection,
		},
		{
			Name:      "collection",
			Usage:     "show the state of a collection",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{collectionFlag},
			Action:    runCollection,
		},
		{
			Name:      "issue",
			Usage:     "issue a new item to the identity",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{collectionFlag},
			Action:    runIssue,
		},
		{
			Name:      "proof",
			Usage:     "fetch the current proof of an item",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags:     []cli.Flag{collectionFlag, indexFlag, assetFlag},
			Action:    runProof,
		},
		{
			Name:      "list",
			Usage:     "list items owned by an identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " owner identity `NAME` or account [identity]",
				},
				cli.IntFlag{
					Name:  "start, s",
					Value: 0,
					Usage: " skip `COUNT` items",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum items to list `COUNT`",
				},
			},
			Action: runList,
		},
		{
			Name:      "stake",
			Usage:     "stake an item owned by the identity",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags:     []cli.Flag{collectionFlag, indexFlag, assetFlag},
			Action:    runStake,
		},
		{
			Name:      "unstake",
			Usage:     "return a staked item to the identity",
			ArgsUsage: "\n   (* = required, + = select one)",
			Description: "only the staker may unstake.  without --holder the identity's own stake\n" +
				"   is used and a missing stake is reported as no active stake; give --holder\n" +
				"   to unstake the stake of that identity, which is refused with not staker\n" +
				"   unless the identity is its staker",
			Flags: []cli.Flag{
				collectionFlag,
				indexFlag,
				assetFlag,
				cli.StringFlag{
					Name:  "holder, H",
					Value: "",
					Usage: " staker identity `NAME` or account [identity]",
				},
			},
			Action: runUnstake,
		},
		{
			Name:      "record",
			Usage:     "show the active stake of an identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				collectionFlag,
				cli.StringFlag{
					Name:  "holder, H",
					Value: "",
					Usage: " staker identity `NAME` or account [identity]",
				},
			},
			Action: runRecord,
		},
		{
			Name:   "info",
			Usage:  "display stakingd status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display staking-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command || "help" == command || "" == command {
			return nil
		}

		network, ok := chain.Canonical(c.GlobalString("network"))
		if !ok {
			return fmt.Errorf("network: %q can only be bitmark/testing/local", c.GlobalString("network"))
		}
		testnet := chain.IsTesting(network)

		if "generate" == command {
			c.App.Metadata["config"] = &metadata{
				testnet: testnet,
				verbose: verbose,
				e:       e,
				w:       w,
			}
			return nil
		}

		p := os.Getenv("XDG_CONFIG_HOME")
		if "" == p {
			return fmt.Errorf("XDG_CONFIG_HOME environment is not set")
		}
		dir, err := checkFileExists(p)
		if nil != err {
			return err
		}
		if !dir {
			return fmt.Errorf("not a directory: %q", p)
		}
		file := path.Join(p, app.Name, network+"-"+app.Name+".json")

		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		if "setup" == command {
			// do not run setup if there is an existing configuration
			if _, err := checkFileExists(file); nil == err {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				save:    false,
				testnet: testnet,
				verbose: verbose,
				e:       e,
				w:       w,
			}
			return nil
		}

		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		config, err := configuration.Load(file)
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			file:    file,
			config:  config,
			testnet: config.TestNet,
			save:    false,
			verbose: verbose,
			e:       e,
			w:       w,
		}

		return nil
	}

	// save the configuration if a command changed it
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok || !m.save {
			return nil
		}
		if m.verbose {
			fmt.Fprintf(m.e, "saving config file: %s\n", m.file)
		}
		return configuration.Save(m.file, m.config)
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
