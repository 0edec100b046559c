// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/compression"
	"github.com/bitmark-inc/stakingd/derivation"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/program"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(name string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)
		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "program-id", "id":
		printJson(map[string]derivation.ProgramId{
			"programId":            derivation.ProgramIdFromName(program.Name),
			"compressionProgramId": derivation.ProgramIdFromName(compression.ProgramName),
		})

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false

	case "collection", "c", "item", "i":
		return false // defer processing until database is loaded

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", name)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...] (rpc)   - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  program-id                 (id)     - display the derived program ids\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  collection TREE            (c)      - display the indexed state of a collection\n")
		fmt.Printf("\n")

		fmt.Printf("  item TREE INDEX            (i)      - display an item and its current proof\n")
		fmt.Printf("\n")
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		printJson(options)

	default: // unknown commands fall through to data command
		return false
	}

	return true
}

// data command handler
// the storage and indexer are open so these commands can read the
// committed state
func processDataCommand(arguments []string, p *program.Program) bool {

	command := "run"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "start", "run":
		return false

	case "collection", "c":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing collection argument")
		}
		tree, err := account.AccountFromBase58(arguments[0])
		if nil != err {
			exitwithstatus.Message("collection: %q  error: %s", arguments[0], err)
		}
		info, err := p.Collection(tree)
		if nil != err {
			exitwithstatus.Message("collection: %s  error: %s", tree, err)
		}
		printJson(info)

	case "item", "i":
		if len(arguments) < 2 {
			exitwithstatus.Message("missing collection and index arguments")
		}
		tree, err := account.AccountFromBase58(arguments[0])
		if nil != err {
			exitwithstatus.Message("collection: %q  error: %s", arguments[0], err)
		}
		index, err := strconv.ParseUint(arguments[1], 10, 32)
		if nil != err {
			exitwithstatus.Message("index: %q  error: %s", arguments[1], err)
		}
		item, err := p.ItemProof(tree, uint32(index))
		if nil != err {
			exitwithstatus.Message("item: %s[%d]  error: %s", tree, index, err)
		}
		printJson(item)

	default:
		exitwithstatus.Message("error: no such command: %q", command)
	}

	return true
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}

// create a self-signed certificate
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) error {

	if fileExists(certificateFileName) {
		return fault.CertificateFileAlreadyExists
	}

	if fileExists(privateKeyFileName) {
		return fault.KeyFileAlreadyExists
	}

	org := "stakingd self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if nil != err {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); nil != err {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); nil != err {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

func printJson(message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		exitwithstatus.Message("error: %s", err)
	}
	fmt.Printf("%s\n", b)
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
