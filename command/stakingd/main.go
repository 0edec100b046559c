// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/stakingd/background"
	"github.com/bitmark-inc/stakingd/chain"
	"github.com/bitmark-inc/stakingd/compression"
	"github.com/bitmark-inc/stakingd/derivation"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/indexer"
	"github.com/bitmark-inc/stakingd/messagebus"
	"github.com/bitmark-inc/stakingd/program"
	"github.com/bitmark-inc/stakingd/rpc"
	"github.com/bitmark-inc/stakingd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	name, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", name, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(name, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(name, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(name, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", name, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", name, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", name, err)
	}
	defer logger.Finalise()

	// last chance logging for panics
	fault.Initialise()
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if nil != err {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", name)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", name, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	testing := chain.IsTesting(theConfiguration.Chain)

	log.Infof("chain: %s  test mode: %v", theConfiguration.Chain, testing)
	log.Infof("database: %q", theConfiguration.Database)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Issuance", theConfiguration.Issuance)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// wire the program to its compression service and item index
	svc := compression.New(logger.New("compression"), testing)
	deriver := derivation.New(derivation.ProgramIdFromName(program.Name), testing)
	index := indexer.New(logger.New("indexer"), messagebus.Bus.Indexer)
	p := program.New(
		logger.New("program"),
		svc,
		deriver,
		index,
		indexer.Queued{Queue: messagebus.Bus.Indexer},
		&theConfiguration.Issuance,
	)

	info := p.Info()
	log.Infof("program id: %s", info.ProgramId)
	log.Infof("compression program id: %s", info.CompressionProgramId)

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(arguments, p) {
		return
	}

	// apply change log events in the background
	log.Info("start indexer")
	processes := background.Start(background.Processes{index}, nil)
	defer processes.Stop()

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, p, version)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// if memory logging enabled
	stopStats := make(chan struct{})
	defer close(stopStats)
	if len(options["memory-stats"]) > 0 {
		go memstats(stopStats)
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
