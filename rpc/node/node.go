// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/stakingd/counter"
	"github.com/bitmark-inc/stakingd/derivation"
	"github.com/bitmark-inc/stakingd/program"
	"github.com/bitmark-inc/stakingd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Program - the part of the staking program used here
type Program interface {
	Info() *program.Info
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Program Program
	counter *counter.Counter
}

// New - create a node RPC handler
func New(log *logger.L, p Program, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Program: p,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	ProgramId            derivation.ProgramId `json:"programId"`
	CompressionProgramId derivation.ProgramId `json:"compressionProgramId"`
	Testing              bool                 `json:"testing"`
	RPCs                 uint64               `json:"rpcs"`
	Version              string               `json:"version"`
	Uptime               string               `json:"uptime"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	info := node.Program.Info()

	reply.ProgramId = info.ProgramId
	reply.CompressionProgramId = info.CompressionProgramId
	reply.Testing = info.Testing
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
