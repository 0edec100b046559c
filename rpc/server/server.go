// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/stakingd/counter"
	"github.com/bitmark-inc/stakingd/program"
	"github.com/bitmark-inc/stakingd/rpc/collections"
	"github.com/bitmark-inc/stakingd/rpc/items"
	"github.com/bitmark-inc/stakingd/rpc/ledger"
	"github.com/bitmark-inc/stakingd/rpc/node"
)

// Create - an RPC server with every handler registered
func Create(log *logger.L, version string, p *program.Program, rpcCount *counter.Counter) *rpc.Server {
	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(collections.New(log, p))
	_ = server.Register(items.New(log, p))
	_ = server.Register(ledger.New(log, p))
	_ = server.Register(node.New(log, p, start, version, rpcCount))

	return server
}
