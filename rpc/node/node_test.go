// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/stakingd/counter"
	"github.com/bitmark-inc/stakingd/derivation"
	"github.com/bitmark-inc/stakingd/fixtures"
	"github.com/bitmark-inc/stakingd/program"
	"github.com/bitmark-inc/stakingd/rpc/mocks"
	"github.com/bitmark-inc/stakingd/rpc/node"
)

func TestNodeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	p := mocks.NewMockNode(ctl)
	info := &program.Info{
		ProgramId:            derivation.ProgramIdFromName("staking"),
		CompressionProgramId: derivation.ProgramIdFromName("compression"),
		Testing:              true,
	}
	p.EXPECT().Info().Return(info).Times(1)

	c := counter.Counter(3)
	n := node.New(logger.New(fixtures.LogCategory), p, time.Now().Add(-time.Minute), "1.2.3", &c)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, info.ProgramId, reply.ProgramId, "wrong program id")
	assert.Equal(t, info.CompressionProgramId, reply.CompressionProgramId, "wrong compression program id")
	assert.True(t, reply.Testing, "wrong testing")
	assert.Equal(t, uint64(3), reply.RPCs, "wrong rpc count")
	assert.Equal(t, "1.2.3", reply.Version, "wrong version")
	assert.NotEqual(t, "", reply.Uptime, "missing uptime")
}
