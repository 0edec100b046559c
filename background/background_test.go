// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/stakingd/background"
)

// counts until shutdown then records the argument it was given
type ticker struct {
	ticks    uint64
	args     interface{}
	finished bool
}

func (tk *ticker) Run(args interface{}, shutdown <-chan struct{}) {
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			atomic.AddUint64(&tk.ticks, 1)
		}
	}
	tk.args = args
	tk.finished = true
}

func TestStartStop(t *testing.T) {
	t1 := &ticker{}
	t2 := &ticker{}

	p := background.Start(background.Processes{t1, t2}, "indexer")
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	for i, tk := range []*ticker{t1, t2} {
		assert.True(t, tk.finished, "%d: returned before Stop completed", i)
		assert.Equal(t, "indexer", tk.args, "%d: args", i)
		assert.NotEqual(t, uint64(0), atomic.LoadUint64(&tk.ticks), "%d: ran", i)
	}
}

func TestStopTwice(t *testing.T) {
	tk := &ticker{}

	p := background.Start(background.Processes{tk}, nil)
	p.Stop()
	p.Stop()

	assert.True(t, tk.finished, "finished")
	assert.Nil(t, tk.args, "args")
}

func TestStartEmpty(t *testing.T) {
	p := background.Start(nil, nil)
	p.Stop()
}
