// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - count the open connections of a listener
package counter

import (
	"sync/atomic"
)

// Counter - number of slots in use, safe for concurrent use
type Counter uint64

// Acquire - take a slot if fewer than limit are in use
func (c *Counter) Acquire(limit uint64) bool {
	if atomic.AddUint64((*uint64)(c), 1) <= limit {
		return true
	}
	c.Release()
	return false
}

// Release - return a slot taken by Acquire
func (c *Counter) Release() {
	atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Uint64 - slots currently in use
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}
