// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - throttle RPC handlers with token buckets
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/stakingd/fault"
)

// MaximumDelay - a request that would wait longer is refused
const MaximumDelay = 5 * time.Second

// Limit - take one token, waiting for it if necessary
func Limit(limiter *rate.Limiter) error {
	return take(limiter, 1)
}

// LimitN - take count tokens for a request returning count items
//
// an out of range count costs one token and is then rejected
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	if count <= 0 || count > maximumCount {
		if err := take(limiter, 1); nil != err {
			return err
		}
		return fault.InvalidCount
	}
	return take(limiter, count)
}

func take(limiter *rate.Limiter, n int) error {
	r := limiter.ReserveN(time.Now(), n)
	if !r.OK() {
		return fault.RateLimiting
	}
	delay := r.Delay()
	if delay > MaximumDelay {
		r.Cancel()
		return fault.RateLimiting
	}
	time.Sleep(delay)
	return nil
}
