// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compression

import (
	"github.com/bitmark-inc/stakingd/account"
	"github.com/bitmark-inc/stakingd/fault"
	"github.com/bitmark-inc/stakingd/merkle"
)

// Capacity - the static shape of a tree
type Capacity struct {
	MaxDepth      uint32 `json:"maxDepth"`
	MaxBufferSize uint32 `json:"maxBufferSize"`
}

// supported (depth, buffer) pairs
var supported = map[Capacity]struct{}{
	{3, 8}:     {},
	{5, 8}:     {},
	{6, 16}:    {},
	{7, 16}:    {},
	{8, 16}:    {},
	{9, 16}:    {},
	{10, 32}:   {},
	{11, 32}:   {},
	{12, 32}:   {},
	{13, 32}:   {},
	{14, 64}:   {},
	{14, 256}:  {},
	{14, 1024}: {},
	{14, 2048}: {},
	{15, 64}:   {},
	{16, 64}:   {},
	{17, 64}:   {},
	{18, 64}:   {},
	{19, 64}:   {},
	{20, 64}:   {},
	{20, 256}:  {},
	{20, 1024}: {},
	{20, 2048}: {},
	{24, 64}:   {},
	{24, 256}:  {},
	{24, 512}:  {},
	{24, 1024}: {},
	{24, 2048}: {},
	{26, 512}:  {},
	{26, 1024}: {},
	{26, 2048}: {},
	{30, 512}:  {},
	{30, 1024}: {},
	{30, 2048}: {},
}

// Valid - true if the pair is supported
func (c Capacity) Valid() bool {
	if c.MaxDepth > merkle.MaximumDepth {
		return false
	}
	_, ok := supported[c]
	return ok
}

// Leaves - number of leaves the tree can hold
func (c Capacity) Leaves() uint64 {
	return uint64(1) << c.MaxDepth
}

// tree account layout, all integers big endian
//
//	header:
//	  tag             1
//	  max depth       4
//	  max buffer      4
//	  authority       account.IdentityLength + 1
//	  sequence        8
//	  active index    4  position of the current root in the change log
//	  buffer size     4  change log entries in use
//	  leaf count      4  index of the next appended leaf
//	change log:       max buffer * (root 32 ++ index 4 ++ sequence 8)
//	rightmost proof:  max depth * 32
//	rightmost leaf:   32
const (
	headerSize    = 1 + 4 + 4 + (account.IdentityLength + 1) + 8 + 4 + 4 + 4
	changeLogSize = merkle.DigestLength + 4 + 8
)

// AccountSize - bytes the caller must allocate for a tree account
func AccountSize(c Capacity) (int, error) {
	if !c.Valid() {
		return 0, fault.InvalidCapacity
	}
	return accountSize(c), nil
}

func accountSize(c Capacity) int {
	return headerSize +
		int(c.MaxBufferSize)*changeLogSize +
		int(c.MaxDepth)*merkle.DigestLength +
		merkle.DigestLength
}
